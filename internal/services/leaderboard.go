package services

import (
	"context"
	"fmt"

	"github.com/veerakarthick235/Eco-Champs/internal/database"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

// DefaultLeaderboardLimit : taille du top affiché
const DefaultLeaderboardLimit = 10

// Dimensions d'agrégation autorisées (whitelist : le nom de colonne est
// interpolé dans la requête)
var leaderboardDimensions = map[string]string{
	"city":   "city",
	"school": "school",
}

// TopByDimension agrège les points cumulés de tous les utilisateurs
// groupés par ville ou par école, triés par total décroissant.
// Départage des égalités : ordre lexical croissant sur la dimension.
// Lecture pure, sans cache : reflète le Points Ledger au moment de l'appel.
func TopByDimension(ctx context.Context, dimension string, limit int) ([]model.LeaderboardEntry, error) {
	column, ok := leaderboardDimensions[dimension]
	if !ok {
		return nil, fmt.Errorf("unknown leaderboard dimension %q: %w", dimension, model.ErrValidation)
	}

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	query := fmt.Sprintf(`
		SELECT %s, SUM(points) AS total_points
		FROM users
		GROUP BY %s
		ORDER BY total_points DESC, %s ASC
		LIMIT $1
	`, column, column, column)

	rows, err := database.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.TotalPoints); err != nil {
			return nil, fmt.Errorf("could not scan leaderboard row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
