package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

// Querier : le sous-ensemble de pgx.Tx que le moteur utilise. Les
// opérations transactionnelles l'acceptent à la place de pgx.Tx pour
// pouvoir être exercées hors base dans les tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AwardPoints incrémente atomiquement les points d'un utilisateur puis
// écrase son ensemble de badges, dans la transaction de l'appelant.
// L'incrément SQL (points = points + delta) évite la perte de mise à jour
// entre deux validations concurrentes pour le même utilisateur.
func AwardPoints(ctx context.Context, tx Querier, userID string, delta int) (int, []string, error) {
	var newTotal int
	err := tx.QueryRow(ctx,
		`UPDATE users SET points = points + $1 WHERE id = $2 RETURNING points`,
		delta, userID,
	).Scan(&newTotal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
		}
		return 0, nil, fmt.Errorf("could not increment points: %w", err)
	}

	badges := BadgesFor(newTotal)
	if _, err := tx.Exec(ctx,
		`UPDATE users SET badges = $1 WHERE id = $2`,
		pq.Array(badges), userID,
	); err != nil {
		return 0, nil, fmt.Errorf("could not update badges: %w", err)
	}

	return newTotal, badges, nil
}
