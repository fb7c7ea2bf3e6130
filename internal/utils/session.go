package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
)

// SessionDuration durée de validité d'une session (24h)
const SessionDuration = 24 * time.Hour

// CreateSession crée une nouvelle session pour un utilisateur et
// retourne le token opaque
func CreateSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	var sessionID string
	err := database.DB.QueryRow(ctx,
		`INSERT INTO sessions(user_id, token, is_active, created_at, expires_at)
		 VALUES($1, $2, true, $3, $4)
		 RETURNING id`,
		userID, token, now, now.Add(SessionDuration),
	).Scan(&sessionID)

	if err != nil {
		return "", err
	}

	return token, nil
}

// InvalidateSession désactive une session active
func InvalidateSession(ctx context.Context, token string) error {
	res, err := database.DB.Exec(ctx,
		`UPDATE sessions SET is_active = false WHERE token = $1 AND is_active = true`,
		token,
	)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return fmt.Errorf("session not found or already logged out")
	}

	return nil
}
