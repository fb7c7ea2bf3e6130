package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/scanner"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// AuthMiddleware valide le token de session et injecte l'utilisateur
// dans le contexte. Le moteur fait confiance à cette identité sans la
// revalider.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		ctx = context.WithValue(ctx, tokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireTeacher restreint une route aux enseignants. Prédicat
// d'autorisation explicite, évalué avant d'invoquer le moteur
// (création de challenge, validation de soumission).
func RequireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if !user.IsTeacher() {
			utils.ErrorSimple(w, http.StatusForbidden, "teacher role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// validateTokenAndGetUser valide le token et retourne l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.UserAccount, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT
			u.id, u.username, u.name, u.role, u.school, u.city,
			u.points, u.badges, u.streak, u.last_login, u.created_at
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1
			AND s.is_active = true
			AND s.expires_at > NOW()`,
		token,
	)

	user, err := scanner.ScanUserAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return user, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserAccount, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserAccount)
	if !ok {
		return model.UserAccount{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}
