package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
	"github.com/veerakarthick235/Eco-Champs/internal/logger"
	"github.com/veerakarthick235/Eco-Champs/internal/middleware"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/scanner"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

// GetChallenges récupère tous les challenges avec, pour chacun, le
// statut de la dernière soumission de l'utilisateur courant
func GetChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT
			c.id, c.title, c.description, c.points, c.created_by, c.created_at,
			COALESCE((
				SELECT s.status
				FROM submissions s
				WHERE s.challenge_id = c.id AND s.user_id = $1
				ORDER BY s.submitted_at DESC
				LIMIT 1
			), '') AS submission_status
		FROM challenges c
		ORDER BY c.created_at DESC
	`, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query challenges", err)
		return
	}
	defer rows.Close()

	challenges := []model.Challenge{}
	for rows.Next() {
		var c model.Challenge
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Points, &c.CreatedBy, &c.CreatedAt,
			&c.SubmissionStatus,
		); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan challenge row", err)
			return
		}
		challenges = append(challenges, c)
	}

	utils.Success(w, challenges)
}

// GetChallengeById récupère un challenge par son ID
func GetChallengeById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	row := database.DB.QueryRow(context.Background(),
		`SELECT id, title, description, points, created_by, created_at
		 FROM challenges WHERE id = $1`,
		challengeID,
	)

	challenge, err := scanner.ScanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load challenge", err)
		return
	}

	utils.Success(w, challenge)
}

// CreateChallenge crée un nouveau challenge (enseignants uniquement,
// gating fait par la route). Immuable après création.
func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Points      int    `json:"points"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if payload.Title == "" {
		utils.EngineError(w, model.ErrValidation, "title is required")
		return
	}
	if payload.Points <= 0 {
		utils.EngineError(w, model.ErrValidation, "points must be a positive integer")
		return
	}

	challenge := model.Challenge{
		Title:       payload.Title,
		Description: payload.Description,
		Points:      payload.Points,
		CreatedBy:   user.ID,
	}

	err = database.DB.QueryRow(context.Background(),
		`INSERT INTO challenges(title, description, points, created_by, created_at)
		 VALUES($1, $2, $3, $4, NOW())
		 RETURNING id, created_at`,
		challenge.Title, challenge.Description, challenge.Points, challenge.CreatedBy,
	).Scan(&challenge.ID, &challenge.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create challenge", err)
		return
	}

	logger.Success("Challenge %q created by %s (%d points)", challenge.Title, user.Username, challenge.Points)
	utils.Success(w, challenge)
}
