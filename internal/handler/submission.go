package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/veerakarthick235/Eco-Champs/internal/config"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
	"github.com/veerakarthick235/Eco-Champs/internal/logger"
	"github.com/veerakarthick235/Eco-Champs/internal/middleware"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/scanner"
	"github.com/veerakarthick235/Eco-Champs/internal/services"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

// Taille max du formulaire multipart (10 Mo)
const maxProofUploadSize = 10 << 20

// SubmitProof enregistre une preuve photo pour un challenge.
// La soumission est créée avec status=pending et attend la validation
// d'un enseignant.
func SubmitProof(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	challengeID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := context.Background()

	// Le challenge doit exister avant toute mutation
	var exists bool
	err = database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM challenges WHERE id = $1)`,
		challengeID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check challenge", err)
		return
	}
	if !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
		return
	}

	if err := r.ParseMultipartForm(maxProofUploadSize); err != nil {
		utils.EngineError(w, model.ErrValidation, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("proof_image")
	if err != nil {
		utils.EngineError(w, model.ErrValidation, "proof_image file is required")
		return
	}
	defer file.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	cloud, err := services.NewCloudinaryService(cfg)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "proof storage unavailable", err)
		return
	}

	imageURL, err := cloud.UploadProofImage(ctx, file, user.ID, challengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload proof image", err)
		return
	}

	row := database.DB.QueryRow(ctx,
		`INSERT INTO submissions(user_id, challenge_id, image_url, status, submitted_at)
		 VALUES($1, $2, $3, $4, NOW())
		 RETURNING id, user_id, challenge_id, image_url, status, submitted_at, reviewed_at, reviewed_by`,
		user.ID, challengeID, imageURL, model.SubmissionPending,
	)

	submission, err := scanner.ScanSubmission(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create submission", err)
		return
	}

	logger.Info("Proof submitted by %s for challenge %s", user.Username, challengeID)
	utils.Success(w, submission)
}

// GetPendingSubmissions liste les soumissions en attente avec les infos
// utilisateur et challenge (tableau de validation enseignant)
func GetPendingSubmissions(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(context.Background(), `
		SELECT
			s.id, s.user_id, s.challenge_id, s.image_url, s.status,
			s.submitted_at, s.reviewed_at, s.reviewed_by,
			u.name, u.school, c.title, c.points
		FROM submissions s
		JOIN users u ON s.user_id = u.id
		JOIN challenges c ON s.challenge_id = c.id
		WHERE s.status = $1
		ORDER BY s.submitted_at ASC
	`, model.SubmissionPending)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query pending submissions", err)
		return
	}
	defer rows.Close()

	pending := []model.PendingSubmission{}
	for rows.Next() {
		p, err := scanner.ScanPendingSubmission(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan submission row", err)
			return
		}
		pending = append(pending, *p)
	}

	utils.Success(w, pending)
}

// ApproveSubmission approuve une soumission pending : statut, points et
// badges sont mis à jour atomiquement par le service
func ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionID := vars["id"]

	reviewer, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := services.ApproveSubmission(context.Background(), submissionID, reviewer.ID)
	if err != nil {
		utils.EngineError(w, err, approveErrorMessage(err))
		return
	}

	logger.Success("Submission %s approved by %s (+%d points)", submissionID, reviewer.Username, result.PointsAwarded)
	utils.Success(w, result)
}

// RejectSubmission rejette une soumission pending. Aucun point crédité.
func RejectSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionID := vars["id"]

	reviewer, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := services.RejectSubmission(context.Background(), submissionID, reviewer.ID)
	if err != nil {
		utils.EngineError(w, err, approveErrorMessage(err))
		return
	}

	logger.Info("Submission %s rejected by %s", submissionID, reviewer.Username)
	utils.Success(w, result)
}

func approveErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return "submission not found"
	case errors.Is(err, model.ErrInvalidState):
		return "submission already reviewed"
	default:
		return "could not review submission"
	}
}
