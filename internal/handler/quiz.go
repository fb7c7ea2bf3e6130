package handler

import (
	"context"
	"net/http"

	"github.com/veerakarthick235/Eco-Champs/internal/config"
	"github.com/veerakarthick235/Eco-Champs/internal/logger"
	"github.com/veerakarthick235/Eco-Champs/internal/middleware"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"github.com/veerakarthick235/Eco-Champs/internal/services"
	"github.com/veerakarthick235/Eco-Champs/internal/utils"
)

type GenerateQuizRequest struct {
	Topic string `json:"topic"`
}

type SubmitQuizRequest struct {
	Token   string   `json:"token"`
	Answers []string `json:"answers"`
}

// GenerateQuiz demande un quiz à Gemini sur le sujet fourni et émet un
// token de tentative. Une nouvelle génération invalide la tentative
// précédente de l'utilisateur.
func GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req GenerateQuizRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Topic == "" {
		utils.EngineError(w, model.ErrValidation, "topic is required")
		return
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load config", err)
		return
	}

	gemini, err := services.NewGeminiService(ctx, cfg)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "quiz generator unavailable", err)
		return
	}
	defer gemini.Close()

	payload, err := gemini.GenerateQuizQuestions(ctx, req.Topic)
	if err != nil {
		// Pas de retry : le client est invité à relancer lui-même
		utils.Error(w, http.StatusInternalServerError, "Failed to generate quiz for this topic.", err)
		return
	}

	token, err := services.CreateQuizAttempt(ctx, user.ID, req.Topic, payload.Questions)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not register quiz attempt", err)
		return
	}

	logger.Info("Quiz on %q issued to %s (%d questions)", req.Topic, user.Username, len(payload.Questions))
	utils.Success(w, map[string]interface{}{
		"token":     token,
		"questions": payload.Questions,
	})
}

// SubmitQuiz note les réponses de la tentative en cours et crédite les
// points gagnés. Sans tentative vivante le score retourné est vide.
func SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SubmitQuizRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, badges, err := services.SubmitQuizAttempt(context.Background(), user.ID, req.Token, req.Answers)
	if err != nil {
		utils.EngineError(w, err, "could not grade quiz")
		return
	}

	if result.PointsEarned > 0 {
		logger.Success("Quiz graded for %s: %d/%d (+%d points, badges: %v)",
			user.Username, result.Score, result.Total, result.PointsEarned, badges)
	}

	utils.Success(w, result)
}
