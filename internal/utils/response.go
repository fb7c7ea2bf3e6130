package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error log l'erreur interne et renvoie un message propre au client
func Error(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		LogError("%s: %v", msg, err)
	} else {
		LogError("%s", msg)
	}
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

// ErrorSimple renvoie une erreur sans détail interne à logger
func ErrorSimple(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}

// EngineError mappe les erreurs du moteur vers un statut HTTP.
// Le détail interne n'est jamais exposé au client.
func EngineError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		Error(w, http.StatusNotFound, msg, err)
	case errors.Is(err, model.ErrInvalidState):
		Error(w, http.StatusConflict, msg, err)
	case errors.Is(err, model.ErrValidation):
		Error(w, http.StatusBadRequest, msg, err)
	case errors.Is(err, model.ErrExternalService):
		Error(w, http.StatusInternalServerError, msg, err)
	default:
		Error(w, http.StatusInternalServerError, msg, err)
	}
}
