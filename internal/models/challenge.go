package model

import (
	"time"
)

type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`

	// Statut de la soumission de l'utilisateur courant pour ce challenge
	// (vide si aucune soumission)
	SubmissionStatus string `json:"submissionStatus,omitempty"`
}
