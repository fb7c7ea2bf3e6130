package model

import (
	"time"
)

// Statuts d'une soumission. pending est l'état initial,
// approved et rejected sont terminaux.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

type Submission struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ChallengeID string     `json:"challengeId"`
	ImageURL    string     `json:"imageUrl"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy  *string    `json:"reviewedBy,omitempty"`
}

// PendingSubmission enrichit une soumission avec les infos utilisateur
// et challenge pour le tableau de validation des enseignants
type PendingSubmission struct {
	Submission
	UserName        string `json:"userName"`
	UserSchool      string `json:"userSchool"`
	ChallengeTitle  string `json:"challengeTitle"`
	ChallengePoints int    `json:"challengePoints"`
}

// ReviewResult résume l'effet d'une validation : points crédités
// et nouvel état du Points Ledger de l'utilisateur
type ReviewResult struct {
	SubmissionID  string   `json:"submissionId"`
	Status        string   `json:"status"`
	PointsAwarded int      `json:"pointsAwarded"`
	NewTotal      int      `json:"newTotal"`
	Badges        []string `json:"badges"`
}
