package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

// ApproveSubmission fait passer une soumission pending -> approved et
// crédite les points du challenge au soumetteur. Les trois effets
// (statut, points, badges) sont appliqués dans une seule transaction :
// un lecteur ne doit jamais observer approved avec des points périmés.
//
// Re-cliquer "approve" sur une soumission déjà traitée renvoie
// ErrInvalidState sans jamais re-créditer les points.
func ApproveSubmission(ctx context.Context, submissionID, reviewerID string) (*model.ReviewResult, error) {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := approveSubmissionTx(ctx, tx, submissionID, reviewerID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("could not commit approval: %w", err)
	}

	return result, nil
}

// RejectSubmission fait passer une soumission pending -> rejected.
// Aucun point n'est crédité.
func RejectSubmission(ctx context.Context, submissionID, reviewerID string) (*model.ReviewResult, error) {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := rejectSubmissionTx(ctx, tx, submissionID, reviewerID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("could not commit rejection: %w", err)
	}

	return result, nil
}

func approveSubmissionTx(ctx context.Context, tx Querier, submissionID, reviewerID string) (*model.ReviewResult, error) {
	userID, challengeID, err := lockPendingSubmission(ctx, tx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := markReviewed(ctx, tx, submissionID, reviewerID, model.SubmissionApproved); err != nil {
		return nil, err
	}

	var challengePoints int
	err = tx.QueryRow(ctx,
		`SELECT points FROM challenges WHERE id = $1`,
		challengeID,
	).Scan(&challengePoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge %s: %w", challengeID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not load challenge points: %w", err)
	}

	newTotal, badges, err := AwardPoints(ctx, tx, userID, challengePoints)
	if err != nil {
		return nil, err
	}

	return &model.ReviewResult{
		SubmissionID:  submissionID,
		Status:        model.SubmissionApproved,
		PointsAwarded: challengePoints,
		NewTotal:      newTotal,
		Badges:        badges,
	}, nil
}

func rejectSubmissionTx(ctx context.Context, tx Querier, submissionID, reviewerID string) (*model.ReviewResult, error) {
	if _, _, err := lockPendingSubmission(ctx, tx, submissionID); err != nil {
		return nil, err
	}

	if err := markReviewed(ctx, tx, submissionID, reviewerID, model.SubmissionRejected); err != nil {
		return nil, err
	}

	return &model.ReviewResult{
		SubmissionID: submissionID,
		Status:       model.SubmissionRejected,
	}, nil
}

// markReviewed applique la transition pending -> statut terminal. La
// clause WHERE status='pending' re-vérifie la précondition au moment de
// l'écriture : zéro ligne touchée signifie que quelqu'un est passé avant.
func markReviewed(ctx context.Context, tx Querier, submissionID, reviewerID, status string) error {
	res, err := tx.Exec(ctx,
		`UPDATE submissions
		 SET status = $1, reviewed_at = NOW(), reviewed_by = $2
		 WHERE id = $3 AND status = $4`,
		status, reviewerID, submissionID, model.SubmissionPending,
	)
	if err != nil {
		return fmt.Errorf("could not update submission status: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("submission %s no longer pending: %w", submissionID, model.ErrInvalidState)
	}

	return nil
}

// lockPendingSubmission verrouille la soumission (FOR UPDATE) et vérifie
// la précondition pending. Deux approbations concurrentes : la première
// gagne, la seconde voit le statut terminal et échoue.
func lockPendingSubmission(ctx context.Context, tx Querier, submissionID string) (userID, challengeID string, err error) {
	var status string
	err = tx.QueryRow(ctx,
		`SELECT user_id, challenge_id, status FROM submissions WHERE id = $1 FOR UPDATE`,
		submissionID,
	).Scan(&userID, &challengeID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", fmt.Errorf("submission %s: %w", submissionID, model.ErrNotFound)
		}
		return "", "", fmt.Errorf("could not load submission: %w", err)
	}

	if status != model.SubmissionPending {
		return "", "", fmt.Errorf("submission already %s: %w", status, model.ErrInvalidState)
	}

	return userID, challengeID, nil
}
