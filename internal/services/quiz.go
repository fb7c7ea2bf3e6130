package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/veerakarthick235/Eco-Champs/internal/database"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

const (
	// QuizPointsPerCorrect : points gagnés par bonne réponse
	QuizPointsPerCorrect = 20

	// MinQuizQuestions : en dessous de ce nombre de questions utilisables,
	// le quiz généré est traité comme indisponible
	MinQuizQuestions = 11

	// QuizOptionCount : chaque question porte exactement 4 options
	QuizOptionCount = 4
)

// ScoreQuiz note les réponses soumises contre les questions émises,
// alignées par index. Correspondance exacte de chaîne avec
// correct_answer. Les réponses en trop sont ignorées, les réponses
// manquantes ne comptent ni justes ni fausses.
func ScoreQuiz(questions []model.QuizQuestion, answers []string) (correct, total, points int) {
	total = len(questions)

	n := len(questions)
	if len(answers) < n {
		n = len(answers)
	}
	for i := 0; i < n; i++ {
		if answers[i] == questions[i].CorrectAnswer {
			correct++
		}
	}

	return correct, total, correct * QuizPointsPerCorrect
}

// ValidateQuizPayload vérifie que la réponse du générateur est exploitable :
// au moins MinQuizQuestions questions, 4 options chacune, et une bonne
// réponse qui figure parmi les options.
func ValidateQuizPayload(payload *model.QuizPayload) error {
	if payload == nil || len(payload.Questions) < MinQuizQuestions {
		return fmt.Errorf("insufficient questions")
	}

	for i, q := range payload.Questions {
		if q.QuestionText == "" {
			return fmt.Errorf("question %d has no text", i)
		}
		if len(q.Options) != QuizOptionCount {
			return fmt.Errorf("question %d has %d options", i, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d correct answer not among options", i)
		}
	}

	return nil
}

// CreateQuizAttempt enregistre un jeu de questions émis sous un token
// unique. Les tentatives ouvertes de l'utilisateur sont invalidées :
// une nouvelle génération écrase la précédente.
func CreateQuizAttempt(ctx context.Context, userID, topic string, questions []model.QuizQuestion) (string, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("could not encode questions: %w", err)
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE quiz_attempts SET consumed_at = NOW() WHERE user_id = $1 AND consumed_at IS NULL`,
		userID,
	); err != nil {
		return "", fmt.Errorf("could not void previous attempts: %w", err)
	}

	token := uuid.NewString()
	if _, err := tx.Exec(ctx,
		`INSERT INTO quiz_attempts(id, user_id, topic, questions, issued_at)
		 VALUES($1, $2, $3, $4, NOW())`,
		token, userID, topic, raw,
	); err != nil {
		return "", fmt.Errorf("could not create quiz attempt: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("could not commit quiz attempt: %w", err)
	}

	return token, nil
}

// SubmitQuizAttempt consomme la tentative identifiée par le token, note
// les réponses et applique la même mise à jour atomique
// points-puis-badges que la validation de soumission.
//
// S'il n'existe pas de tentative vivante pour ce token/utilisateur, le
// résultat dégrade en (0, 0, 0) sans erreur : la notation ne doit
// jamais planter, même sans quiz en cours.
func SubmitQuizAttempt(ctx context.Context, userID, token string, answers []string) (*model.QuizResult, []string, error) {
	if token == "" {
		return &model.QuizResult{}, nil, nil
	}
	if _, err := uuid.Parse(token); err != nil {
		return &model.QuizResult{}, nil, nil
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, badges, err := submitQuizAttemptTx(ctx, tx, userID, token, answers)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("could not commit quiz result: %w", err)
	}

	return result, badges, nil
}

func submitQuizAttemptTx(ctx context.Context, tx Querier, userID, token string, answers []string) (*model.QuizResult, []string, error) {
	result := &model.QuizResult{}

	var raw []byte
	err := tx.QueryRow(ctx,
		`SELECT questions FROM quiz_attempts
		 WHERE id = $1 AND user_id = $2 AND consumed_at IS NULL
		 FOR UPDATE`,
		token, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Pas de tentative en cours : score vide
			return result, nil, nil
		}
		return nil, nil, fmt.Errorf("could not load quiz attempt: %w", err)
	}

	var questions []model.QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, nil, fmt.Errorf("could not decode quiz questions: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE quiz_attempts SET consumed_at = NOW() WHERE id = $1`,
		token,
	); err != nil {
		return nil, nil, fmt.Errorf("could not consume quiz attempt: %w", err)
	}

	correct, total, points := ScoreQuiz(questions, answers)
	result.Score = correct
	result.Total = total
	result.PointsEarned = points

	var badges []string
	if points > 0 {
		if _, badges, err = AwardPoints(ctx, tx, userID, points); err != nil {
			return nil, nil, err
		}
	}

	return result, badges, nil
}
