package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

// fakeStore implémente Querier en mémoire et reproduit le comportement
// des requêtes du moteur (verrou, UPDATE gardé, incrément, écrasement
// des badges) pour exercer la machine à états hors base.
type fakeStore struct {
	submissions map[string]*fakeSubmission
	challenges  map[string]int
	users       map[string]*fakeUser
	attempts    map[string]*fakeAttempt
}

type fakeSubmission struct {
	userID      string
	challengeID string
	status      string
}

type fakeUser struct {
	points int
	badges []string
}

type fakeAttempt struct {
	userID    string
	questions []byte
	consumed  bool
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func noRows(dest ...any) error { return pgx.ErrNoRows }

func (s *fakeStore) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	switch {
	case strings.Contains(sql, "FROM submissions"):
		sub, ok := s.submissions[args[0].(string)]
		if !ok {
			return fakeRow{scan: noRows}
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*string) = sub.userID
			*dest[1].(*string) = sub.challengeID
			*dest[2].(*string) = sub.status
			return nil
		}}

	case strings.Contains(sql, "FROM challenges"):
		points, ok := s.challenges[args[0].(string)]
		if !ok {
			return fakeRow{scan: noRows}
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = points
			return nil
		}}

	case strings.Contains(sql, "RETURNING points"):
		user, ok := s.users[args[1].(string)]
		if !ok {
			return fakeRow{scan: noRows}
		}
		user.points += args[0].(int)
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = user.points
			return nil
		}}

	case strings.Contains(sql, "FROM quiz_attempts"):
		attempt, ok := s.attempts[args[0].(string)]
		if !ok || attempt.consumed || attempt.userID != args[1].(string) {
			return fakeRow{scan: noRows}
		}
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*[]byte) = attempt.questions
			return nil
		}}
	}

	return fakeRow{scan: noRows}
}

func (s *fakeStore) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "UPDATE submissions"):
		// args : statut, reviewer, id, précondition pending
		sub, ok := s.submissions[args[2].(string)]
		if !ok || sub.status != args[3].(string) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		sub.status = args[0].(string)
		return pgconn.NewCommandTag("UPDATE 1"), nil

	case strings.Contains(sql, "SET badges"):
		if user, ok := s.users[args[1].(string)]; ok {
			user.badges = []string(*args[0].(*pq.StringArray))
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil

	case strings.Contains(sql, "UPDATE quiz_attempts"):
		if attempt, ok := s.attempts[args[0].(string)]; ok {
			attempt.consumed = true
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}

	return pgconn.NewCommandTag("UPDATE 0"), nil
}

func TestApproveSubmissionCreditsExactlyOnce(t *testing.T) {
	store := &fakeStore{
		submissions: map[string]*fakeSubmission{
			"sub-1": {userID: "u1", challengeID: "c1", status: model.SubmissionPending},
		},
		challenges: map[string]int{"c1": 50},
		users:      map[string]*fakeUser{"u1": {points: 80}},
	}

	result, err := approveSubmissionTx(context.Background(), store, "sub-1", "teacher-1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if result.PointsAwarded != 50 || result.NewTotal != 130 {
		t.Errorf("award = (%d, total %d), want (50, total 130)", result.PointsAwarded, result.NewTotal)
	}
	if !reflect.DeepEqual(result.Badges, []string{"Eco-Initiate"}) {
		t.Errorf("badges = %v, want [Eco-Initiate]", result.Badges)
	}
	if store.submissions["sub-1"].status != model.SubmissionApproved {
		t.Errorf("status = %s, want approved", store.submissions["sub-1"].status)
	}
	if !reflect.DeepEqual(store.users["u1"].badges, []string{"Eco-Initiate"}) {
		t.Errorf("persisted badges = %v, want [Eco-Initiate]", store.users["u1"].badges)
	}

	// Deuxième approbation : l'état est terminal, aucun re-crédit
	if _, err := approveSubmissionTx(context.Background(), store, "sub-1", "teacher-1"); !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("re-approve error = %v, want ErrInvalidState", err)
	}
	if store.users["u1"].points != 130 {
		t.Errorf("points after re-approve = %d, want 130 (unchanged)", store.users["u1"].points)
	}
}

func TestApproveSubmissionUnknownID(t *testing.T) {
	store := &fakeStore{submissions: map[string]*fakeSubmission{}}

	if _, err := approveSubmissionTx(context.Background(), store, "missing", "teacher-1"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRejectSubmissionAwardsNothing(t *testing.T) {
	store := &fakeStore{
		submissions: map[string]*fakeSubmission{
			"sub-1": {userID: "u1", challengeID: "c1", status: model.SubmissionPending},
		},
		challenges: map[string]int{"c1": 50},
		users:      map[string]*fakeUser{"u1": {points: 80}},
	}

	result, err := rejectSubmissionTx(context.Background(), store, "sub-1", "teacher-1")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if result.Status != model.SubmissionRejected || result.PointsAwarded != 0 {
		t.Errorf("result = (%s, %d points), want (rejected, 0 points)", result.Status, result.PointsAwarded)
	}
	if store.users["u1"].points != 80 {
		t.Errorf("points after reject = %d, want 80 (unchanged)", store.users["u1"].points)
	}

	// rejected est terminal : une approbation ultérieure échoue
	if _, err := approveSubmissionTx(context.Background(), store, "sub-1", "teacher-1"); !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("approve after reject error = %v, want ErrInvalidState", err)
	}
}

func TestRejectSubmissionAlreadyReviewed(t *testing.T) {
	store := &fakeStore{
		submissions: map[string]*fakeSubmission{
			"sub-1": {userID: "u1", challengeID: "c1", status: model.SubmissionApproved},
		},
	}

	if _, err := rejectSubmissionTx(context.Background(), store, "sub-1", "teacher-1"); !errors.Is(err, model.ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}
}
