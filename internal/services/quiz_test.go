package services

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	model "github.com/veerakarthick235/Eco-Champs/internal/models"
)

func makeQuestions(n int) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, n)
	for i := range questions {
		correct := fmt.Sprintf("answer-%d", i)
		questions[i] = model.QuizQuestion{
			QuestionText:  fmt.Sprintf("question %d", i),
			Options:       []string{correct, "wrong-a", "wrong-b", "wrong-c"},
			CorrectAnswer: correct,
		}
	}
	return questions
}

func TestScoreQuiz(t *testing.T) {
	questions := makeQuestions(25)

	// 15 bonnes réponses, 5 mauvaises, 5 manquantes
	answers := make([]string, 20)
	for i := 0; i < 15; i++ {
		answers[i] = questions[i].CorrectAnswer
	}
	for i := 15; i < 20; i++ {
		answers[i] = "definitely wrong"
	}

	correct, total, points := ScoreQuiz(questions, answers)
	if correct != 15 || total != 25 || points != 300 {
		t.Errorf("ScoreQuiz = (%d, %d, %d), want (15, 25, 300)", correct, total, points)
	}
}

func TestScoreQuizAllCorrect(t *testing.T) {
	questions := makeQuestions(5)
	answers := make([]string, 5)
	for i, q := range questions {
		answers[i] = q.CorrectAnswer
	}

	correct, total, points := ScoreQuiz(questions, answers)
	if correct != 5 || total != 5 || points != 100 {
		t.Errorf("ScoreQuiz = (%d, %d, %d), want (5, 5, 100)", correct, total, points)
	}
}

func TestScoreQuizExtraAnswersIgnored(t *testing.T) {
	questions := makeQuestions(3)
	answers := []string{
		questions[0].CorrectAnswer,
		questions[1].CorrectAnswer,
		questions[2].CorrectAnswer,
		"extra-1",
		"extra-2",
	}

	correct, total, points := ScoreQuiz(questions, answers)
	if correct != 3 || total != 3 || points != 60 {
		t.Errorf("extra answers changed score: (%d, %d, %d), want (3, 3, 60)", correct, total, points)
	}
}

func TestScoreQuizExactMatchOnly(t *testing.T) {
	questions := []model.QuizQuestion{
		{
			QuestionText:  "q",
			Options:       []string{"Solar", "Coal", "Gas", "Oil"},
			CorrectAnswer: "Solar",
		},
	}

	// La casse compte : comparaison stricte de chaînes
	correct, _, _ := ScoreQuiz(questions, []string{"solar"})
	if correct != 0 {
		t.Errorf("case-insensitive match accepted, want exact match only")
	}
}

func TestScoreQuizEmptyInputs(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.QuizQuestion
		answers   []string
	}{
		{"no questions no answers", nil, nil},
		{"no questions some answers", nil, []string{"a", "b"}},
		{"empty slices", []model.QuizQuestion{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, _, points := ScoreQuiz(tt.questions, tt.answers)
			if correct != 0 || points != 0 {
				t.Errorf("ScoreQuiz = (%d correct, %d points), want (0, 0)", correct, points)
			}
		})
	}
}

func TestScoreQuizNoAnswers(t *testing.T) {
	questions := makeQuestions(10)
	correct, total, points := ScoreQuiz(questions, nil)
	if correct != 0 || total != 10 || points != 0 {
		t.Errorf("ScoreQuiz with no answers = (%d, %d, %d), want (0, 10, 0)", correct, total, points)
	}
}

func TestValidateQuizPayload(t *testing.T) {
	valid := &model.QuizPayload{Questions: makeQuestions(25)}
	if err := ValidateQuizPayload(valid); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	tooFew := &model.QuizPayload{Questions: makeQuestions(MinQuizQuestions - 1)}
	if err := ValidateQuizPayload(tooFew); err == nil {
		t.Error("payload with too few questions accepted")
	}

	if err := ValidateQuizPayload(nil); err == nil {
		t.Error("nil payload accepted")
	}

	missingText := &model.QuizPayload{Questions: makeQuestions(MinQuizQuestions)}
	missingText.Questions[3].QuestionText = ""
	if err := ValidateQuizPayload(missingText); err == nil {
		t.Error("payload with empty question text accepted")
	}

	wrongOptions := &model.QuizPayload{Questions: makeQuestions(MinQuizQuestions)}
	wrongOptions.Questions[0].Options = []string{"a", "b"}
	if err := ValidateQuizPayload(wrongOptions); err == nil {
		t.Error("payload with 2 options accepted")
	}

	badAnswer := &model.QuizPayload{Questions: makeQuestions(MinQuizQuestions)}
	badAnswer.Questions[5].CorrectAnswer = "not an option"
	if err := ValidateQuizPayload(badAnswer); err == nil {
		t.Error("payload whose correct answer is not among options accepted")
	}
}

func TestSubmitQuizAttemptSingleUse(t *testing.T) {
	questions := makeQuestions(12)
	raw, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}

	store := &fakeStore{
		attempts: map[string]*fakeAttempt{
			"tok-1": {userID: "u1", questions: raw},
		},
		users: map[string]*fakeUser{"u1": {points: 0}},
	}

	answers := make([]string, len(questions))
	for i, q := range questions {
		answers[i] = q.CorrectAnswer
	}

	result, badges, err := submitQuizAttemptTx(context.Background(), store, "u1", "tok-1", answers)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 12 || result.Total != 12 || result.PointsEarned != 240 {
		t.Errorf("result = (%d, %d, %d), want (12, 12, 240)", result.Score, result.Total, result.PointsEarned)
	}
	if store.users["u1"].points != 240 {
		t.Errorf("points = %d, want 240", store.users["u1"].points)
	}
	if !reflect.DeepEqual(badges, []string{"Eco-Initiate"}) {
		t.Errorf("badges = %v, want [Eco-Initiate]", badges)
	}

	// Le token est consommé : une re-soumission dégrade en score vide
	// sans re-créditer
	again, _, err := submitQuizAttemptTx(context.Background(), store, "u1", "tok-1", answers)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if again.Score != 0 || again.Total != 0 || again.PointsEarned != 0 {
		t.Errorf("consumed token result = (%d, %d, %d), want (0, 0, 0)", again.Score, again.Total, again.PointsEarned)
	}
	if store.users["u1"].points != 240 {
		t.Errorf("points after re-submit = %d, want 240 (unchanged)", store.users["u1"].points)
	}
}

func TestSubmitQuizAttemptNoLiveAttempt(t *testing.T) {
	store := &fakeStore{attempts: map[string]*fakeAttempt{}}

	result, badges, err := submitQuizAttemptTx(context.Background(), store, "u1", "missing", []string{"a"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 0 || result.Total != 0 || result.PointsEarned != 0 {
		t.Errorf("result = (%d, %d, %d), want (0, 0, 0)", result.Score, result.Total, result.PointsEarned)
	}
	if badges != nil {
		t.Errorf("badges = %v, want nil", badges)
	}
}

func TestSubmitQuizAttemptWrongUser(t *testing.T) {
	raw, _ := json.Marshal(makeQuestions(12))
	store := &fakeStore{
		attempts: map[string]*fakeAttempt{
			"tok-1": {userID: "u1", questions: raw},
		},
	}

	// Une tentative appartient à l'utilisateur qui l'a générée
	result, _, err := submitQuizAttemptTx(context.Background(), store, "u2", "tok-1", []string{"answer-0"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Total != 0 || result.PointsEarned != 0 {
		t.Errorf("foreign attempt graded: (%d, %d, %d), want (0, 0, 0)", result.Score, result.Total, result.PointsEarned)
	}
	if store.attempts["tok-1"].consumed {
		t.Error("foreign attempt was consumed")
	}
}

func TestSubmitQuizAttemptMalformedToken(t *testing.T) {
	// Token vide ou non-uuid : dégradation avant tout accès à la base
	for _, token := range []string{"", "not-a-uuid"} {
		result, badges, err := SubmitQuizAttempt(context.Background(), "u1", token, []string{"a"})
		if err != nil {
			t.Fatalf("token %q: unexpected error %v", token, err)
		}
		if result.Score != 0 || result.Total != 0 || result.PointsEarned != 0 || badges != nil {
			t.Errorf("token %q: result = (%d, %d, %d), want (0, 0, 0)", token, result.Score, result.Total, result.PointsEarned)
		}
	}
}
