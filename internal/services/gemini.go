package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/veerakarthick235/Eco-Champs/internal/config"
	"github.com/veerakarthick235/Eco-Champs/internal/logger"
	model "github.com/veerakarthick235/Eco-Champs/internal/models"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.5-flash"

const quizPromptTemplate = `
Generate 25 unique multiple-choice quiz questions about the environmental topic: '%s' for Indian school students (Grade 8-12).
The questions should be practical and relevant to India.
Provide the output in a valid JSON format.
The JSON object should have a single key "questions" which is an array of objects.
Each object in the array should have the following keys:
- "question_text": The question string.
- "options": An array of 4 string options.
- "correct_answer": The string of the correct option.
`

// GeminiService encapsule l'appel au générateur de questions.
// Toute défaillance (appel, parsing, payload trop court) est renvoyée
// comme ErrExternalService : l'appelant dégrade en "quiz indisponible",
// jamais de retry automatique.
type GeminiService struct {
	client *genai.Client
}

// NewGeminiService creates a new Gemini service instance
func NewGeminiService(ctx context.Context, cfg *config.Config) (*GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini configuration is missing")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	return &GeminiService{client: client}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

// GenerateQuizQuestions demande à Gemini un quiz de 25 questions sur le
// sujet donné et valide la structure reçue
func (s *GeminiService) GenerateQuizQuestions(ctx context.Context, topic string) (*model.QuizPayload, error) {
	gm := s.client.GenerativeModel(geminiModel)

	resp, err := gm.GenerateContent(ctx, genai.Text(fmt.Sprintf(quizPromptTemplate, topic)))
	if err != nil {
		logger.Error("Gemini call failed for topic %q: %v", topic, err)
		return nil, fmt.Errorf("gemini call failed: %w", model.ErrExternalService)
	}

	raw := extractResponseText(resp)
	raw = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "```json", ""), "```", ""))

	var payload model.QuizPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Error("Gemini returned unparseable JSON for topic %q: %v", topic, err)
		return nil, fmt.Errorf("unusable gemini response: %w", model.ErrExternalService)
	}

	if err := ValidateQuizPayload(&payload); err != nil {
		logger.Error("Gemini returned invalid quiz for topic %q: %v", topic, err)
		return nil, fmt.Errorf("invalid quiz payload: %w", model.ErrExternalService)
	}

	logger.Success("Generated a %d-question quiz for topic %q", len(payload.Questions), topic)
	return &payload, nil
}

// extractResponseText concatène les parties textuelles de la réponse
func extractResponseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
