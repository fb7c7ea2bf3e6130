package model

// QuizQuestion suit le schéma JSON renvoyé par Gemini
type QuizQuestion struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type QuizPayload struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizResult : résultat de notation renvoyé au client
type QuizResult struct {
	Score        int `json:"score"`
	Total        int `json:"total"`
	PointsEarned int `json:"points_earned"`
}
