package models

type QuizQuestion struct {
	Question      string   `json:"question" jsonschema:"required"`
	Options       []string `json:"options" jsonschema:"required,minItems=2"`
	CorrectAnswer int      `json:"correctAnswer" jsonschema:"required,description=Index of the correct option (0-3)"`
	Explanation   string   `json:"explanation" jsonschema:"required"`
}

// Valid reports whether the question can be asked: it needs a prompt, at
// least two options and a correct answer pointing at one of them.
func (q QuizQuestion) Valid() bool {
	return q.Question != "" && len(q.Options) >= 2 &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

type QuizResult struct {
	Topic string `json:"topic"`
	Score int    `json:"score"`
	Total int    `json:"total"`
}
