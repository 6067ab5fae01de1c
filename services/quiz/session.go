package quiz

import (
	"errors"
	"fmt"

	"elasticsense/models"
)

var (
	ErrNoActiveQuiz     = errors.New("no quiz in progress")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrOptionOutOfRange = errors.New("option out of range")
)

// Session is one attempt at a quiz. While a quiz is active the cursor always
// points at an existing question.
type Session struct {
	topic      string
	questions  []models.QuizQuestion
	index      int
	selected   int
	showResult bool
	score      int
}

func NewSession() *Session {
	return &Session{selected: -1}
}

// Begin starts a fresh attempt. An empty question list leaves the session
// inactive.
func (s *Session) Begin(topic string, questions []models.QuizQuestion) {
	*s = Session{
		topic:     topic,
		questions: append([]models.QuizQuestion(nil), questions...),
		selected:  -1,
	}
}

func (s *Session) Active() bool {
	return len(s.questions) > 0
}

func (s *Session) Topic() string {
	return s.topic
}

func (s *Session) Current() (models.QuizQuestion, bool) {
	if !s.Active() {
		return models.QuizQuestion{}, false
	}
	return s.questions[s.index], true
}

// Answer selects option i for the current question and reports whether it
// was correct. A question can be answered once.
func (s *Session) Answer(i int) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrNoActiveQuiz
	}
	if s.showResult {
		return false, ErrAlreadyAnswered
	}
	if i < 0 || i >= len(q.Options) {
		return false, fmt.Errorf("%w: %d", ErrOptionOutOfRange, i)
	}

	s.selected = i
	s.showResult = true
	correct := i == q.CorrectAnswer
	if correct {
		s.score++
	}
	return correct, nil
}

// Next moves to the following question. After the last question the quiz
// ends, the question state is cleared and the final result is returned with
// finished set.
func (s *Session) Next() (models.QuizResult, bool) {
	if !s.Active() {
		return models.QuizResult{}, false
	}

	s.selected = -1
	s.showResult = false

	if s.index+1 < len(s.questions) {
		s.index++
		return models.QuizResult{}, false
	}

	result := models.QuizResult{Topic: s.topic, Score: s.score, Total: len(s.questions)}
	s.questions = nil
	s.index = 0
	return result, true
}

// Progress returns the zero-based cursor and the number of questions.
func (s *Session) Progress() (int, int) {
	return s.index, len(s.questions)
}

func (s *Session) Score() int {
	return s.score
}

// Selected returns the chosen option of the current question, if any.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

func (s *Session) ShowResult() bool {
	return s.showResult
}

func Summary(r models.QuizResult) string {
	return fmt.Sprintf("Quiz finished! Score: %d/%d", r.Score, r.Total)
}
