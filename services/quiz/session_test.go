package quiz

import (
	"testing"

	"elasticsense/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Question: "Max heap?", Options: []string{"16GB", "31GB", "64GB"}, CorrectAnswer: 1, Explanation: "Compressed oops."},
		{Question: "Beats is a?", Options: []string{"Kitchen", "Microwave"}, CorrectAnswer: 1, Explanation: "Analogy."},
	}
}

func TestAnswerCorrect(t *testing.T) {
	s := NewSession()
	s.Begin("How Elastic Works", sampleQuestions())

	correct, err := s.Answer(1)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.True(t, s.ShowResult())
	assert.Equal(t, 1, s.Score())

	selected, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, selected)
}

func TestAnswerWrong(t *testing.T) {
	s := NewSession()
	s.Begin("How Elastic Works", sampleQuestions())

	correct, err := s.Answer(2)
	require.NoError(t, err)
	assert.False(t, correct)
	assert.True(t, s.ShowResult())
	assert.Equal(t, 0, s.Score())
}

func TestAnswerOnlyOnce(t *testing.T) {
	s := NewSession()
	s.Begin("How Elastic Works", sampleQuestions())

	_, err := s.Answer(1)
	require.NoError(t, err)

	_, err = s.Answer(0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, 1, s.Score())
	selected, _ := s.Selected()
	assert.Equal(t, 1, selected)
}

func TestAnswerValidation(t *testing.T) {
	s := NewSession()
	_, err := s.Answer(0)
	assert.ErrorIs(t, err, ErrNoActiveQuiz)

	s.Begin("t", sampleQuestions())
	_, err = s.Answer(3)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	_, err = s.Answer(-1)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	assert.False(t, s.ShowResult())
}

func TestNextAdvancesAndClears(t *testing.T) {
	s := NewSession()
	s.Begin("t", sampleQuestions())
	_, _ = s.Answer(0)

	result, finished := s.Next()
	assert.False(t, finished)
	assert.Equal(t, models.QuizResult{}, result)

	index, total := s.Progress()
	assert.Equal(t, 1, index)
	assert.Equal(t, 2, total)
	assert.False(t, s.ShowResult())
	_, ok := s.Selected()
	assert.False(t, ok)

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Beats is a?", q.Question)
}

func TestNextAfterLastFinishes(t *testing.T) {
	s := NewSession()
	s.Begin("How Elastic Works", sampleQuestions())

	_, _ = s.Answer(1)
	s.Next()
	_, _ = s.Answer(1)
	result, finished := s.Next()

	require.True(t, finished)
	assert.Equal(t, models.QuizResult{Topic: "How Elastic Works", Score: 2, Total: 2}, result)
	assert.Equal(t, "Quiz finished! Score: 2/2", Summary(result))

	assert.False(t, s.Active())
	assert.False(t, s.ShowResult())
	_, ok := s.Current()
	assert.False(t, ok)
	index, total := s.Progress()
	assert.Equal(t, 0, index)
	assert.Equal(t, 0, total)

	_, finished = s.Next()
	assert.False(t, finished)
}

func TestBeginResetsScore(t *testing.T) {
	s := NewSession()
	s.Begin("t", sampleQuestions())
	_, _ = s.Answer(1)

	s.Begin("u", sampleQuestions())

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, "u", s.Topic())
	assert.False(t, s.ShowResult())

	s.Begin("empty", nil)
	assert.False(t, s.Active())
}
