// Package quiz generates multiple-choice quizzes and tracks a quiz attempt.
package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"elasticsense/models"
	"elasticsense/services/llm"
	"elasticsense/services/prompts"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	QuestionCount = 3

	generateQuizPrompt = `Generate %d multiple-choice questions about "%s" for an Elastic Solutions Architect interview.
    Use the following knowledge base for context on difficulty and style:
    %s

    Ensure questions test conceptual understanding (sizing, architecture, value) and scenarios, not just trivia.`

	generateQuizToolName        = "generate_quiz"
	generateQuizToolDescription = "Return the generated multiple-choice questions"
)

type quizPayload struct {
	Questions []models.QuizQuestion `json:"questions" jsonschema:"required,description=The generated questions"`
}

type Generator struct {
	llm llm.Client
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{llm: client}
}

// Generate asks the model for a quiz on topic. Any failure yields an empty
// slice; questions that cannot be asked are dropped.
func (g *Generator) Generate(ctx context.Context, topic string) []models.QuizQuestion {
	log.Infof("Starting quiz generation for topic %q", topic)

	questions, err := g.generate(ctx, topic)
	if err != nil {
		log.Errorf("Failed to generate quiz: %v", err)
		return nil
	}

	valid := lo.Filter(questions, func(q models.QuizQuestion, _ int) bool { return q.Valid() })
	if len(valid) < len(questions) {
		log.Warnf("Dropped %d malformed quiz questions", len(questions)-len(valid))
	}

	log.Infof("Successfully generated %d quiz questions", len(valid))
	return valid
}

func (g *Generator) generate(ctx context.Context, topic string) ([]models.QuizQuestion, error) {
	schema, err := llm.SchemaFor[quizPayload]()
	if err != nil {
		return nil, err
	}

	raw, err := g.llm.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt:      fmt.Sprintf(generateQuizPrompt, QuestionCount, topic, prompts.CoreKnowledgeBase),
		Name:        generateQuizToolName,
		Description: generateQuizToolDescription,
		Schema:      schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call model: %w", err)
	}

	return parseQuestions(raw)
}

// parseQuestions accepts the wrapped payload or a bare array.
func parseQuestions(raw string) ([]models.QuizQuestion, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "[") {
		var questions []models.QuizQuestion
		if err := json.Unmarshal([]byte(raw), &questions); err != nil {
			return nil, fmt.Errorf("failed to parse quiz questions: %w", err)
		}
		return questions, nil
	}

	var payload quizPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse quiz questions: %w", err)
	}
	return payload.Questions, nil
}

// ResolveTopic picks the topic closest to query, tolerating typos and
// partial names.
func ResolveTopic(query string, topics []string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	for _, topic := range topics {
		if strings.EqualFold(topic, query) {
			return topic, true
		}
	}

	ranks := fuzzy.RankFindFold(query, topics)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	return ranks[0].Target, true
}
