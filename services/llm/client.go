// Package llm wraps the model providers behind one small interface used by
// every conversation and generator in the app.
package llm

import (
	"context"
	"errors"
	"strings"

	"elasticsense/models"
)

var (
	ErrMissingAPIKey = errors.New("API key not found in environment")
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// Client is a text-generation model.
type Client interface {
	// Converse sends message after replaying history and returns the reply text.
	Converse(ctx context.Context, systemInstruction string, history []models.HistoryEntry, message string) (string, error)
	// GenerateStructured asks for a single JSON object matching req.Schema and
	// returns it as raw JSON.
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}

// StructuredRequest describes a schema-constrained one-shot call. Name and
// Description label the function the model is forced to call, or describe
// the expected object when the client uses JSON mode instead of tools.
type StructuredRequest struct {
	Prompt            string
	SystemInstruction string
	Name              string
	Description       string
	Schema            map[string]any
}

// stripFences removes a surrounding ```json fence some models add around
// structured output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

type unavailableClient struct {
	err error
}

func (c unavailableClient) Converse(context.Context, string, []models.HistoryEntry, string) (string, error) {
	return "", c.err
}

func (c unavailableClient) GenerateStructured(context.Context, StructuredRequest) (string, error) {
	return "", c.err
}
