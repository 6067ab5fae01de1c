package llm

import (
	"testing"

	"elasticsense/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaForQuizQuestion(t *testing.T) {
	schema, err := SchemaFor[models.QuizQuestion]()
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "additionalProperties")

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "question")
	assert.Contains(t, props, "options")
	assert.Contains(t, props, "correctAnswer")
	assert.Contains(t, props, "explanation")

	assert.ElementsMatch(t, []any{"question", "options", "correctAnswer", "explanation"}, schema["required"])
}

func TestSchemaForNestedTypes(t *testing.T) {
	schema, err := SchemaFor[models.ArchitectureDesign]()
	require.NoError(t, err)

	props := schema["properties"].(map[string]any)
	nodes := props["nodes"].(map[string]any)
	assert.Equal(t, "array", nodes["type"])

	item := nodes["items"].(map[string]any)
	assert.NotContains(t, item, "additionalProperties")

	nodeType := item["properties"].(map[string]any)["type"].(map[string]any)
	assert.ElementsMatch(t, []any{"master", "data", "coordinating", "ml", "ingest"}, nodeType["enum"])
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare", input: `{"a":1}`, expected: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "plain fence", input: "```\n{\"a\":1}\n```\n", expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripFences(tt.input))
		})
	}
}
