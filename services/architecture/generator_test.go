package architecture

import (
	"context"
	"errors"
	"testing"

	"elasticsense/models"
	"elasticsense/services/llm/llmtest"
	"elasticsense/services/prompts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const designJSON = `{
	"nodes": [
		{"type": "master", "count": 3, "specs": "8GB RAM / 2 vCPU"},
		{"type": "data", "count": 6, "specs": "64GB RAM / 16 vCPU"},
		{"type": "ingest", "count": 2, "specs": "16GB RAM / 4 vCPU"}
	],
	"shardsPerIndex": 3,
	"replicaCount": 1,
	"ilmPolicy": "Hot 7d -> Warm 30d -> Cold 90d",
	"summary": "Log analytics cluster.",
	"costEstimation": "$12k/month"
}`

func TestGenerate(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: designJSON})
	g := NewGenerator(fake)

	design := g.Generate(context.Background(), "  1TB/day of logs, 30 day retention ")

	require.NotNil(t, design)
	assert.Len(t, design.Nodes, 3)
	assert.Equal(t, models.NodeMaster, design.Nodes[0].Type)
	assert.Equal(t, 11, design.TotalNodes())
	assert.Equal(t, "Hot 7d -> Warm 30d -> Cold 90d", design.ILMPolicy)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, prompts.ArchitectureSystemPrompt, calls[0].SystemInstruction)
	assert.Contains(t, calls[0].Message, `scenario: "1TB/day of logs, 30 day retention"`)
	assert.Equal(t, designToolName, calls[0].Structured.Name)
}

func TestGenerateBlankScenario(t *testing.T) {
	fake := llmtest.New()
	g := NewGenerator(fake)

	assert.Nil(t, g.Generate(context.Background(), "   "))
	assert.Empty(t, fake.Calls())
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply llmtest.Reply
	}{
		{name: "request error", reply: llmtest.Reply{Err: errors.New("timeout")}},
		{name: "malformed json", reply: llmtest.Reply{Text: `{"nodes": [`}},
		{name: "no nodes", reply: llmtest.Reply{Text: `{"nodes": [], "summary": "empty"}`}},
		{name: "unknown node type", reply: llmtest.Reply{Text: `{"nodes": [{"type": "gpu", "count": 1, "specs": "x"}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(llmtest.New(tt.reply))
			assert.Nil(t, g.Generate(context.Background(), "e-commerce search"))
		})
	}
}
