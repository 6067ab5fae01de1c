package tui

import (
	"testing"

	"elasticsense/models"
	"elasticsense/services/architecture"
	"elasticsense/services/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchitectModel() ArchitectModel {
	m := NewArchitectModel(architecture.NewGenerator(llmtest.New()))
	m.SetSize(120, 40)
	return m
}

func sampleDesign() *models.ArchitectureDesign {
	return &models.ArchitectureDesign{
		Nodes: []models.ArchitectureNode{
			{Type: models.NodeMaster, Count: 3, Specs: "8GB RAM"},
			{Type: models.NodeData, Count: 6, Specs: "64GB RAM / 16 vCPU"},
		},
		ShardsPerIndex: 3,
		ReplicaCount:   1,
		ILMPolicy:      "Hot 7d, warm 30d, delete 90d",
		Summary:        "Dedicated masters with a hot-warm data tier.",
		CostEstimation: "About $9k per month",
	}
}

func TestArchitectFlow(t *testing.T) {
	m := newArchitectModel()
	m.input.SetValue("  2TB/day of security logs  ")

	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "2TB/day of security logs", m.loading)
	assert.Contains(t, m.View(), "Designing cluster")

	// a second submit while designing is ignored
	_, cmd = m.Update(key("enter"))
	assert.Nil(t, cmd)

	m, _ = m.Update(designGeneratedMsg{scenario: "2TB/day of security logs", design: sampleDesign()})

	assert.Empty(t, m.loading)
	assert.False(t, m.failed)
	view := m.View()
	assert.Contains(t, view, "3 × MASTER")
	assert.Contains(t, view, "6 × DATA")
	assert.Contains(t, view, "Nodes: 9")
	assert.Contains(t, view, "Hot 7d, warm 30d, delete 90d")
	assert.Contains(t, view, "About $9k per month")
}

func TestArchitectGenerationFailure(t *testing.T) {
	m := newArchitectModel()
	m.input.SetValue("tiny blog search")
	m, _ = m.Update(key("enter"))

	m, _ = m.Update(designGeneratedMsg{scenario: "tiny blog search"})

	assert.True(t, m.failed)
	assert.Nil(t, m.design)
	assert.Contains(t, m.View(), "Could not generate a design")
}

func TestArchitectIgnoresStaleDesigns(t *testing.T) {
	m := newArchitectModel()

	m, _ = m.Update(designGeneratedMsg{scenario: "old scenario", design: sampleDesign()})
	assert.Nil(t, m.design)

	m.input.SetValue("new scenario")
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(designGeneratedMsg{scenario: "old scenario", design: sampleDesign()})

	assert.Equal(t, "new scenario", m.loading)
	assert.Nil(t, m.design)
	assert.False(t, m.failed)
}

func TestArchitectBlankScenario(t *testing.T) {
	m := newArchitectModel()
	m.input.SetValue("   ")

	m, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.loading)
}
