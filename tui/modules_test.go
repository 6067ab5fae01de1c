package tui

import (
	"strings"
	"testing"

	"elasticsense/content"
	"elasticsense/services"
	"elasticsense/services/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModulesModel(t *testing.T) ModulesModel {
	t.Helper()
	catalog, err := content.Load()
	require.NoError(t, err)
	m := NewModulesModel(services.NewModuleService(catalog, llmtest.New()))
	m.SetSize(100, 40)
	return m
}

func TestModulesDeepDive(t *testing.T) {
	m := newModulesModel(t)

	m, _ = m.Update(key("down"))
	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, moduleLoading, m.state)
	assert.Equal(t, "m2", m.active.ID)

	m, _ = m.Update(deepDiveMsg{moduleID: "m1", text: "# Wrong module"})
	assert.Equal(t, moduleLoading, m.state)

	m, _ = m.Update(deepDiveMsg{moduleID: "m2", text: "# Core Solutions\n\nSearch, **Security** and Observability."})
	assert.Equal(t, moduleReading, m.state)
	assert.Contains(t, m.View(), "Observability")

	m, _ = m.Update(key("esc"))
	assert.Equal(t, moduleList, m.state)
}

func TestModulesResizeRewrapsGuide(t *testing.T) {
	m := newModulesModel(t)
	m, _ = m.Update(key("enter"))

	guide := strings.Repeat("Shards split an index so the cluster can spread the work. ", 12)
	m, _ = m.Update(deepDiveMsg{moduleID: "m1", text: guide})
	wide := m.viewport.TotalLineCount()

	m.SetSize(40, 40)
	assert.Greater(t, m.viewport.TotalLineCount(), wide)
}

func TestModulesFilter(t *testing.T) {
	m := newModulesModel(t)

	m, _ = m.Update(key("/"))
	require.True(t, m.filtering)
	m, _ = m.Update(key("sharding"))

	require.Len(t, m.visible, 1)
	assert.Equal(t, "m4", m.visible[0].ID)

	m, _ = m.Update(key("esc"))
	assert.False(t, m.filtering)
	assert.Len(t, m.visible, 5)
}
