package tui

import (
	"context"
	"fmt"
	"strings"

	"elasticsense/models"
	"elasticsense/services"
	"elasticsense/services/render"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type moduleState int

const (
	moduleList moduleState = iota
	moduleLoading
	moduleReading
)

type deepDiveMsg struct {
	moduleID string
	text     string
}

// ModulesModel is the learning path: a module list with fuzzy filtering and
// a generated study guide per module.
type ModulesModel struct {
	service *services.ModuleService

	state     moduleState
	visible   []models.ModuleDefinition
	cursor    int
	active    models.ModuleDefinition
	guide     string
	filter    textinput.Model
	filtering bool

	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

func NewModulesModel(service *services.ModuleService) ModulesModel {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter modules"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(elasticTeal)

	return ModulesModel{
		service:  service,
		visible:  service.Modules(),
		filter:   filter,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

func (m *ModulesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-3, 3)
	if m.state == moduleReading {
		m.paintGuide()
	}
}

func (m *ModulesModel) paintGuide() {
	m.viewport.SetContent(PaintBlocks(render.Render(m.guide, render.Module), max(m.viewport.Width-2, 10)))
}

func (m ModulesModel) Init() tea.Cmd {
	return nil
}

func (m ModulesModel) Update(msg tea.Msg) (ModulesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case deepDiveMsg:
		if m.state != moduleLoading || msg.moduleID != m.active.ID {
			return m, nil
		}
		m.state = moduleReading
		m.guide = msg.text
		m.paintGuide()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.state != moduleLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.state {
		case moduleList:
			return m.handleListKey(msg)
		case moduleReading:
			return m.handleReadingKey(msg)
		}
	}
	return m, nil
}

func (m ModulesModel) handleListKey(msg tea.KeyMsg) (ModulesModel, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.Reset()
			m.applyFilter()
			return m, nil
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.visible) == 0 {
			return m, nil
		}
		m.active = m.visible[m.cursor]
		m.state = moduleLoading
		return m, tea.Batch(m.deepDiveCmd(m.active), m.spinner.Tick)
	}
	return m, nil
}

func (m ModulesModel) handleReadingKey(msg tea.KeyMsg) (ModulesModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.state = moduleList
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ModulesModel) applyFilter() {
	m.visible = m.service.Search(m.filter.Value())
	m.cursor = min(m.cursor, max(len(m.visible)-1, 0))
}

func (m ModulesModel) deepDiveCmd(module models.ModuleDefinition) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return deepDiveMsg{moduleID: module.ID, text: service.DeepDive(context.Background(), module)}
	}
}

func (m ModulesModel) View() string {
	switch m.state {
	case moduleLoading:
		return titleStyle.Render(m.active.Title) + "\n\n" +
			m.spinner.View() + helpStyle.Render(" Generating a deep dive study guide...")
	case moduleReading:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.active.Title),
			m.viewport.View(),
			helpStyle.Render("↑/↓ scroll • esc back to modules"),
		)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Phase 1: Foundation") + "\n")
	sb.WriteString(helpStyle.Render("Master the core concepts before the interview.") + "\n\n")

	if m.filtering || m.filter.Value() != "" {
		sb.WriteString(m.filter.View() + "\n\n")
	}
	if len(m.visible) == 0 {
		sb.WriteString(helpStyle.Render("No modules match.") + "\n")
	}

	for i, module := range m.visible {
		cursor := "  "
		title := module.Title
		if i == m.cursor {
			cursor = selectedStyle.Render("› ")
			title = selectedStyle.Render(title)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", cursor, helpStyle.Render(strings.ToUpper(module.ID)), title))
		sb.WriteString(fmt.Sprintf("     %s\n", module.Description))
		sb.WriteString(fmt.Sprintf("     %s\n\n", helpStyle.Render(strings.Join(module.Topics, " · "))))
	}

	sb.WriteString(helpStyle.Render("↑/↓ select • enter deep dive • / filter"))
	return sb.String()
}
