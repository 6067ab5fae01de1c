package tui

import (
	"context"
	"fmt"
	"strings"

	"elasticsense/models"
	"elasticsense/services/architecture"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type designGeneratedMsg struct {
	scenario string
	design   *models.ArchitectureDesign
}

// ArchitectModel turns a free-text scenario into a cluster design.
type ArchitectModel struct {
	generator *architecture.Generator

	input   textinput.Model
	spinner spinner.Model
	loading string
	design  *models.ArchitectureDesign
	failed  bool
	width   int
}

func NewArchitectModel(generator *architecture.Generator) ArchitectModel {
	input := textinput.New()
	input.Prompt = "Scenario › "
	input.Placeholder = "e.g. 2TB/day of security logs, 90 day retention, SOC team of 20"
	input.CharLimit = 1000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(elasticTeal)

	return ArchitectModel{
		generator: generator,
		input:     input,
		spinner:   sp,
	}
}

func (m *ArchitectModel) SetSize(width, _ int) {
	m.width = width
	m.input.Width = max(width-16, 10)
}

func (m ArchitectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ArchitectModel) Update(msg tea.Msg) (ArchitectModel, tea.Cmd) {
	switch msg := msg.(type) {
	case designGeneratedMsg:
		if msg.scenario != m.loading {
			return m, nil
		}
		m.loading = ""
		m.design = msg.design
		m.failed = msg.design == nil
		return m, nil

	case spinner.TickMsg:
		if m.loading == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "enter" {
			scenario := strings.TrimSpace(m.input.Value())
			if scenario == "" || m.loading != "" {
				return m, nil
			}
			m.loading = scenario
			m.failed = false
			return m, tea.Batch(m.generateCmd(scenario), m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ArchitectModel) generateCmd(scenario string) tea.Cmd {
	generator := m.generator
	return func() tea.Msg {
		return designGeneratedMsg{scenario: scenario, design: generator.Generate(context.Background(), scenario)}
	}
}

func (m ArchitectModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Architecture Sandbox") + "\n")
	sb.WriteString(helpStyle.Render("Describe a customer scenario and get a sized cluster design.") + "\n\n")
	sb.WriteString(m.input.View() + "\n\n")

	switch {
	case m.loading != "":
		sb.WriteString(m.spinner.View() + helpStyle.Render(" Designing cluster..."))
	case m.failed:
		sb.WriteString(errorStyle.Render("Could not generate a design. Check your API key and try again."))
	case m.design != nil:
		sb.WriteString(designView(m.design, m.width))
	}
	return sb.String()
}

func nodeColor(t models.NodeType) lipgloss.Color {
	switch t {
	case models.NodeMaster:
		return elasticPink
	case models.NodeData:
		return elasticBlue
	case models.NodeCoordinating:
		return mutedGray
	case models.NodeML:
		return elasticYellow
	case models.NodeIngest:
		return elasticTeal
	default:
		panic("tui: unknown node type " + string(t))
	}
}

func designView(d *models.ArchitectureDesign, width int) string {
	cards := make([]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		color := nodeColor(n.Type)
		title := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(fmt.Sprintf("%d × %s", n.Count, strings.ToUpper(string(n.Type))))
		cards = append(cards, cardStyle.BorderForeground(color).Render(title+"\n"+n.Specs))
	}

	// lay cards out in rows that fit the width
	perRow := max(width/(lipgloss.Width(cardStyle.Render(""))+1), 1)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+perRow, len(cards))]...))
	}

	wrap := lipgloss.NewStyle().Width(max(width-2, 20))
	stats := fmt.Sprintf("%s %d   %s %d   %s %d",
		calloutLabelStyle.Render("Nodes:"), d.TotalNodes(),
		calloutLabelStyle.Render("Shards/index:"), d.ShardsPerIndex,
		calloutLabelStyle.Render("Replicas:"), d.ReplicaCount)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		stats,
		"",
		wrap.Render(calloutLabelStyle.Render("ILM Policy: ")+d.ILMPolicy),
		"",
		wrap.Render(d.Summary),
		"",
		wrap.Render(calloutLabelStyle.Render("Estimated cost: ")+d.CostEstimation),
	)
}
