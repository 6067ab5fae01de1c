package tui

import (
	"context"
	"fmt"
	"strings"

	"elasticsense/models"
	"elasticsense/services/quiz"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type quizState int

const (
	quizPicking quizState = iota
	quizLoading
	quizAnswering
	quizFinished
)

type quizGeneratedMsg struct {
	topic     string
	questions []models.QuizQuestion
}

// QuizModel lets the user pick a topic, answer the generated questions and
// see the final score.
type QuizModel struct {
	generator *quiz.Generator
	session   *quiz.Session
	topics    []string

	state   quizState
	cursor  int
	loading string
	alert   string
	summary string
	spinner spinner.Model
	width   int
}

func NewQuizModel(generator *quiz.Generator, topics []string) QuizModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(elasticTeal)

	return QuizModel{
		generator: generator,
		session:   quiz.NewSession(),
		topics:    topics,
		spinner:   sp,
	}
}

func (m *QuizModel) SetSize(width, _ int) {
	m.width = width
}

func (m QuizModel) Init() tea.Cmd {
	return nil
}

// Start generates a quiz on topic right away.
func (m QuizModel) Start(topic string) (QuizModel, tea.Cmd) {
	m.state = quizLoading
	m.loading = topic
	m.alert = ""
	return m, tea.Batch(m.generateCmd(topic), m.spinner.Tick)
}

func (m QuizModel) Update(msg tea.Msg) (QuizModel, tea.Cmd) {
	switch msg := msg.(type) {
	case quizGeneratedMsg:
		if m.state != quizLoading || msg.topic != m.loading {
			return m, nil
		}
		if len(msg.questions) == 0 {
			m.state = quizPicking
			m.alert = "Failed to generate quiz. Try again."
			return m, nil
		}
		m.session.Begin(msg.topic, msg.questions)
		m.state = quizAnswering
		return m, nil

	case spinner.TickMsg:
		if m.state != quizLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m QuizModel) handleKey(msg tea.KeyMsg) (QuizModel, tea.Cmd) {
	key := msg.String()

	switch m.state {
	case quizPicking:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.topics)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.topics) > 0 {
				return m.Start(m.topics[m.cursor])
			}
		}

	case quizAnswering:
		if m.session.ShowResult() {
			if key == "enter" || key == "n" {
				if result, finished := m.session.Next(); finished {
					m.summary = quiz.Summary(result)
					m.state = quizFinished
				}
			}
			return m, nil
		}
		q, ok := m.session.Current()
		i, isOption := optionIndex(key)
		if !ok || !isOption || i >= len(q.Options) {
			return m, nil
		}
		if _, err := m.session.Answer(i); err != nil {
			m.alert = fmt.Sprintf("Could not record answer: %v", err)
			return m, nil
		}
		m.alert = ""

	case quizFinished:
		if key == "enter" {
			m.state = quizPicking
			m.summary = ""
		}
	}
	return m, nil
}

// optionIndex maps 1-9 and a-i to option indexes.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	}
	return 0, false
}

func (m QuizModel) generateCmd(topic string) tea.Cmd {
	generator := m.generator
	return func() tea.Msg {
		return quizGeneratedMsg{topic: topic, questions: generator.Generate(context.Background(), topic)}
	}
}

func (m QuizModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Knowledge Check") + "\n\n")

	switch m.state {
	case quizLoading:
		sb.WriteString(m.spinner.View() + helpStyle.Render(fmt.Sprintf(" Generating questions on %s...", m.loading)))

	case quizPicking:
		sb.WriteString("Select a topic to test your knowledge:\n\n")
		for i, topic := range m.topics {
			if i == m.cursor {
				sb.WriteString(selectedStyle.Render("› "+topic) + "\n")
			} else {
				sb.WriteString("  " + topic + "\n")
			}
		}
		if m.alert != "" {
			sb.WriteString("\n" + errorStyle.Render(m.alert) + "\n")
		}
		sb.WriteString("\n" + helpStyle.Render("↑/↓ select • enter start"))

	case quizAnswering:
		sb.WriteString(m.questionView())

	case quizFinished:
		sb.WriteString(correctStyle.Render(m.summary) + "\n\n")
		sb.WriteString(helpStyle.Render("enter choose another topic"))
	}
	return sb.String()
}

func (m QuizModel) questionView() string {
	q, ok := m.session.Current()
	if !ok {
		return ""
	}
	index, total := m.session.Progress()
	selected, answered := m.session.Selected()
	wrap := lipgloss.NewStyle().Width(max(m.width-4, 20))

	var sb strings.Builder
	sb.WriteString(helpStyle.Render(fmt.Sprintf("Question %d of %d • Score: %d", index+1, total, m.session.Score())) + "\n\n")
	sb.WriteString(wrap.Render(q.Question) + "\n\n")

	for i, option := range q.Options {
		line := fmt.Sprintf("%c) %s", 'a'+i, option)
		switch {
		case answered && i == q.CorrectAnswer:
			line = correctStyle.Render(line + " ✓")
		case answered && i == selected:
			line = wrongStyle.Render(line + " ✗")
		}
		sb.WriteString("  " + line + "\n")
	}
	if m.alert != "" {
		sb.WriteString("\n" + errorStyle.Render(m.alert) + "\n")
	}

	if m.session.ShowResult() {
		sb.WriteString("\n" + wrap.Render(calloutLabelStyle.Render("Explanation: ")+q.Explanation) + "\n\n")
		sb.WriteString(helpStyle.Render("enter next question"))
	} else {
		sb.WriteString("\n" + helpStyle.Render("a-d or 1-4 answer"))
	}
	return sb.String()
}
