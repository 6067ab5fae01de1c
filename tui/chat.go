package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"elasticsense/models"
	"elasticsense/services/render"
	"elasticsense/services/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

type chatReplyMsg struct {
	seq int
	err error
}

type interviewStartedMsg struct {
	seq int
	err error
}

// ChatModel is the tutor and mock-interview conversation view. The session
// is the source of truth; the view re-reads its transcript after every
// change.
type ChatModel struct {
	sess     *session.Session
	starters []string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	alert    string
	width    int
	height   int

	// seq identifies the request the view is waiting for; pending is set
	// until its reply arrives.
	seq     int
	pending bool

	// outgoing is shown as the user's turn until the session records it at
	// index outgoingAt.
	outgoing   models.ChatTurn
	outgoingAt int
}

func NewChatModel(sess *session.Session, starters []string) ChatModel {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(elasticTeal)

	m := ChatModel{
		sess:     sess,
		starters: starters,
		input:    input,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
	m.setPlaceholder()
	return m
}

// Enter clears the conversation and switches it to mode.
func (m ChatModel) Enter(mode session.Mode) ChatModel {
	m.sess.Reset(mode)
	m.pending = false
	m.outgoing = models.ChatTurn{}
	m.alert = ""
	m.input.Reset()
	m.input.Focus()
	m.setPlaceholder()
	m.refresh()
	return m
}

func (m *ChatModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-3, 3)
	m.refresh()
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.seq == m.seq {
			m.pending = false
			m.outgoing = models.ChatTurn{}
		}
		if msg.err != nil && !errors.Is(msg.err, session.ErrSessionReset) {
			log.Warnf("Message rejected: %v", msg.err)
		}
		m.refresh()
		return m, nil

	case interviewStartedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.pending = false
		if msg.err != nil && !errors.Is(msg.err, session.ErrSessionReset) {
			m.alert = "Error starting interview"
		}
		m.setPlaceholder()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (ChatModel, tea.Cmd) {
	awaiting := m.pending || m.sess.State() == session.StateAwaiting
	_, interviewing := m.sess.Interview()

	if m.sess.Mode() == session.ModeInterview && !interviewing {
		if awaiting {
			return m, nil
		}
		if kind, ok := pickInterviewKind(msg.String()); ok {
			m.alert = ""
			m.seq++
			m.pending = true
			return m, tea.Batch(m.startInterviewCmd(kind), m.spinner.Tick)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+e":
		if m.sess.Mode() == session.ModeInterview {
			m.sess.End()
			m.setPlaceholder()
			m.refresh()
		}
		return m, nil
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" || awaiting {
			return m, nil
		}
		m.input.Reset()
		m.seq++
		m.pending = true
		m.outgoing = models.ChatTurn{Role: models.RoleUser, Text: text, Timestamp: time.Now()}
		m.outgoingAt = len(m.sess.Turns())
		m.refresh()
		return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
	}

	if q, ok := m.starterFor(msg.String()); ok {
		m.input.SetValue(q)
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// starterFor maps a digit to a suggested question while the tutor
// transcript and the input are both empty.
func (m ChatModel) starterFor(key string) (string, bool) {
	if m.sess.Mode() != session.ModeTutor || m.input.Value() != "" || len(m.sess.Turns()) > 0 {
		return "", false
	}
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	i := int(key[0] - '1')
	if i >= len(m.starters) {
		return "", false
	}
	return m.starters[i], true
}

func pickInterviewKind(key string) (session.InterviewKind, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return session.InterviewKind{}, false
	}
	i := int(key[0] - '1')
	if i >= len(session.InterviewKinds) {
		return session.InterviewKind{}, false
	}
	return session.InterviewKinds[i], true
}

func (m ChatModel) sendCmd(text string) tea.Cmd {
	sess, seq := m.sess, m.seq
	return func() tea.Msg {
		_, err := sess.Send(context.Background(), text)
		return chatReplyMsg{seq: seq, err: err}
	}
}

func (m ChatModel) startInterviewCmd(kind session.InterviewKind) tea.Cmd {
	sess, seq := m.sess, m.seq
	return func() tea.Msg {
		return interviewStartedMsg{seq: seq, err: sess.Start(context.Background(), kind)}
	}
}

func (m *ChatModel) setPlaceholder() {
	if m.sess.Mode() == session.ModeTutor {
		m.input.Placeholder = "Ask about Clusters, Nodes, or Vectors..."
	} else {
		m.input.Placeholder = "Type your answer..."
	}
}

func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m ChatModel) transcript() string {
	turns := m.sess.Turns()
	width := max(m.viewport.Width-2, 10)

	var sb strings.Builder
	if len(turns) == 0 && !m.pending && m.sess.Mode() == session.ModeTutor {
		sb.WriteString(helpStyle.Render("Try one of these (press the number):") + "\n")
		for i, q := range m.starters {
			sb.WriteString(fmt.Sprintf("  %s %q\n", selectedStyle.Render(fmt.Sprintf("%d.", i+1)), q))
		}
	}

	if m.pending && m.outgoing.Text != "" && len(turns) <= m.outgoingAt {
		turns = append(turns, m.outgoing)
	}

	for _, turn := range turns {
		sb.WriteString(turnLabel(turn) + "\n")
		sb.WriteString(PaintBlocks(render.Render(turn.Text, render.Chat), width))
		sb.WriteString("\n\n")
	}

	if m.pending {
		sb.WriteString(m.spinner.View() + helpStyle.Render(" Thinking..."))
	}
	return sb.String()
}

func turnLabel(turn models.ChatTurn) string {
	stamp := helpStyle.Render(turn.Timestamp.Format("15:04"))
	if turn.Role == models.RoleUser {
		return userLabelStyle.Render("You") + " " + stamp
	}
	return modelLabelStyle.Render("ElasticSense") + " " + stamp
}

func (m ChatModel) View() string {
	if m.sess.Mode() == session.ModeInterview {
		if _, ok := m.sess.Interview(); !ok && !m.pending {
			return m.pickerView()
		}
	}

	header := titleStyle.Render("AI Tutor")
	footer := helpStyle.Render("enter send • ↑/↓ scroll")
	if kind, ok := m.sess.Interview(); ok {
		header = titleStyle.Render(kind.Name + " Interview")
		footer = helpStyle.Render("enter send • ↑/↓ scroll • ctrl+e end interview")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.input.View(),
		footer,
	)
}

func (m ChatModel) pickerView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Mock Interview Simulator") + "\n\n")
	sb.WriteString("Choose your interview:\n\n")
	for i, kind := range session.InterviewKinds {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			selectedStyle.Render(fmt.Sprintf("%d.", i+1)),
			kind.Name,
			helpStyle.Render("("+kind.Level+")")))
	}
	if m.alert != "" {
		sb.WriteString("\n" + errorStyle.Render(m.alert) + "\n")
	}
	return sb.String()
}
