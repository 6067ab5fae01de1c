// Package tui is the terminal front-end: a navigation bar over the learning
// path, tutor, architecture sandbox, mock interview and quiz views.
package tui

import (
	"strings"

	"elasticsense/content"
	"elasticsense/services"
	"elasticsense/services/architecture"
	"elasticsense/services/quiz"
	"elasticsense/services/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ViewMode int

const (
	ModulesView ViewMode = iota
	TutorView
	ArchitectView
	InterviewView
	QuizView
)

var viewModes = []ViewMode{ModulesView, TutorView, ArchitectView, InterviewView, QuizView}

func (v ViewMode) String() string {
	return [...]string{"Learning Modules", "AI Tutor", "Arch. Builder", "Mock Interview", "Quizzes"}[v]
}

// Services are the back-ends the views talk to.
type Services struct {
	Catalog   *content.Catalog
	Session   *session.Session
	Modules   *services.ModuleService
	Quizzes   *quiz.Generator
	Architect *architecture.Generator
}

// navHeight is the space taken by the navigation bar and tip line.
const navHeight = 3

// App is the root bubbletea model. Only the active view receives messages.
type App struct {
	svc  Services
	mode ViewMode
	tip  string

	chat      ChatModel
	modules   ModulesModel
	quiz      QuizModel
	architect ArchitectModel

	width  int
	height int

	// startup runs once with Init
	startup tea.Cmd
}

func NewApp(svc Services, start ViewMode) App {
	a := App{
		svc:  svc,
		tip:  svc.Catalog.RandomTip(),
		chat: NewChatModel(svc.Session, svc.Catalog.StarterQuestions),
	}
	a = a.switchTo(start)
	return a
}

func (a App) Mode() ViewMode {
	return a.mode
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.startup, a.viewInit())
}

func (a App) viewInit() tea.Cmd {
	switch a.mode {
	case TutorView, InterviewView:
		return a.chat.Init()
	case ArchitectView:
		return a.architect.Init()
	}
	return nil
}

// WithQuiz opens the quiz view and generates a quiz on topic as soon as the
// program starts.
func (a App) WithQuiz(topic string) App {
	a = a.switchTo(QuizView)
	a.quiz, a.startup = a.quiz.Start(topic)
	return a
}

// switchTo enters mode. Chat views reset the shared session; every other
// view starts from scratch.
func (a App) switchTo(mode ViewMode) App {
	a.mode = mode
	a.tip = a.svc.Catalog.RandomTip()

	switch mode {
	case ModulesView:
		a.modules = NewModulesModel(a.svc.Modules)
	case TutorView:
		a.chat = a.chat.Enter(session.ModeTutor)
	case InterviewView:
		a.chat = a.chat.Enter(session.ModeInterview)
	case ArchitectView:
		a.architect = NewArchitectModel(a.svc.Architect)
	case QuizView:
		a.quiz = NewQuizModel(a.svc.Quizzes, a.svc.Catalog.Titles())
	default:
		panic("tui: unknown view mode")
	}

	a.resize()
	return a
}

func (a *App) resize() {
	if a.width == 0 {
		return
	}
	h := max(a.height-navHeight-1, 5)
	a.chat.SetSize(a.width, h)
	a.modules.SetSize(a.width, h)
	a.quiz.SetSize(a.width, h)
	a.architect.SetSize(a.width, h)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab":
			a = a.switchTo(viewModes[(int(a.mode)+1)%len(viewModes)])
			return a, a.viewInit()
		case "shift+tab":
			a = a.switchTo(viewModes[(int(a.mode)+len(viewModes)-1)%len(viewModes)])
			return a, a.viewInit()
		}
	}

	var cmd tea.Cmd
	switch a.mode {
	case ModulesView:
		a.modules, cmd = a.modules.Update(msg)
	case TutorView, InterviewView:
		a.chat, cmd = a.chat.Update(msg)
	case ArchitectView:
		a.architect, cmd = a.architect.Update(msg)
	case QuizView:
		a.quiz, cmd = a.quiz.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var body string
	switch a.mode {
	case ModulesView:
		body = a.modules.View()
	case TutorView, InterviewView:
		body = a.chat.View()
	case ArchitectView:
		body = a.architect.View()
	case QuizView:
		body = a.quiz.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.navView(),
		body,
		helpStyle.Render("tab/shift+tab switch view • ctrl+c quit"),
	)
}

func (a App) navView() string {
	items := make([]string, 0, len(viewModes))
	for _, mode := range viewModes {
		if mode == a.mode {
			items = append(items, navActiveStyle.Render(mode.String()))
		} else {
			items = append(items, navItemStyle.Render(mode.String()))
		}
	}

	brand := titleStyle.Render("ElasticSense") + helpStyle.Render(" · SA Interview Prep")
	tip := tipStyle.Render("David's Tip: " + a.tip)
	if a.width > 0 {
		tip = lipgloss.NewStyle().MaxWidth(a.width).Render(tip)
	}

	return strings.Join([]string{
		brand + "  " + lipgloss.JoinHorizontal(lipgloss.Top, items...),
		tip,
		"",
	}, "\n")
}
