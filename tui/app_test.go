package tui

import (
	"context"
	"strings"
	"testing"

	"elasticsense/content"
	"elasticsense/services"
	"elasticsense/services/architecture"
	"elasticsense/services/llm/llmtest"
	"elasticsense/services/quiz"
	"elasticsense/services/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, fake *llmtest.Fake, start ViewMode) App {
	t.Helper()
	catalog, err := content.Load()
	require.NoError(t, err)

	app := NewApp(Services{
		Catalog:   catalog,
		Session:   session.New(fake, session.ModeTutor, session.WithTips(catalog.Tips)),
		Modules:   services.NewModuleService(catalog, fake),
		Quizzes:   quiz.NewGenerator(fake),
		Architect: architecture.NewGenerator(fake),
	}, start)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, _ := a.Update(msg)
	return model.(App)
}

func TestViewModeNames(t *testing.T) {
	assert.Equal(t, "Learning Modules", ModulesView.String())
	assert.Equal(t, "AI Tutor", TutorView.String())
	assert.Equal(t, "Arch. Builder", ArchitectView.String())
	assert.Equal(t, "Mock Interview", InterviewView.String())
	assert.Equal(t, "Quizzes", QuizView.String())
}

func TestTabCyclesViews(t *testing.T) {
	a := newTestApp(t, llmtest.New(), ModulesView)

	a = update(t, a, key("tab"))
	assert.Equal(t, TutorView, a.Mode())

	a = update(t, a, key("shift+tab"))
	a = update(t, a, key("shift+tab"))
	assert.Equal(t, QuizView, a.Mode())

	assert.Contains(t, a.View(), "Quizzes")
	assert.Contains(t, a.View(), "Why Elastic Exists")
}

func TestEnteringChatResetsSession(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "Shards are chapters."})
	a := newTestApp(t, fake, TutorView)

	_, err := a.svc.Session.Send(context.Background(), "What is a shard?")
	require.NoError(t, err)
	require.Len(t, a.svc.Session.Turns(), 2)

	a = update(t, a, chatReplyMsg{})
	assert.Contains(t, a.View(), "Shards are chapters.")

	a = update(t, a, key("tab"))
	a = update(t, a, key("tab"))
	assert.Equal(t, InterviewView, a.Mode())
	assert.Empty(t, a.svc.Session.Turns())
	assert.Equal(t, session.ModeInterview, a.svc.Session.Mode())
	assert.Contains(t, a.View(), "Technical Deep Dive")
}

func TestTutorStarterQuestion(t *testing.T) {
	a := newTestApp(t, llmtest.New(), TutorView)
	assert.Contains(t, a.View(), "Explain Sharding vs Replication")

	a = update(t, a, key("1"))
	assert.Equal(t, "Explain Sharding vs Replication", a.chat.input.Value())
}

func TestEmptyEnterDoesNotSend(t *testing.T) {
	fake := llmtest.New()
	a := newTestApp(t, fake, TutorView)

	model, cmd := a.Update(key("enter"))
	a = model.(App)

	assert.Nil(t, cmd)
	assert.Empty(t, a.svc.Session.Turns())
	assert.Empty(t, fake.Calls())
}

func TestInterviewPickerStartsInterview(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "Why should we replace Splunk?"})
	a := newTestApp(t, fake, InterviewView)

	model, cmd := a.Update(key("2"))
	a = model.(App)
	require.NotNil(t, cmd)
	assert.True(t, a.chat.pending)

	require.NoError(t, a.svc.Session.Start(context.Background(), session.SalesDiscovery))
	a = update(t, a, interviewStartedMsg{seq: a.chat.seq})

	assert.False(t, a.chat.pending)
	view := a.View()
	assert.Contains(t, view, "Sales Discovery Interview")
	assert.Contains(t, view, "Why should we replace Splunk?")
}

func TestWithQuizStartsGenerating(t *testing.T) {
	a := newTestApp(t, llmtest.New(), ModulesView).WithQuiz("Core Solutions")

	assert.Equal(t, QuizView, a.Mode())
	assert.Equal(t, quizLoading, a.quiz.state)
	assert.NotNil(t, a.Init())
	assert.Contains(t, a.View(), "Generating questions on Core Solutions")
}

func TestSentMessageShowsBeforeReply(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "ILM moves indices between tiers."})
	a := newTestApp(t, fake, TutorView)

	a.chat.input.SetValue("What does ILM do?")
	model, cmd := a.Update(key("enter"))
	a = model.(App)
	require.NotNil(t, cmd)
	assert.True(t, a.chat.pending)
	assert.Empty(t, a.svc.Session.Turns())
	assert.Equal(t, 1, strings.Count(a.View(), "What does ILM do?"))

	_, err := a.svc.Session.Send(context.Background(), "What does ILM do?")
	require.NoError(t, err)
	a = update(t, a, chatReplyMsg{seq: a.chat.seq})

	view := a.View()
	assert.Equal(t, 1, strings.Count(view, "What does ILM do?"))
	assert.Contains(t, view, "ILM moves indices between tiers.")
}
