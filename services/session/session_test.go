package session

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

func TestSendRejectsBlankInput(t *testing.T) {
	fake := llmtest.New()
	s := New(fake, ModeTutor)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Send(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	assert.Empty(t, s.Turns())
	assert.Empty(t, s.History())
	assert.Empty(t, fake.Calls())
	assert.Equal(t, StateIdle, s.State())
}

func TestSendSuccess(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "A shard is a chapter."})
	s := New(fake, ModeTutor, WithTips([]string{"Keep shards small."}))

	turn, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, models.RoleModel, turn.Role)
	assert.Equal(t, "A shard is a chapter.", turn.Text)

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Equal(t, "hi", turns[0].Text)
	assert.NotEqual(t, turns[0].ID, turns[1].ID)

	assert.Equal(t, []models.HistoryEntry{
		{Role: models.RoleUser, Parts: []models.Part{{Text: "hi"}}},
		{Role: models.RoleModel, Parts: []models.Part{{Text: "A shard is a chapter."}}},
	}, s.History())
	assert.Equal(t, StateIdle, s.State())

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "hi"+prompts.FormattingInstructions, calls[0].Message)
	assert.Empty(t, calls[0].History)
	assert.Contains(t, calls[0].SystemInstruction, "Keep shards small.")
}

func TestSendReplaysHistory(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "one"}, llmtest.Reply{Text: "two"})
	s := New(fake, ModeTutor)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "second")
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	require.Len(t, calls[1].History, 2)
	assert.Equal(t, "first", calls[1].History[0].Text())
	assert.Equal(t, "one", calls[1].History[1].Text())
	assert.Len(t, s.History(), 4)
}

func TestSendFailureStaysOutOfContext(t *testing.T) {
	fake := llmtest.New(
		llmtest.Reply{Text: "ok"},
		llmtest.Reply{Err: errors.New("503 from upstream")},
		llmtest.Reply{Text: "back"},
	)
	s := New(fake, ModeTutor)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)

	turn, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, ErrorReply, turn.Text)
	assert.False(t, turn.InContext)

	assert.Len(t, s.Turns(), 4)
	assert.Len(t, s.History(), 2)
	assert.Equal(t, StateIdle, s.State())

	_, err = s.Send(context.Background(), "again")
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 3)
	assert.Len(t, calls[2].History, 2)
	assert.Len(t, s.Turns(), 6)
	assert.Len(t, s.History(), 4)
}

func TestSendWhileAwaitingIsRejected(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "slow answer"})
	fake.Started = make(chan struct{}, 1)
	fake.Release = make(chan struct{})
	s := New(fake, ModeTutor)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		done <- err
	}()

	<-fake.Started
	assert.Equal(t, StateAwaiting, s.State())

	_, err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, s.Turns(), 1)

	close(fake.Release)
	require.NoError(t, <-done)
	assert.Len(t, s.Turns(), 2)
	assert.Len(t, fake.Calls(), 1)
}

func TestResetDiscardsLateReply(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "late"})
	fake.Started = make(chan struct{}, 1)
	fake.Release = make(chan struct{})
	s := New(fake, ModeTutor)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "question")
		done <- err
	}()

	<-fake.Started
	s.Reset(ModeInterview)
	assert.Equal(t, StateIdle, s.State())

	close(fake.Release)
	assert.ErrorIs(t, <-done, ErrSessionReset)
	assert.Empty(t, s.Turns())
	assert.Empty(t, s.History())
	assert.Equal(t, ModeInterview, s.Mode())
}

func TestResetClearsEverything(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Text: "a"}, llmtest.Reply{Err: errors.New("down")})
	s := New(fake, ModeTutor)

	_, _ = s.Send(context.Background(), "one")
	_, _ = s.Send(context.Background(), "two")
	require.Len(t, s.Turns(), 4)

	s.Reset(ModeTutor)

	assert.Empty(t, s.Turns())
	assert.Empty(t, s.History())
	assert.Equal(t, StateIdle, s.State())
}
