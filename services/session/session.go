// Package session implements the turn-based conversation behind the tutor
// and mock-interview views.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"elasticsense/models"
	"elasticsense/services/llm"
	"elasticsense/services/prompts"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// ErrorReply is shown in place of a model answer when a request fails.
const ErrorReply = "Connection lost. The cluster might be red. Please try again."

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a request is already in flight")
	ErrNotInterview = errors.New("session is not in interview mode")
	// ErrSessionReset is returned by a call whose result arrived after the
	// session was reset. The result is dropped.
	ErrSessionReset = errors.New("session was reset while waiting for the model")
)

type Mode int

const (
	ModeTutor Mode = iota
	ModeInterview
)

func (m Mode) String() string {
	switch m {
	case ModeTutor:
		return "tutor"
	case ModeInterview:
		return "interview"
	default:
		return "unknown"
	}
}

type State int

const (
	StateIdle State = iota
	StateAwaiting
)

func (s State) String() string {
	if s == StateAwaiting {
		return "awaiting"
	}
	return "idle"
}

// Session owns one transcript. At most one model request is in flight at a
// time; all fields are guarded by mu.
type Session struct {
	client llm.Client
	tips   []string
	now    func() time.Time

	mu        sync.Mutex
	mode      Mode
	state     State
	turns     []models.ChatTurn
	interview *InterviewKind
	// epoch changes on every reset so results of older requests are ignored
	epoch uint64
}

type Option func(*Session)

// WithTips sets the tips quoted in the tutor persona.
func WithTips(tips []string) Option {
	return func(s *Session) { s.tips = tips }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(client llm.Client, mode Mode, opts ...Option) *Session {
	s := &Session{
		client: client,
		mode:   mode,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset clears the transcript and switches to mode. Any request still in
// flight is abandoned.
func (s *Session) Reset(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.state = StateIdle
	s.turns = nil
	s.interview = nil
	s.epoch++
}

// End finishes the current interview and clears the transcript.
func (s *Session) End() {
	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	s.Reset(mode)
}

// Send records text as a user turn and asks the model for a reply. A failed
// request does not return an error: the returned turn is the fixed error
// reply and neither turn is replayed to the model later. Errors are returned
// only when the message is rejected or the session was reset meanwhile.
func (s *Session) Send(ctx context.Context, text string) (models.ChatTurn, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatTurn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return models.ChatTurn{}, ErrBusy
	}

	history := s.historyLocked()
	userIdx := len(s.turns)
	s.turns = append(s.turns, s.newTurn(models.RoleUser, text))
	s.state = StateAwaiting
	epoch := s.epoch
	systemPrompt := s.systemPromptLocked()
	s.mu.Unlock()

	log.Infof("Sending %s message with %d history entries", s.Mode(), len(history))
	reply, err := s.client.Converse(ctx, systemPrompt, history, text+prompts.FormattingInstructions)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		log.Warnf("Discarding reply for a session that was reset")
		return models.ChatTurn{}, ErrSessionReset
	}
	s.state = StateIdle

	if err != nil {
		log.Errorf("Failed to get model reply: %v", err)
		turn := s.newTurn(models.RoleModel, ErrorReply)
		s.turns = append(s.turns, turn)
		return turn, nil
	}

	s.turns[userIdx].InContext = true
	turn := s.newTurn(models.RoleModel, reply)
	turn.InContext = true
	s.turns = append(s.turns, turn)

	log.Infof("Successfully received model reply (%d chars)", len(reply))
	return turn, nil
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turns returns a copy of the displayed transcript.
func (s *Session) Turns() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatTurn(nil), s.turns...)
}

// History returns the turns that will be replayed to the model.
func (s *Session) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLocked()
}

func (s *Session) historyLocked() []models.HistoryEntry {
	inContext := lo.Filter(s.turns, func(t models.ChatTurn, _ int) bool { return t.InContext })
	return lo.Map(inContext, func(t models.ChatTurn, _ int) models.HistoryEntry {
		return models.HistoryEntry{Role: t.Role, Parts: []models.Part{{Text: t.Text}}}
	})
}

func (s *Session) systemPromptLocked() string {
	var extra string
	if s.interview != nil {
		extra = s.interview.Context()
	}
	return prompts.TutorSystemPrompt(s.tips, extra)
}

func (s *Session) newTurn(role models.Role, text string) models.ChatTurn {
	return models.ChatTurn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}
