package session

import (
	"context"
	"fmt"

	"elasticsense/models"
	"elasticsense/services/prompts"

	log "github.com/sirupsen/logrus"
)

const interviewStartPrompt = `Start a mock interview. You are a %s level interviewer conducting a %s interview for an Elastic Solutions Architect role.

  If "Sales Discovery":
  - Act like a CTO or Director.
  - Focus on business value, ROI, and "Why Elastic?".
  - Challenge the user: "Splunk is already installed, why change?"

  If "Technical Deep Dive":
  - Act like a Principal Engineer.
  - Grill them on Sharding, Heap, ILM, and diagnosing latency.
  - Ask: "I have 500M docs and slow search. What do I check?"

  Start by asking the first question. Do not output anything else but the question.`

// InterviewKind is an interview scenario with the interviewer's seniority.
type InterviewKind struct {
	Name  string
	Level string
}

var (
	TechnicalDeepDive = InterviewKind{Name: "Technical Deep Dive", Level: "Senior"}
	SalesDiscovery    = InterviewKind{Name: "Sales Discovery", Level: "Manager"}
)

var InterviewKinds = []InterviewKind{TechnicalDeepDive, SalesDiscovery}

// Context is attached to the system prompt for every answer in the interview.
func (k InterviewKind) Context() string {
	return fmt.Sprintf("Mock interview: %s (%s)", k.Name, k.Level)
}

// Start opens an interview of the given kind. The transcript is replaced by
// the interviewer's first question. On failure the transcript stays empty
// and no interview is selected.
func (s *Session) Start(ctx context.Context, kind InterviewKind) error {
	s.mu.Lock()
	if s.mode != ModeInterview {
		s.mu.Unlock()
		return ErrNotInterview
	}
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.turns = nil
	s.interview = &kind
	s.state = StateAwaiting
	epoch := s.epoch
	systemPrompt := prompts.TutorSystemPrompt(s.tips, "")
	s.mu.Unlock()

	log.Infof("Starting %s interview", kind.Context())
	opener, err := s.client.Converse(ctx, systemPrompt, nil, fmt.Sprintf(interviewStartPrompt, kind.Level, kind.Name))

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return ErrSessionReset
	}
	s.state = StateIdle

	if err != nil {
		log.Errorf("Failed to start interview: %v", err)
		s.interview = nil
		return fmt.Errorf("failed to start interview: %w", err)
	}

	turn := s.newTurn(models.RoleModel, opener)
	turn.InContext = true
	s.turns = append(s.turns, turn)

	log.Infof("Successfully started %s interview", kind.Name)
	return nil
}

// Interview returns the running interview, if any.
func (s *Session) Interview() (InterviewKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.interview == nil {
		return InterviewKind{}, false
	}
	return *s.interview, true
}
