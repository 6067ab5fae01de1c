// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"elasticsense/models"
	"elasticsense/services/llm"
)

var ErrNoReply = errors.New("llmtest: no scripted reply left")

type Reply struct {
	Text string
	Err  error
}

// Call records one request made to the fake.
type Call struct {
	SystemInstruction string
	History           []models.HistoryEntry
	Message           string
	Structured        *llm.StructuredRequest
}

// Fake answers calls with Replies in order. When Release is set, every call
// signals Started and then blocks until Release yields or the context ends.
type Fake struct {
	Replies []Reply
	Started chan struct{}
	Release chan struct{}

	mu    sync.Mutex
	calls []Call
}

func New(replies ...Reply) *Fake {
	return &Fake{Replies: replies}
}

func (f *Fake) Converse(ctx context.Context, systemInstruction string, history []models.HistoryEntry, message string) (string, error) {
	return f.next(ctx, Call{
		SystemInstruction: systemInstruction,
		History:           append([]models.HistoryEntry(nil), history...),
		Message:           message,
	})
}

func (f *Fake) GenerateStructured(ctx context.Context, req llm.StructuredRequest) (string, error) {
	return f.next(ctx, Call{
		SystemInstruction: req.SystemInstruction,
		Message:           req.Prompt,
		Structured:        &req,
	})
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) next(ctx context.Context, call Call) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	var reply Reply
	if len(f.Replies) == 0 {
		reply = Reply{Err: ErrNoReply}
	} else {
		reply = f.Replies[0]
		f.Replies = f.Replies[1:]
	}
	f.mu.Unlock()

	if f.Release != nil {
		if f.Started != nil {
			f.Started <- struct{}{}
		}
		select {
		case <-f.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return reply.Text, reply.Err
}

var _ llm.Client = (*Fake)(nil)
