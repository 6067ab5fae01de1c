package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatTurn is one displayed message of a conversation. InContext marks the
// turns that are replayed to the model on the next call; turns from a failed
// exchange stay visible but are never replayed.
type ChatTurn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	InContext bool      `json:"in_context"`
}

type Part struct {
	Text string `json:"text"`
}

// HistoryEntry is a turn shaped for replay to the model.
type HistoryEntry struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

func (e HistoryEntry) Text() string {
	var text string
	for _, p := range e.Parts {
		text += p.Text
	}
	return text
}
