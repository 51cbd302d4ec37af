package repository

import "context"

// FlowSession holds a user's progress through one multi-step conversation.
type FlowSession struct {
	Flow   string            `json:"flow"`
	Step   int               `json:"step"`
	Fields map[string]string `json:"fields"`
}

// SessionRepository is the port for managing in-flight flow sessions.
// A missing session is reported as (nil, nil), not an error.
type SessionRepository interface {
	Set(ctx context.Context, tgID int64, s *FlowSession) error
	Get(ctx context.Context, tgID int64) (*FlowSession, error)
	Clear(ctx context.Context, tgID int64) error
}
