// File: internal/flow/engine.go
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain"
	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/repository"
	"telegram-robux-store/internal/infra/metrics"
)

// Sender delivers a prompt or re-prompt to the user. The transport layer
// decides the keyboard that goes with it.
type Sender func(ctx context.Context, ev model.Event, text string) error

// Engine drives registered flows against a session store. One engine serves
// all users; per-user serialization is the transport's concern.
type Engine struct {
	flows map[string]*Flow
	store repository.SessionRepository
	send  Sender
	log   *zerolog.Logger
}

func NewEngine(store repository.SessionRepository, send Sender, logger *zerolog.Logger) *Engine {
	compLog := logger.With().Str("component", "FlowEngine").Logger()
	return &Engine{
		flows: make(map[string]*Flow),
		store: store,
		send:  send,
		log:   &compLog,
	}
}

func (e *Engine) Register(f *Flow) error {
	if f == nil || f.Name == "" {
		return errors.New("flow must have a name")
	}
	if len(f.Steps) == 0 {
		return fmt.Errorf("flow %q has no steps", f.Name)
	}
	if f.Finalize == nil {
		return fmt.Errorf("flow %q has no finalize action", f.Name)
	}
	if _, dup := e.flows[f.Name]; dup {
		return fmt.Errorf("flow %q already registered", f.Name)
	}
	e.flows[f.Name] = f
	return nil
}

// Start enters a flow for the event's user, replacing any previous session.
// Preset fields (inline shortcuts) skip their steps; when every field is
// preset the flow finalizes immediately.
func (e *Engine) Start(ctx context.Context, ev model.Event, name string, preset map[string]string) error {
	f, ok := e.flows[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownFlow, name)
	}
	fields := make(map[string]string, len(preset))
	for k, v := range preset {
		fields[k] = v
	}
	sess := &repository.FlowSession{Flow: name, Step: 0, Fields: fields}
	sess.Step = nextUncollected(f, sess, 0)
	metrics.IncFlowEvent(name, "started")

	if sess.Step >= len(f.Steps) {
		return e.finalize(ctx, ev, f, sess)
	}
	if err := e.store.Set(ctx, ev.UserID, sess); err != nil {
		return err
	}
	return e.send(ctx, ev, f.Steps[sess.Step].Prompt)
}

// Active reports which flow, if any, the user is currently inside.
func (e *Engine) Active(ctx context.Context, tgID int64) (string, bool) {
	sess, err := e.store.Get(ctx, tgID)
	if err != nil || sess == nil {
		return "", false
	}
	return sess.Flow, true
}

// Cancel discards the session and all collected fields.
func (e *Engine) Cancel(ctx context.Context, tgID int64) error {
	if sess, err := e.store.Get(ctx, tgID); err == nil && sess != nil {
		metrics.IncFlowEvent(sess.Flow, "cancelled")
	}
	return e.store.Clear(ctx, tgID)
}

// HandleInput feeds a message into the user's active flow. It returns false
// when no flow is active so the caller can fall back to command routing.
// Invalid input re-prompts without a state transition.
func (e *Engine) HandleInput(ctx context.Context, ev model.Event) (bool, error) {
	sess, err := e.store.Get(ctx, ev.UserID)
	if err != nil {
		// A store outage must not strand the user; treat as idle.
		e.log.Warn().Err(err).Int64("tg_id", ev.UserID).Msg("session lookup failed")
		return false, nil
	}
	if sess == nil {
		return false, nil
	}
	f, ok := e.flows[sess.Flow]
	if !ok || sess.Step >= len(f.Steps) {
		// Stale session from an older build; drop it.
		_ = e.store.Clear(ctx, ev.UserID)
		return false, nil
	}

	step := f.Steps[sess.Step]
	value, err := step.Validate(ctx, strings.TrimSpace(ev.Text))
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			metrics.IncFlowEvent(sess.Flow, "rejected")
			return true, e.send(ctx, ev, ve.Msg)
		}
		return true, err
	}

	if sess.Fields == nil {
		sess.Fields = make(map[string]string)
	}
	sess.Fields[step.Field] = value
	sess.Step = nextUncollected(f, sess, sess.Step+1)

	if sess.Step >= len(f.Steps) {
		return true, e.finalize(ctx, ev, f, sess)
	}
	if err := e.store.Set(ctx, ev.UserID, sess); err != nil {
		return true, err
	}
	return true, e.send(ctx, ev, f.Steps[sess.Step].Prompt)
}

// finalize runs the terminal action and always returns the user to idle,
// whatever the outcome.
func (e *Engine) finalize(ctx context.Context, ev model.Event, f *Flow, sess *repository.FlowSession) error {
	if err := e.store.Clear(ctx, ev.UserID); err != nil {
		e.log.Warn().Err(err).Int64("tg_id", ev.UserID).Msg("session clear failed")
	}
	err := f.Finalize(ctx, ev, sess.Fields)
	if err != nil {
		metrics.IncFlowEvent(f.Name, "failed")
		return err
	}
	metrics.IncFlowEvent(f.Name, "completed")
	return nil
}

// nextUncollected finds the first step at or after from whose field is still
// missing, honoring preset shortcuts.
func nextUncollected(f *Flow, sess *repository.FlowSession, from int) int {
	i := from
	for i < len(f.Steps) {
		if _, have := sess.Fields[f.Steps[i].Field]; !have {
			break
		}
		i++
	}
	return i
}
