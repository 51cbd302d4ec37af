//go:build !integration

// File: internal/flow/engine_test.go
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain"
	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/repository"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	fail  error
	calls int
}

func (s *recordingSender) send(_ context.Context, _ model.Event, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, text)
	return nil
}

func (s *recordingSender) last(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		t.Fatalf("expected at least one sent message")
	}
	return s.sent[len(s.sent)-1]
}

// failingStore simulates a session store outage.
type failingStore struct{}

func (failingStore) Set(context.Context, int64, *repository.FlowSession) error {
	return errors.New("store down")
}
func (failingStore) Get(context.Context, int64) (*repository.FlowSession, error) {
	return nil, errors.New("store down")
}
func (failingStore) Clear(context.Context, int64) error { return errors.New("store down") }

type finalizeRecorder struct {
	mu     sync.Mutex
	fields []map[string]string
	fail   error
}

func (f *finalizeRecorder) finalize(_ context.Context, _ model.Event, fields map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	f.fields = append(f.fields, cp)
	return f.fail
}

func (f *finalizeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fields)
}

func testFlow(name string, fin FinalizeFunc) *Flow {
	return &Flow{
		Name: name,
		Steps: []Step{
			{Field: "username", Prompt: "ask username", Validate: TextLength(3, 50, "bad username")},
			{Field: "amount", Prompt: "ask amount", Validate: IntRange(10, 100000, "not a number", "out of range")},
			{Field: "place_id", Prompt: "ask place", Validate: PlaceID("bad place")},
		},
		Finalize: fin,
	}
}

func newTestEngine(t *testing.T, fin FinalizeFunc) (*Engine, *recordingSender) {
	t.Helper()
	sender := &recordingSender{}
	logger := zerolog.Nop()
	e := NewEngine(NewMemoryStore(time.Minute), sender.send, &logger)
	if err := e.Register(testFlow("order", fin)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return e, sender
}

func msgEvent(userID int64, text string) model.Event {
	return model.Event{Kind: model.KindMessage, UserID: userID, ChatID: userID, Text: text}
}

func TestEngine_HappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	e, sender := newTestEngine(t, rec.finalize)

	if err := e.Start(ctx, msgEvent(1, ""), "order", nil); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := sender.last(t); got != "ask username" {
		t.Fatalf("expected username prompt, got %q", got)
	}

	inputs := []string{"builderman", "500", "123456"}
	for _, in := range inputs {
		handled, err := e.HandleInput(ctx, msgEvent(1, in))
		if err != nil {
			t.Fatalf("HandleInput(%q) returned error: %v", in, err)
		}
		if !handled {
			t.Fatalf("HandleInput(%q) not handled", in)
		}
	}

	if rec.count() != 1 {
		t.Fatalf("expected one finalize call, got %d", rec.count())
	}
	got := rec.fields[0]
	if got["username"] != "builderman" || got["amount"] != "500" || got["place_id"] != "123456" {
		t.Fatalf("unexpected collected fields: %v", got)
	}

	// Session must be gone after finalize.
	if _, active := e.Active(ctx, 1); active {
		t.Fatalf("expected no active flow after finalize")
	}
}

func TestEngine_InvalidInputRepromptsWithoutTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	e, sender := newTestEngine(t, rec.finalize)

	if err := e.Start(ctx, msgEvent(2, ""), "order", nil); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	// Too short, rejected twice; the flow must stay on the same step.
	for i := 0; i < 2; i++ {
		handled, err := e.HandleInput(ctx, msgEvent(2, "ab"))
		if err != nil {
			t.Fatalf("HandleInput returned error: %v", err)
		}
		if !handled {
			t.Fatalf("expected rejected input to count as handled")
		}
		if got := sender.last(t); got != "bad username" {
			t.Fatalf("expected rejection text, got %q", got)
		}
	}

	// A valid value still lands on the original field.
	if _, err := e.HandleInput(ctx, msgEvent(2, "builderman")); err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}
	if got := sender.last(t); got != "ask amount" {
		t.Fatalf("expected amount prompt after valid username, got %q", got)
	}
}

func TestEngine_PresetFieldSkipsStep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	e, sender := newTestEngine(t, rec.finalize)

	// Amount arrives from an inline shortcut; only username and place are asked.
	if err := e.Start(ctx, msgEvent(3, ""), "order", map[string]string{"amount": "1000"}); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := sender.last(t); got != "ask username" {
		t.Fatalf("expected username prompt, got %q", got)
	}
	if _, err := e.HandleInput(ctx, msgEvent(3, "builderman")); err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}
	if got := sender.last(t); got != "ask place" {
		t.Fatalf("expected place prompt after username, got %q", got)
	}
	if _, err := e.HandleInput(ctx, msgEvent(3, "123456")); err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("expected one finalize call, got %d", rec.count())
	}
	if rec.fields[0]["amount"] != "1000" {
		t.Fatalf("expected preset amount to survive, got %v", rec.fields[0])
	}
}

func TestEngine_AllPresetFinalizesImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	e, _ := newTestEngine(t, rec.finalize)

	preset := map[string]string{"username": "builderman", "amount": "500", "place_id": "123456"}
	if err := e.Start(ctx, msgEvent(4, ""), "order", preset); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("expected immediate finalize, got %d calls", rec.count())
	}
	if _, active := e.Active(ctx, 4); active {
		t.Fatalf("expected no session after immediate finalize")
	}
}

func TestEngine_CancelDiscardsFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{}
	e, _ := newTestEngine(t, rec.finalize)

	if err := e.Start(ctx, msgEvent(5, ""), "order", nil); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if _, err := e.HandleInput(ctx, msgEvent(5, "builderman")); err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}
	if err := e.Cancel(ctx, 5); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	// Input after cancel falls through to command routing.
	handled, err := e.HandleInput(ctx, msgEvent(5, "500"))
	if err != nil {
		t.Fatalf("HandleInput returned error: %v", err)
	}
	if handled {
		t.Fatalf("expected input after cancel to be unhandled")
	}

	// Re-entry starts fresh, no leftover username.
	if err := e.Start(ctx, msgEvent(5, ""), "order", nil); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	for _, in := range []string{"robloxfan", "200", "999"} {
		if _, err := e.HandleInput(ctx, msgEvent(5, in)); err != nil {
			t.Fatalf("HandleInput(%q) returned error: %v", in, err)
		}
	}
	if rec.count() != 1 {
		t.Fatalf("expected exactly one finalize, got %d", rec.count())
	}
	if rec.fields[0]["username"] != "robloxfan" {
		t.Fatalf("expected fresh fields after re-entry, got %v", rec.fields[0])
	}
}

func TestEngine_FinalizeFailureStillClearsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rec := &finalizeRecorder{fail: fmt.Errorf("backend rejected")}
	e, _ := newTestEngine(t, rec.finalize)

	preset := map[string]string{"username": "builderman", "amount": "500", "place_id": "123456"}
	if err := e.Start(ctx, msgEvent(6, ""), "order", preset); err == nil {
		t.Fatalf("expected finalize error to propagate")
	}
	if _, active := e.Active(ctx, 6); active {
		t.Fatalf("expected session cleared even when finalize fails")
	}
}

func TestEngine_StartUnknownFlow(t *testing.T) {
	t.Parallel()

	rec := &finalizeRecorder{}
	e, _ := newTestEngine(t, rec.finalize)
	err := e.Start(context.Background(), msgEvent(7, ""), "no-such-flow", nil)
	if !errors.Is(err, domain.ErrUnknownFlow) {
		t.Fatalf("expected ErrUnknownFlow, got %v", err)
	}
}

func TestEngine_StoreOutageFailsOpen(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	logger := zerolog.Nop()
	rec := &finalizeRecorder{}
	e := NewEngine(failingStore{}, sender.send, &logger)
	if err := e.Register(testFlow("order", rec.finalize)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	handled, err := e.HandleInput(context.Background(), msgEvent(8, "hello"))
	if err != nil {
		t.Fatalf("expected store outage to be swallowed, got %v", err)
	}
	if handled {
		t.Fatalf("expected unhandled so the caller can fall back to commands")
	}
}

func TestEngine_RegisterRejectsDuplicatesAndEmpty(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	sender := &recordingSender{}
	rec := &finalizeRecorder{}
	e := NewEngine(NewMemoryStore(time.Minute), sender.send, &logger)

	if err := e.Register(testFlow("order", rec.finalize)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := e.Register(testFlow("order", rec.finalize)); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := e.Register(&Flow{Name: "empty", Finalize: rec.finalize}); err == nil {
		t.Fatalf("expected flow without steps to fail")
	}
	if err := e.Register(&Flow{Name: "nofin", Steps: testFlow("x", rec.finalize).Steps}); err == nil {
		t.Fatalf("expected flow without finalize to fail")
	}
}
