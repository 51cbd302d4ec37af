//go:build !integration

// File: internal/infra/sched/order_reconciler_test.go
package sched

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/adapter"
)

var testLogger = zerolog.Nop()

type fakeSource struct {
	mu     sync.Mutex
	events []model.OrderStatusEvent
	err    error
	calls  int
}

func (f *fakeSource) SyncOrders(context.Context) ([]model.OrderStatusEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := f.events
	f.events = nil // each change is reported once
	return out, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeBot struct {
	mu       sync.Mutex
	sent     map[int64][]string
	failChat int64
}

func newFakeBot() *fakeBot {
	return &fakeBot{sent: make(map[int64][]string)}
}

func (b *fakeBot) SendMessage(_ context.Context, chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if chatID == b.failChat {
		return errors.New("blocked by user")
	}
	b.sent[chatID] = append(b.sent[chatID], text)
	return nil
}

func (b *fakeBot) SendButtons(_ context.Context, chatID int64, text string, _ [][]adapter.InlineButton) error {
	return b.SendMessage(context.Background(), chatID, text)
}

func (b *fakeBot) EditButtons(context.Context, int64, int, string, [][]adapter.InlineButton) error {
	return nil
}

func (b *fakeBot) AnswerCallback(context.Context, string, string, bool) error { return nil }

func (b *fakeBot) messages(chatID int64) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.sent[chatID]...)
}

func TestReconciler_NotifiesCompletedAndFailed(t *testing.T) {
	t.Parallel()

	source := &fakeSource{events: []model.OrderStatusEvent{
		{UserID: "100", OrderID: "aaaabbbbcccc", Amount: 500, Status: model.OrderStatusCompleted},
		{UserID: "200", OrderID: "ddddeeeeffff", Amount: 300, Status: model.OrderStatusFailed, Refunded: true},
	}}
	bot := newFakeBot()
	w := NewOrderReconciler(time.Minute, source, bot, &testLogger)

	w.runCycle(context.Background())

	got := bot.messages(100)
	if len(got) != 1 {
		t.Fatalf("expected one notification for user 100, got %d", len(got))
	}
	if !strings.Contains(got[0], "#aaaabbbb") || !strings.Contains(got[0], "500") {
		t.Fatalf("unexpected completion text: %q", got[0])
	}

	got = bot.messages(200)
	if len(got) != 1 {
		t.Fatalf("expected one notification for user 200, got %d", len(got))
	}
	if !strings.Contains(got[0], "Средства возвращены") {
		t.Fatalf("expected refund line in failure text: %q", got[0])
	}

	// The backend already reported these; the next cycle is empty.
	w.runCycle(context.Background())
	if len(bot.messages(100)) != 1 || len(bot.messages(200)) != 1 {
		t.Fatalf("expected no duplicate notifications")
	}
}

func TestReconciler_SkipsWebOnlyAndUnknownStatuses(t *testing.T) {
	t.Parallel()

	source := &fakeSource{events: []model.OrderStatusEvent{
		{UserID: "clx9f2", OrderID: "web-order", Amount: 100, Status: model.OrderStatusCompleted},
		{UserID: "300", OrderID: "pending-order", Amount: 100, Status: model.OrderStatusPending},
		{UserID: "300", OrderID: "real-order", Amount: 100, Status: model.OrderStatusCompleted},
	}}
	bot := newFakeBot()
	w := NewOrderReconciler(time.Minute, source, bot, &testLogger)

	w.runCycle(context.Background())

	if got := bot.messages(300); len(got) != 1 {
		t.Fatalf("expected exactly the completed order to notify, got %d messages", len(got))
	}
}

func TestReconciler_DeliveryFailureDoesNotStarveCycle(t *testing.T) {
	t.Parallel()

	source := &fakeSource{events: []model.OrderStatusEvent{
		{UserID: "400", OrderID: "o1", Amount: 50, Status: model.OrderStatusCompleted},
		{UserID: "401", OrderID: "o2", Amount: 60, Status: model.OrderStatusCompleted},
	}}
	bot := newFakeBot()
	bot.failChat = 400
	w := NewOrderReconciler(time.Minute, source, bot, &testLogger)

	w.runCycle(context.Background())

	if got := bot.messages(401); len(got) != 1 {
		t.Fatalf("expected the second user to still be notified, got %d", len(got))
	}
}

func TestReconciler_CycleErrorRetriesNextTick(t *testing.T) {
	t.Parallel()

	source := &fakeSource{err: errors.New("backend down")}
	bot := newFakeBot()
	w := NewOrderReconciler(10*time.Millisecond, source, bot, &testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	// Startup cycle plus at least one tick, both hitting the erroring source.
	deadline := time.After(time.Second)
	for source.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected repeated sync attempts, got %d", source.callCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
