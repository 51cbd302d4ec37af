//go:build !integration

// File: internal/infra/adapters/telegram/views_test.go
package telegram

import (
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-robux-store/internal/domain/model"
)

func TestToEvent_Message(t *testing.T) {
	t.Parallel()

	up := tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 7,
			From:      &tgbotapi.User{ID: 42, UserName: "builderman", FirstName: "B"},
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      "/start ref_100",
		},
	}
	ev, ok := toEvent(up)
	if !ok {
		t.Fatalf("expected message update to map")
	}
	if ev.Kind != model.KindMessage || ev.UserID != 42 || ev.Text != "/start ref_100" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.IsCommand() {
		t.Fatalf("expected /start to be a command")
	}
}

func TestToEvent_Callback(t *testing.T) {
	t.Parallel()

	up := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			From: &tgbotapi.User{ID: 42},
			Data: " menu:balance ",
			Message: &tgbotapi.Message{
				MessageID: 9,
				Chat:      &tgbotapi.Chat{ID: 42},
			},
		},
	}
	ev, ok := toEvent(up)
	if !ok {
		t.Fatalf("expected callback update to map")
	}
	if ev.Kind != model.KindCallback || ev.Data != "menu:balance" || ev.MessageID != 9 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestToEvent_IgnoresOtherUpdates(t *testing.T) {
	t.Parallel()

	if _, ok := toEvent(tgbotapi.Update{}); ok {
		t.Fatalf("expected empty update to be ignored")
	}
}

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		cmd, arg string
	}{
		{"/start", "/start", ""},
		{"/start ref_100", "/start", "ref_100"},
		{"/START ref_100", "/start", "ref_100"},
		{"/start@robux_store_bot ref_100", "/start", "ref_100"},
		{"  /help  ", "/help", ""},
	}
	for _, tc := range cases {
		cmd, arg := splitCommand(tc.in)
		if cmd != tc.cmd || arg != tc.arg {
			t.Fatalf("splitCommand(%q) = (%q, %q), want (%q, %q)", tc.in, cmd, arg, tc.cmd, tc.arg)
		}
	}
}

func TestCalculatorView(t *testing.T) {
	t.Parallel()

	text, price := calculatorView(1000, 0.85, 5000)
	if price != 850 {
		t.Fatalf("expected price 850, got %v", price)
	}
	if !strings.Contains(text, "700") {
		t.Fatalf("expected post-fee amount 700 in text: %q", text)
	}
	if !strings.Contains(text, "В наличии") {
		t.Fatalf("expected in-stock status: %q", text)
	}

	low, _ := calculatorView(1000, 0.85, 300)
	if !strings.Contains(low, "Мало на складе") {
		t.Fatalf("expected low-stock warning: %q", low)
	}
}

func TestStatusEmojiAndShortID(t *testing.T) {
	t.Parallel()

	if statusEmoji(model.OrderStatusCompleted) != "✅" || statusEmoji(model.OrderStatusFailed) != "❌" {
		t.Fatalf("unexpected status emoji mapping")
	}
	if statusEmoji("weird") != "⏳" {
		t.Fatalf("expected pending emoji for unknown status")
	}
	if shortID("aaaabbbbcccc") != "aaaabbbb" || shortID("abc") != "abc" {
		t.Fatalf("unexpected short id behavior")
	}
}
