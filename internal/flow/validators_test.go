//go:build !integration

// File: internal/flow/validators_test.go
package flow

import (
	"context"
	"errors"
	"testing"
)

func mustReject(t *testing.T, v Validator, input string) {
	t.Helper()
	_, err := v(context.Background(), input)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for %q, got %v", input, err)
	}
}

func mustAccept(t *testing.T, v Validator, input, want string) {
	t.Helper()
	got, err := v(context.Background(), input)
	if err != nil {
		t.Fatalf("expected %q to pass, got %v", input, err)
	}
	if got != want {
		t.Fatalf("expected normalized %q, got %q", want, got)
	}
}

func TestTextLength(t *testing.T) {
	t.Parallel()

	v := TextLength(3, 5, "bad")
	mustAccept(t, v, "abc", "abc")
	mustAccept(t, v, "абвгд", "абвгд") // rune count, not byte count
	mustReject(t, v, "ab")
	mustReject(t, v, "abcdef")
}

func TestIntRange(t *testing.T) {
	t.Parallel()

	v := IntRange(10, 100, "format", "range")
	mustAccept(t, v, "10", "10")
	mustAccept(t, v, "100", "100")
	mustReject(t, v, "9")
	mustReject(t, v, "101")
	mustReject(t, v, "ten")
	mustReject(t, v, "10.5")
}

func TestPositiveAmount(t *testing.T) {
	t.Parallel()

	v := PositiveAmount("bad")
	mustAccept(t, v, "500", "500")
	mustAccept(t, v, "500.5", "500.5")
	mustAccept(t, v, "500,5", "500.5") // comma decimal separator
	mustReject(t, v, "0")
	mustReject(t, v, "-5")
	mustReject(t, v, "abc")
}

func TestPlaceID(t *testing.T) {
	t.Parallel()

	v := PlaceID("bad")
	mustAccept(t, v, "123456", "123456")
	mustAccept(t, v, "https://www.roblox.com/games/123456/Game", "https://www.roblox.com/games/123456/Game")
	mustReject(t, v, "not-a-place")
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	v := OneOf([]string{"cryptobot", "bybit"}, "pick one")
	mustAccept(t, v, "bybit", "bybit")
	mustReject(t, v, "paypal")
}
