//go:build !integration

// File: internal/infra/adapters/telegram/callback_route_test.go
package telegram

import "testing"

func TestCheckPresetAmount(t *testing.T) {
	t.Parallel()

	const min, max = 10, 100000
	cases := []struct {
		name string
		raw  string
		ok   bool
		msg  string
	}{
		{name: "shortcut button", raw: "500", ok: true},
		{name: "lower bound", raw: "10", ok: true},
		{name: "upper bound", raw: "100000", ok: true},
		{name: "below minimum", raw: "5", ok: false, msg: "Сумма должна быть от 10 до 100000."},
		{name: "above maximum", raw: "100001", ok: false, msg: "Сумма должна быть от 10 до 100000."},
		{name: "not a number", raw: "abc", ok: false, msg: "Некорректная сумма."},
		{name: "crafted negative", raw: "-50", ok: false, msg: "Сумма должна быть от 10 до 100000."},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			msg, ok := checkPresetAmount(tc.raw, min, max)
			if ok != tc.ok {
				t.Fatalf("checkPresetAmount(%q) ok = %t, want %t", tc.raw, ok, tc.ok)
			}
			if msg != tc.msg {
				t.Fatalf("checkPresetAmount(%q) msg = %q, want %q", tc.raw, msg, tc.msg)
			}
		})
	}
}
