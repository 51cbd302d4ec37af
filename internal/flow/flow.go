// File: internal/flow/flow.go
package flow

import (
	"context"

	"telegram-robux-store/internal/domain/model"
)

// ValidationError carries the user-facing re-prompt text for a rejected
// input. It never propagates past the engine.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds the rejection a validator returns for bad input.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// Validator checks one raw input and returns the normalized value to store.
type Validator func(ctx context.Context, input string) (string, error)

// Step is one field-collection state of a flow.
type Step struct {
	// Field names the collected value; a preset field skips its step.
	Field    string
	Prompt   string
	Validate Validator
}

// FinalizeFunc runs once all fields are collected. The session is cleared
// regardless of its outcome; the error is for the caller to report.
type FinalizeFunc func(ctx context.Context, ev model.Event, fields map[string]string) error

// Flow is a linear field-collection wizard ending in one finalizing action.
type Flow struct {
	Name     string
	Steps    []Step
	Finalize FinalizeFunc
}
