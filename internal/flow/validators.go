// File: internal/flow/validators.go
package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Validator constructors. Bounds are parameters of the store configuration,
// never hardcoded into a flow.

// TextLength accepts free text within [min, max] runes.
func TextLength(min, max int, reject string) Validator {
	return func(_ context.Context, input string) (string, error) {
		n := len([]rune(input))
		if n < min || n > max {
			return "", Invalid(reject)
		}
		return input, nil
	}
}

// IntRange accepts a whole number within [min, max].
func IntRange(min, max int, rejectFormat, rejectRange string) Validator {
	return func(_ context.Context, input string) (string, error) {
		v, err := strconv.Atoi(input)
		if err != nil {
			return "", Invalid(rejectFormat)
		}
		if v < min || v > max {
			return "", Invalid(rejectRange)
		}
		return strconv.Itoa(v), nil
	}
}

// PositiveAmount accepts a positive decimal, tolerating a comma separator.
func PositiveAmount(reject string) Validator {
	return func(_ context.Context, input string) (string, error) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
		if err != nil || v <= 0 {
			return "", Invalid(reject)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
}

// PositiveInt accepts any whole number greater than zero.
func PositiveInt(rejectFormat, rejectRange string) Validator {
	return func(_ context.Context, input string) (string, error) {
		v, err := strconv.Atoi(input)
		if err != nil {
			return "", Invalid(rejectFormat)
		}
		if v <= 0 {
			return "", Invalid(rejectRange)
		}
		return strconv.Itoa(v), nil
	}
}

// PlaceID accepts a numeric place identifier or a roblox.com game link; the
// backend extracts the ID from links itself.
func PlaceID(reject string) Validator {
	return func(_ context.Context, input string) (string, error) {
		if strings.Contains(input, "roblox.com") {
			return input, nil
		}
		if _, err := strconv.ParseInt(input, 10, 64); err != nil {
			return "", Invalid(reject)
		}
		return input, nil
	}
}

// OneOf accepts only the listed values.
func OneOf(values []string, reject string) Validator {
	return func(_ context.Context, input string) (string, error) {
		for _, v := range values {
			if input == v {
				return v, nil
			}
		}
		return "", Invalid(fmt.Sprintf("%s (%s)", reject, strings.Join(values, ", ")))
	}
}

// Any accepts everything as-is.
func Any() Validator {
	return func(_ context.Context, input string) (string, error) {
		return input, nil
	}
}
