package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a backend failure so handlers branch on meaning instead of
// catching generically.
type Kind string

const (
	KindUnavailable Kind = "unavailable" // network error or 5xx
	KindForbidden   Kind = "forbidden"   // 401/403
	KindNotFound    Kind = "not_found"   // 404
	KindRejected    Kind = "rejected"    // other 4xx: backend refused the request
	KindConflict    Kind = "conflict"    // 409: duplicate/already processed
)

// Error is the typed failure surfaced by every client call.
type Error struct {
	Kind    Kind
	Status  int
	Op      string
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: %s (status %d)", e.Op, e.Kind, e.Status)
	}
	return fmt.Sprintf("backend %s: %s: %s", e.Op, e.Kind, e.Message)
}

// IsKind reports whether err is a backend failure of the given kind.
func IsKind(err error, k Kind) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == k
}

func classify(status int) Kind {
	switch {
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindRejected
	default:
		return KindUnavailable
	}
}
