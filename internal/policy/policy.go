// File: internal/policy/policy.go
package policy

import (
	"context"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/infra/metrics"
)

// Decision is a policy's verdict on one inbound event.
type Decision struct {
	Allow bool
	// Notice is user-visible text for a suppressed event; empty means drop
	// silently.
	Notice string
	// Alert asks for a modal popup instead of a plain reply (callbacks only).
	Alert bool
}

var allow = Decision{Allow: true}

// Policy is an independent pre-condition check applied to every inbound
// event. Policies are side-effect-free except for cache population and must
// fail open on internal lookup errors.
type Policy interface {
	Name() string
	Check(ctx context.Context, ev model.Event) Decision
}

// Chain evaluates policies in registration order and short-circuits on the
// first suppression. Order is load-bearing: ban → maintenance → rate limit.
type Chain struct {
	policies []Policy
}

func NewChain(policies ...Policy) *Chain {
	return &Chain{policies: policies}
}

func (c *Chain) Check(ctx context.Context, ev model.Event) Decision {
	for _, p := range c.policies {
		if d := p.Check(ctx, ev); !d.Allow {
			metrics.IncPolicyDrop(p.Name())
			return d
		}
	}
	return allow
}
