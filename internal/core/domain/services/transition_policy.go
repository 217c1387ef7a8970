package services

import (
	"fmt"
	"strings"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/pkg/errs"
)

const (
	PolicyPermissive  = "permissive"
	PolicyForwardOnly = "forward-only"
)

// TransitionPolicy decides whether a bag may move from one status to another.
type TransitionPolicy interface {
	Name() string
	Allows(from, to baggage.Status) error
}

// ParseTransitionPolicy returns the policy registered under name. An empty
// name selects the permissive policy.
func ParseTransitionPolicy(name string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyPermissive:
		return PermissivePolicy{}, nil
	case PolicyForwardOnly:
		return ForwardOnlyPolicy{}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"transition policy",
			fmt.Errorf("%q is not one of %s, %s", name, PolicyPermissive, PolicyForwardOnly),
		)
	}
}

// PermissivePolicy allows any status after any other, repeats and regressions included.
type PermissivePolicy struct{}

func (PermissivePolicy) Name() string {
	return PolicyPermissive
}

func (PermissivePolicy) Allows(_, _ baggage.Status) error {
	return nil
}

// ForwardOnlyPolicy rejects moves to an earlier lifecycle step. Repeating the
// current status is allowed so that re-scans at the same step can be recorded.
type ForwardOnlyPolicy struct{}

func (ForwardOnlyPolicy) Name() string {
	return PolicyForwardOnly
}

func (ForwardOnlyPolicy) Allows(from, to baggage.Status) error {
	if to.Precedes(from) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot move from %s back to %s", from, to),
		)
	}
	return nil
}
