package services

import (
	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"
)

// Decision is the outcome of a successful authorization.
type Decision struct {
	ActorID kernel.UUID
	From    baggage.Status
	To      baggage.Status
}

// IsRepeat reports a move to the status the bag already has.
func (d Decision) IsRepeat() bool {
	return d.From == d.To
}

// IsRegression reports a move to an earlier lifecycle step.
func (d Decision) IsRegression() bool {
	return d.To.Precedes(d.From)
}

// StatusAuthority decides whether an actor may record a status for a bag.
//
// Checks run in this order, and the first failure is returned:
//  1. the actor has a profile (ObjectNotFound otherwise)
//  2. the actor's role may update statuses (PermissionDenied otherwise)
//  3. the requested status belongs to the closed set (ValueIsInvalid otherwise)
//  4. the transition policy allows the move
//
// Example usage:
//
//	authority := services.NewStatusAuthority(services.PermissivePolicy{})
//	decision, err := authority.Authorize(staff, bag, baggage.Loaded)
//	if err != nil {
//	    return err
//	}
//	event, err := bag.RecordStatus(kernel.NewUUID(), decision.To, &decision.ActorID, notes, location, now)
type StatusAuthority struct {
	policy TransitionPolicy
}

// NewStatusAuthority falls back to the permissive policy when policy is nil.
func NewStatusAuthority(policy TransitionPolicy) StatusAuthority {
	if policy == nil {
		policy = PermissivePolicy{}
	}
	return StatusAuthority{policy: policy}
}

func (s StatusAuthority) Policy() TransitionPolicy {
	if s.policy == nil {
		return PermissivePolicy{}
	}
	return s.policy
}

// CheckActor runs the first two checks of Authorize. Callers use it to
// reject an actor before loading the bag.
func (s StatusAuthority) CheckActor(a *actor.Actor) error {
	if a == nil {
		return errs.NewObjectNotFoundError("actor profile", "unknown")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.CanUpdateBaggageStatus() {
		return errs.NewPermissionDeniedError(a.Username(), "update baggage status")
	}
	return nil
}

func (s StatusAuthority) Authorize(a *actor.Actor, b *baggage.Baggage, requested baggage.Status) (Decision, error) {
	if err := s.CheckActor(a); err != nil {
		return Decision{}, err
	}
	if err := b.Validate(); err != nil {
		return Decision{}, err
	}
	if err := requested.Validate(); err != nil {
		return Decision{}, err
	}
	if err := s.Policy().Allows(b.Status(), requested); err != nil {
		return Decision{}, err
	}

	return Decision{
		ActorID: a.ID(),
		From:    b.Status(),
		To:      requested,
	}, nil
}
