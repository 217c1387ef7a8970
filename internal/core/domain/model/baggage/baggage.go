package baggage

import (
	"errors"
	"time"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"
	"baggage/internal/pkg/guard"
)

// ErrBaggageIsNotConstructed is returned when a Baggage was not created through NewBaggage or RestoreBaggage.
var ErrBaggageIsNotConstructed = errors.New("Baggage must be created via NewBaggage constructor")

// Baggage is the aggregate root for a checked bag.
//
// Invariants:
//   - id and trackingCode never change after creation
//   - status always equals the status of the latest StatusEvent produced for the bag
//   - updatedAt is never earlier than createdAt and never moves backwards
//
// The struct keeps its fields private. Status changes go through RecordStatus only.
type Baggage struct {
	id           kernel.UUID
	trackingCode kernel.TrackingCode
	registration Registration
	status       Status
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewBaggage creates a bag in CheckedIn with its tracking code derived from id.
//
// The caller is expected to record the initial CheckedIn event right away:
//
//	b, err := baggage.NewBaggage(id, registration, now)
//	if err != nil {
//	    return err
//	}
//	ev, err := b.RecordStatus(kernel.NewUUID(), baggage.CheckedIn, nil, baggage.InitialCheckInNote, "", now)
func NewBaggage(id kernel.UUID, registration Registration, createdAt time.Time) (*Baggage, error) {
	b := &Baggage{
		status: CheckedIn,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setRegistration(registration),
		b.setTimestamps(createdAt, createdAt),
	); err != nil {
		return nil, err
	}

	code, err := kernel.NewTrackingCode(id)
	if err != nil {
		return nil, err
	}
	b.trackingCode = code

	return b, nil
}

// RestoreBaggage rebuilds a bag from persisted state. The tracking code must
// match the one derived from id.
func RestoreBaggage(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	registration Registration,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Baggage, error) {
	b := &Baggage{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setTrackingCode(trackingCode, id),
		b.setRegistration(registration),
		b.setStatus(status),
		b.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Baggage) Validate() error {
	if b == nil {
		return ErrBaggageIsNotConstructed
	}
	return b.guard.Validate(ErrBaggageIsNotConstructed)
}

// IsEqual compares bags by id.
func (b *Baggage) IsEqual(other *Baggage) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Baggage) ID() kernel.UUID {
	return b.id
}

func (b *Baggage) TrackingCode() kernel.TrackingCode {
	return b.trackingCode
}

func (b *Baggage) Registration() Registration {
	return b.registration
}

func (b *Baggage) Status() Status {
	return b.status
}

func (b *Baggage) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Baggage) UpdatedAt() time.Time {
	return b.updatedAt
}

// RecordStatus moves the bag to status and returns the event that describes
// the move. It is the only way the current status changes.
//
// The event timestamp is at, clamped so it is never earlier than the bag's
// last update. actorID is nil for system-generated events. notes and location
// are optional and trimmed.
//
// Any valid status is accepted, including a repeat of the current one.
// Authorization and transition policy are applied by the caller beforehand.
func (b *Baggage) RecordStatus(
	eventID kernel.UUID,
	status Status,
	actorID *kernel.UUID,
	notes string,
	location string,
	at time.Time,
) (*StatusEvent, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamp")
	}

	ts := at.UTC()
	if ts.Before(b.updatedAt) {
		ts = b.updatedAt
	}

	event, err := newStatusEvent(eventID, b.id, status, ts, actorID, notes, location)
	if err != nil {
		return nil, err
	}

	b.applyStatus(status, ts)
	return event, nil
}

func (b *Baggage) applyStatus(status Status, at time.Time) {
	b.status = status
	b.updatedAt = at
}

func (b *Baggage) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Baggage) setTrackingCode(code kernel.TrackingCode, id kernel.UUID) error {
	if err := code.Validate(); err != nil {
		return err
	}
	if id.Validate() == nil && !code.MatchesID(id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking code",
			errors.New(code.String()+" was not derived from "+id.String()),
		)
	}
	b.trackingCode = code
	return nil
}

func (b *Baggage) setRegistration(registration Registration) error {
	if err := registration.Validate(); err != nil {
		return err
	}
	b.registration = registration
	return nil
}

func (b *Baggage) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}

func (b *Baggage) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updated_at", errors.New("updated_at precedes created_at"))
	}
	b.createdAt = createdAt.UTC()
	b.updatedAt = updatedAt.UTC()
	return nil
}
