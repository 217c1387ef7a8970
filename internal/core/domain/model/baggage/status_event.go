package baggage

import (
	"errors"
	"strings"
	"time"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"
	"baggage/internal/pkg/guard"
)

// MaxLocationLength limits the free-text location of a status event.
const MaxLocationLength = 100

// InitialCheckInNote annotates the event recorded when a bag is registered.
const InitialCheckInNote = "Initial check-in"

// SystemActorName labels events recorded without an actor.
const SystemActorName = "System"

var ErrStatusEventIsNotConstructed = errors.New("StatusEvent must be created via Baggage.RecordStatus")

// StatusEvent is an immutable record of one status change of a bag. A nil
// actor marks an event produced by the system itself.
type StatusEvent struct {
	id        kernel.UUID
	baggageID kernel.UUID
	status    Status
	timestamp time.Time
	actorID   *kernel.UUID
	notes     string
	location  string

	guard guard.ConstructorGuard
}

func newStatusEvent(
	id kernel.UUID,
	baggageID kernel.UUID,
	status Status,
	timestamp time.Time,
	actorID *kernel.UUID,
	notes string,
	location string,
) (*StatusEvent, error) {
	e := &StatusEvent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setBaggageID(baggageID),
		e.setStatus(status),
		e.setTimestamp(timestamp),
		e.setActorID(actorID),
		e.setLocation(location),
	); err != nil {
		return nil, err
	}
	e.notes = strings.TrimSpace(notes)

	return e, nil
}

// RestoreStatusEvent rebuilds a persisted event.
func RestoreStatusEvent(
	id kernel.UUID,
	baggageID kernel.UUID,
	status Status,
	timestamp time.Time,
	actorID *kernel.UUID,
	notes string,
	location string,
) (*StatusEvent, error) {
	return newStatusEvent(id, baggageID, status, timestamp, actorID, notes, location)
}

func (e *StatusEvent) Validate() error {
	if e == nil {
		return ErrStatusEventIsNotConstructed
	}
	return e.guard.Validate(ErrStatusEventIsNotConstructed)
}

func (e *StatusEvent) ID() kernel.UUID {
	return e.id
}

func (e *StatusEvent) BaggageID() kernel.UUID {
	return e.baggageID
}

func (e *StatusEvent) Status() Status {
	return e.status
}

func (e *StatusEvent) Timestamp() time.Time {
	return e.timestamp
}

// ActorID returns nil for system events.
func (e *StatusEvent) ActorID() *kernel.UUID {
	return e.actorID
}

func (e *StatusEvent) IsSystem() bool {
	return e.actorID == nil
}

func (e *StatusEvent) Notes() string {
	return e.notes
}

func (e *StatusEvent) Location() string {
	return e.location
}

func (e *StatusEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *StatusEvent) setBaggageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("baggage_id", err)
	}
	e.baggageID = id
	return nil
}

func (e *StatusEvent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *StatusEvent) setTimestamp(ts time.Time) error {
	if ts.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	e.timestamp = ts.UTC()
	return nil
}

func (e *StatusEvent) setActorID(actorID *kernel.UUID) error {
	if actorID == nil {
		return nil
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	id := *actorID
	e.actorID = &id
	return nil
}

func (e *StatusEvent) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if err := checkLength("location", location, MaxLocationLength); err != nil {
		return err
	}
	e.location = location
	return nil
}
