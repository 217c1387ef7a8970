package commands

import (
	"errors"
	"strings"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/guard"
)

var ErrRecordStatusCommandIsNotConstructed = errors.New(
	"RecordStatusCommand must be created via NewRecordStatusCommand constructor",
)

// RecordStatusCommand asks to move a bag to a new status on behalf of an actor.
//
// The status code is kept as given and parsed by the handler after the
// actor's permission has been checked, so that an unauthorized caller learns
// nothing about which codes are valid.
type RecordStatusCommand struct { //nolint:recvcheck //using for validation
	baggageID  kernel.UUID
	actorID    kernel.UUID
	statusCode string
	notes      string
	location   string

	guard guard.ConstructorGuard
}

func NewRecordStatusCommand(
	baggageID kernel.UUID,
	actorID kernel.UUID,
	statusCode string,
	notes string,
	location string,
) (RecordStatusCommand, error) {
	cmd := RecordStatusCommand{
		statusCode: strings.TrimSpace(statusCode),
		notes:      notes,
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBaggageID(baggageID),
		cmd.setActorID(actorID),
	); err != nil {
		return RecordStatusCommand{}, err
	}

	return cmd, nil
}

func (c RecordStatusCommand) Validate() error {
	return c.guard.Validate(ErrRecordStatusCommandIsNotConstructed)
}

func (c RecordStatusCommand) BaggageID() kernel.UUID {
	return c.baggageID
}

func (c RecordStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c RecordStatusCommand) StatusCode() string {
	return c.statusCode
}

func (c RecordStatusCommand) Notes() string {
	return c.notes
}

func (c RecordStatusCommand) Location() string {
	return c.location
}

func (c *RecordStatusCommand) setBaggageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.baggageID = id
	return nil
}

func (c *RecordStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
