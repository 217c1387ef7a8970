package commands

import (
	"errors"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/guard"
)

var ErrCreateBaggageCommandIsNotConstructed = errors.New(
	"CreateBaggageCommand must be created via NewCreateBaggageCommand constructor",
)

// CreateBaggageCommand registers a checked bag.
//
// Example:
//
//	cmd, err := NewCreateBaggageCommand(kernel.NewUUID(), "Ann Lee", "ann@example.com", "BA117", "London")
//	if err != nil {
//	    return err
//	}
//	bag, err := handler.Handle(ctx, cmd)
type CreateBaggageCommand struct { //nolint:recvcheck //using for validation
	baggageID    kernel.UUID
	registration baggage.Registration

	guard guard.ConstructorGuard
}

// NewCreateBaggageCommand validates the passenger details. Empty optional
// fields are treated as absent.
func NewCreateBaggageCommand(
	baggageID kernel.UUID,
	passengerName string,
	passengerEmail string,
	flightNumber string,
	destination string,
) (CreateBaggageCommand, error) {
	cmd := CreateBaggageCommand{
		guard: guard.NewConstructorGuard(),
	}

	registration, regErr := baggage.NewRegistration(passengerName, passengerEmail, flightNumber, destination)
	if err := errors.Join(cmd.setBaggageID(baggageID), regErr); err != nil {
		return CreateBaggageCommand{}, err
	}
	cmd.registration = registration

	return cmd, nil
}

func (c CreateBaggageCommand) Validate() error {
	return c.guard.Validate(ErrCreateBaggageCommandIsNotConstructed)
}

func (c CreateBaggageCommand) BaggageID() kernel.UUID {
	return c.baggageID
}

func (c CreateBaggageCommand) Registration() baggage.Registration {
	return c.registration
}

func (c *CreateBaggageCommand) setBaggageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.baggageID = id
	return nil
}
