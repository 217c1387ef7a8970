package commands

import (
	"errors"
	"strings"

	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/guard"
)

var ErrRegisterActorCommandIsNotConstructed = errors.New(
	"RegisterActorCommand must be created via NewRegisterActorCommand constructor",
)

// RegisterActorCommand creates the profile for an identity-provider subject.
type RegisterActorCommand struct { //nolint:recvcheck //using for validation
	actorID  kernel.UUID
	username string
	role     actor.Role

	guard guard.ConstructorGuard
}

func NewRegisterActorCommand(actorID kernel.UUID, username string, roleCode string) (RegisterActorCommand, error) {
	cmd := RegisterActorCommand{
		username: strings.TrimSpace(username),
		guard:    guard.NewConstructorGuard(),
	}

	role, roleErr := actor.ParseRole(roleCode)
	if err := errors.Join(cmd.setActorID(actorID), roleErr); err != nil {
		return RegisterActorCommand{}, err
	}
	cmd.role = role

	return cmd, nil
}

func (c RegisterActorCommand) Validate() error {
	return c.guard.Validate(ErrRegisterActorCommandIsNotConstructed)
}

func (c RegisterActorCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c RegisterActorCommand) Username() string {
	return c.username
}

func (c RegisterActorCommand) Role() actor.Role {
	return c.role
}

func (c *RegisterActorCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
