package commands

import (
	"context"

	"baggage/internal/core/domain/model/actor"
)

// RegisterActorCommandHandler stores a new actor profile.
type RegisterActorCommandHandler struct {
	uowFactory ActorUoWFactory
}

func NewRegisterActorCommandHandler(uowFactory ActorUoWFactory) RegisterActorCommandHandler {
	return RegisterActorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns a conflict error when the username is taken.
func (h RegisterActorCommandHandler) Handle(ctx context.Context, cmd RegisterActorCommand) (*actor.Actor, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, err := actor.NewActor(cmd.ActorID(), cmd.Username(), cmd.Role(), now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ActorRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
