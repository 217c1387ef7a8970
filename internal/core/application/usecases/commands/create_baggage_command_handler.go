package commands

import (
	"context"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
)

// CreateBaggageCommandHandler stores a new bag together with its initial
// system-attributed CheckedIn event, so that a fresh bag's timeline holds
// exactly one entry.
type CreateBaggageCommandHandler struct {
	uowFactory BaggageUoWFactory
	notifier   StatusNotifier
}

// NewCreateBaggageCommandHandler creates the handler. notifier may be nil.
func NewCreateBaggageCommandHandler(uowFactory BaggageUoWFactory, notifier StatusNotifier) CreateBaggageCommandHandler {
	return CreateBaggageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle persists the bag and its first event in one transaction, then notifies.
func (h CreateBaggageCommandHandler) Handle(ctx context.Context, cmd CreateBaggageCommand) (*baggage.Baggage, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	createdAt := now()
	bag, err := baggage.NewBaggage(cmd.BaggageID(), cmd.Registration(), createdAt)
	if err != nil {
		return nil, err
	}

	event, err := bag.RecordStatus(kernel.NewUUID(), baggage.CheckedIn, nil, baggage.InitialCheckInNote, "", createdAt)
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

	if err = uow.BaggageRepository().Add(ctx, bag); err != nil {
		return nil, err
	}

	if err = uow.StatusEventRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.notifier != nil {
		h.notifier.OnStatusAppended(ctx, event, bag, SystemActorName)
	}

	return bag, nil
}
