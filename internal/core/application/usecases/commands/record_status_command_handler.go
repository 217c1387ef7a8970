package commands

import (
	"context"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/core/domain/services"
	"baggage/internal/pkg/errs"
)

// RecordStatusResult is the state right after a successful append.
type RecordStatusResult struct {
	Baggage   *baggage.Baggage
	Event     *baggage.StatusEvent
	ActorName string
	Decision  services.Decision
}

// RecordStatusCommandHandler appends a status event to a bag's timeline and
// moves the bag's current status, atomically.
//
// Failures are reported in this order: unknown actor profile, missing
// permission, unknown bag, invalid status, policy violation. A failed call
// leaves the bag and its timeline unchanged.
//
// Example:
//
//	handler := NewRecordStatusCommandHandler(uowFactory, services.NewStatusAuthority(nil), fanOut)
//	cmd, _ := NewRecordStatusCommand(bagID, staffID, "LOADED", "", "Belt 4")
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    // 403
//	case errors.Is(err, errs.ErrConflict):
//	    // retry the whole call
//	}
type RecordStatusCommandHandler struct {
	uowFactory TimelineUoWFactory
	authority  services.StatusAuthority
	notifier   StatusNotifier
}

// NewRecordStatusCommandHandler creates the handler. notifier may be nil.
func NewRecordStatusCommandHandler(
	uowFactory TimelineUoWFactory,
	authority services.StatusAuthority,
	notifier StatusNotifier,
) RecordStatusCommandHandler {
	return RecordStatusCommandHandler{
		uowFactory: uowFactory,
		authority:  authority,
		notifier:   notifier,
	}
}

func (h RecordStatusCommandHandler) Handle(ctx context.Context, cmd RecordStatusCommand) (RecordStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecordStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	baggageRepo := uow.BaggageRepository()
	eventRepo := uow.StatusEventRepository()

	actor, err := uow.ActorRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return RecordStatusResult{}, err
	}
	if err = h.authority.CheckActor(actor); err != nil {
		return RecordStatusResult{}, err
	}

	bag, err := baggageRepo.GetForUpdate(ctx, cmd.BaggageID())
	if err != nil {
		return RecordStatusResult{}, err
	}

	status, parseErr := baggage.ParseStatus(cmd.StatusCode())
	decision, err := h.authority.Authorize(actor, bag, status)
	if err != nil {
		if parseErr != nil && errs.IsValidation(err) {
			return RecordStatusResult{}, parseErr
		}
		return RecordStatusResult{}, err
	}

	actorID := decision.ActorID
	event, err := bag.RecordStatus(kernel.NewUUID(), decision.To, &actorID, cmd.Notes(), cmd.Location(), now())
	if err != nil {
		return RecordStatusResult{}, err
	}

	if err = eventRepo.Add(ctx, event); err != nil {
		return RecordStatusResult{}, err
	}

	if err = baggageRepo.UpdateStatus(ctx, bag); err != nil {
		return RecordStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordStatusResult{}, err
	}

	if h.notifier != nil {
		h.notifier.OnStatusAppended(ctx, event, bag, actor.Username())
	}

	return RecordStatusResult{
		Baggage:   bag,
		Event:     event,
		ActorName: actor.Username(),
		Decision:  decision,
	}, nil
}
