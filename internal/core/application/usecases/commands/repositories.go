// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	BaggageRepoFactory interface {
		BaggageRepository() ports.BaggageRepository
	}

	StatusEventRepoFactory interface {
		StatusEventRepository() ports.StatusEventRepository
	}

	ActorRepoFactory interface {
		ActorRepository() ports.ActorRepository
	}

	// BaggageUoW covers registering a bag with its initial event.
	BaggageUoW interface {
		TxManager
		BaggageRepoFactory
		StatusEventRepoFactory
	}

	BaggageUoWFactory interface {
		Create() BaggageUoW
	}

	// TimelineUoW covers a status append: the actor is read, the bag is
	// locked and updated, and the event is inserted in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   bag, err := uow.BaggageRepository().GetForUpdate(ctx, id)
	//   // ... record the status, add the event, update the bag
	//
	//   err = uow.Commit(ctx)
	TimelineUoW interface {
		TxManager
		BaggageRepoFactory
		StatusEventRepoFactory
		ActorRepoFactory
	}

	TimelineUoWFactory interface {
		Create() TimelineUoW
	}

	ActorUoW interface {
		TxManager
		ActorRepoFactory
	}

	ActorUoWFactory interface {
		Create() ActorUoW
	}
)

// StatusNotifier is told about every committed status event. It must not
// fail the command: errors are its own to handle.
type StatusNotifier interface {
	OnStatusAppended(ctx context.Context, event *baggage.StatusEvent, item *baggage.Baggage, actorName string)
}

// SystemActorName is the actor name passed to the notifier for system events.
const SystemActorName = baggage.SystemActorName

// now is the clock used for event timestamps. PostgreSQL keeps microseconds,
// so the value is truncated to make round trips exact.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
