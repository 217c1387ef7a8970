package ports

import (
	"context"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
)

// StatusEventRepository is append-only: events are never updated or removed.
type StatusEventRepository interface {
	Add(ctx context.Context, event *baggage.StatusEvent) error

	// ListByBaggage returns the events of one bag oldest first, ties broken by
	// insertion order.
	ListByBaggage(ctx context.Context, baggageID kernel.UUID) ([]*baggage.StatusEvent, error)
}
