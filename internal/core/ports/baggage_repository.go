// Package ports defines the contracts between the baggage domain and the
// infrastructure that stores and transports it.
package ports

import (
	"context"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
)

// BaggageRepository defines the persistence contract for baggage aggregates.
type BaggageRepository interface {
	// Add persists a new bag. A tracking code collision surfaces as a conflict error.
	Add(ctx context.Context, aggregate *baggage.Baggage) error

	// Get retrieves a bag by id, or returns an object-not-found error.
	Get(ctx context.Context, id kernel.UUID) (*baggage.Baggage, error)

	// GetForUpdate retrieves a bag and locks its row until the surrounding
	// transaction ends. Concurrent status appends to the same bag queue up
	// behind the lock. It must be called inside a transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*baggage.Baggage, error)

	// GetByTrackingCode retrieves a bag by exact, case-sensitive tracking code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*baggage.Baggage, error)

	// UpdateStatus writes the bag's current status and updated_at and nothing else.
	UpdateStatus(ctx context.Context, aggregate *baggage.Baggage) error
}
