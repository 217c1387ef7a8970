package ports

import (
	"context"

	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/kernel"
)

type ActorRepository interface {
	// Add persists a profile. A duplicate username surfaces as a conflict error.
	Add(ctx context.Context, aggregate *actor.Actor) error

	// Get retrieves a profile by the subject id, or returns an object-not-found error.
	Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error)
}
