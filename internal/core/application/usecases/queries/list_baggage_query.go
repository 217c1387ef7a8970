package queries

import (
	"errors"

	"baggage/internal/pkg/guard"
)

var ErrListBaggageQueryIsNotConstructed = errors.New(
	"ListBaggageQuery must be created via NewListBaggageQuery constructor",
)

// ListBaggageQuery lists every bag, newest first, each with its timeline.
type ListBaggageQuery struct {
	guard guard.ConstructorGuard
}

func NewListBaggageQuery() ListBaggageQuery {
	return ListBaggageQuery{guard: guard.NewConstructorGuard()}
}

func (q ListBaggageQuery) Validate() error {
	return q.guard.Validate(ErrListBaggageQueryIsNotConstructed)
}
