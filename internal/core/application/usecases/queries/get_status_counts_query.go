package queries

import (
	"errors"

	"baggage/internal/pkg/guard"
)

var ErrGetStatusCountsQueryIsNotConstructed = errors.New(
	"GetStatusCountsQuery must be created via NewGetStatusCountsQuery constructor",
)

// GetStatusCountsQuery counts bags per current status.
type GetStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatusCountsQuery() GetStatusCountsQuery {
	return GetStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusCountsQueryIsNotConstructed)
}
