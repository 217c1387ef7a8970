package queries

import (
	"errors"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/guard"
)

var ErrGetTimelineQueryIsNotConstructed = errors.New(
	"GetTimelineQuery must be created via NewGetTimelineQuery constructor",
)

// GetTimelineQuery lists the status history of one bag, oldest first.
type GetTimelineQuery struct {
	baggageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTimelineQuery(baggageID kernel.UUID) (GetTimelineQuery, error) {
	if err := baggageID.Validate(); err != nil {
		return GetTimelineQuery{}, err
	}
	return GetTimelineQuery{
		baggageID: baggageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetTimelineQueryIsNotConstructed)
}

func (q GetTimelineQuery) BaggageID() kernel.UUID {
	return q.baggageID
}
