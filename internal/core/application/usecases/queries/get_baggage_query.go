package queries

import (
	"errors"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"
	"baggage/internal/pkg/guard"
)

var ErrGetBaggageQueryIsNotConstructed = errors.New(
	"GetBaggageQuery must be created via NewGetBaggageByIDQuery or NewGetBaggageByTrackingCodeQuery",
)

// GetBaggageQuery looks a bag up either by id or by its printed tracking code.
//
// Example:
//
//	query, err := NewGetBaggageByTrackingCodeQuery("BAG-1A2B3C4D")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetBaggageQuery struct {
	baggageID    kernel.UUID
	trackingCode string
	byCode       bool

	guard guard.ConstructorGuard
}

func NewGetBaggageByIDQuery(baggageID kernel.UUID) (GetBaggageQuery, error) {
	if err := baggageID.Validate(); err != nil {
		return GetBaggageQuery{}, err
	}
	return GetBaggageQuery{
		baggageID: baggageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetBaggageByTrackingCodeQuery keeps the code exactly as given, padding
// included. Matching is exact and case-sensitive.
func NewGetBaggageByTrackingCodeQuery(code string) (GetBaggageQuery, error) {
	if code == "" {
		return GetBaggageQuery{}, errs.NewValueIsRequiredError("tracking_code")
	}
	return GetBaggageQuery{
		trackingCode: code,
		byCode:       true,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetBaggageQuery) Validate() error {
	return q.guard.Validate(ErrGetBaggageQueryIsNotConstructed)
}

func (q GetBaggageQuery) BaggageID() kernel.UUID {
	return q.baggageID
}

func (q GetBaggageQuery) TrackingCode() string {
	return q.trackingCode
}

func (q GetBaggageQuery) ByTrackingCode() bool {
	return q.byCode
}
