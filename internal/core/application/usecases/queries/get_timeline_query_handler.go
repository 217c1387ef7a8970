package queries

import (
	"context"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// TimelineView is the timeline of a bag with just enough of the bag to label it.
type TimelineView struct {
	BaggageID     kernel.UUID
	TrackingCode  string
	PassengerName string
	CurrentStatus baggage.Status
	Timeline      []StatusEventView
}

// GetTimelineQueryHandler returns events ordered by timestamp, ties broken
// by insertion order. The last entry always carries the bag's current status.
//
// Example:
//
//	query, _ := NewGetTimelineQuery(bagID)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown bag
//	}
//	for _, e := range view.Timeline {
//	    fmt.Println(e.Timestamp, e.Status.Display(), e.ActorName)
//	}
type GetTimelineQueryHandler struct {
	db *gorm.DB
}

func NewGetTimelineQueryHandler(db *gorm.DB) GetTimelineQueryHandler {
	return GetTimelineQueryHandler{db: db}
}

func (h GetTimelineQueryHandler) Handle(ctx context.Context, query GetTimelineQuery) (TimelineView, error) {
	if err := query.Validate(); err != nil {
		return TimelineView{}, err
	}

	var view TimelineView
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		bag, err := loadBaggage(ctx, tx, query.BaggageID())
		if err != nil {
			return err
		}

		events, err := loadTimeline(ctx, tx, query.BaggageID())
		if err != nil {
			return err
		}

		view = TimelineView{
			BaggageID:     bag.ID,
			TrackingCode:  bag.TrackingCode,
			PassengerName: bag.PassengerName,
			CurrentStatus: bag.Status,
			Timeline:      events,
		}
		return nil
	})
	if err != nil {
		return TimelineView{}, err
	}

	return view, nil
}
