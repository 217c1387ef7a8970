package queries

import (
	"context"

	"baggage/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListBaggageQueryHandler returns all bags ordered by creation time, newest
// first. Bags and timelines come from one snapshot.
type ListBaggageQueryHandler struct {
	db *gorm.DB
}

func NewListBaggageQueryHandler(db *gorm.DB) ListBaggageQueryHandler {
	return ListBaggageQueryHandler{db: db}
}

func (h ListBaggageQueryHandler) Handle(ctx context.Context, query ListBaggageQuery) ([]BaggageView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var views []BaggageView
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		var loadErr error
		if views, loadErr = listBaggage(ctx, tx); loadErr != nil {
			return loadErr
		}

		timelines, loadErr := loadAllTimelines(ctx, tx)
		if loadErr != nil {
			return loadErr
		}
		for i := range views {
			if events, ok := timelines[views[i].ID]; ok {
				views[i].Timeline = events
			} else {
				views[i].Timeline = make([]StatusEventView, 0)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func listBaggage(ctx context.Context, db *gorm.DB) ([]BaggageView, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT` + baggageColumns + `
		FROM baggage
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]BaggageView, 0)
	for rows.Next() {
		view, scanErr := scanBaggage(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

func loadAllTimelines(ctx context.Context, db *gorm.DB) (map[kernel.UUID][]StatusEventView, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT` + eventColumns + eventsFrom + `
		ORDER BY e.baggage_id, e."timestamp" ASC, e.seq ASC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}

	byBaggage := make(map[kernel.UUID][]StatusEventView)
	for _, e := range events {
		byBaggage[e.BaggageID] = append(byBaggage[e.BaggageID], e)
	}
	return byBaggage, nil
}
