package queries

import (
	"context"

	"baggage/internal/core/domain/model/baggage"

	"gorm.io/gorm"
)

// StatusCount is the number of bags currently in one status.
type StatusCount struct {
	Status baggage.Status
	Count  int64
}

// GetStatusCountsQueryHandler returns one entry per known status, in
// lifecycle order, including statuses with no bags.
type GetStatusCountsQueryHandler struct {
	db *gorm.DB
}

func NewGetStatusCountsQueryHandler(db *gorm.DB) GetStatusCountsQueryHandler {
	return GetStatusCountsQueryHandler{db: db}
}

func (h GetStatusCountsQueryHandler) Handle(ctx context.Context, query GetStatusCountsQuery) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return countByStatus(ctx, h.db)
}

func countByStatus(ctx context.Context, db *gorm.DB) ([]StatusCount, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			current_status,
			count(*)
		FROM baggage
		GROUP BY current_status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byStatus := make(map[baggage.Status]int64)
	for rows.Next() {
		var code string
		var count int64
		if err = rows.Scan(&code, &count); err != nil {
			return nil, err
		}

		status, parseErr := baggage.ParseStatus(code)
		if parseErr != nil {
			return nil, parseErr
		}
		byStatus[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	statuses := baggage.AllStatuses()
	counts := make([]StatusCount, 0, len(statuses))
	for _, s := range statuses {
		counts = append(counts, StatusCount{Status: s, Count: byStatus[s]})
	}
	return counts, nil
}
