package queries

import (
	"context"

	"gorm.io/gorm"
)

// DashboardStats holds the total number of bags, the per-status breakdown
// and the most recent status events across all bags.
type DashboardStats struct {
	TotalBaggage  int64
	StatusCounts  []StatusCount
	RecentUpdates []StatusEventView
}

type GetDashboardStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db}
}

func (h GetDashboardStatsQueryHandler) Handle(ctx context.Context, query GetDashboardStatsQuery) (DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return DashboardStats{}, err
	}

	var stats DashboardStats
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		counts, err := countByStatus(ctx, tx)
		if err != nil {
			return err
		}
		stats.StatusCounts = counts
		for _, c := range counts {
			stats.TotalBaggage += c.Count
		}

		rows, err := tx.WithContext(ctx).Raw(`SELECT`+eventColumns+eventsFrom+`
			ORDER BY e."timestamp" DESC, e.seq DESC
			LIMIT ?
		`, RecentUpdatesLimit).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		stats.RecentUpdates, err = scanEvents(rows)
		return err
	})
	if err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}
