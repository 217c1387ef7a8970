package queries

import (
	"errors"

	"baggage/internal/pkg/guard"
)

// RecentUpdatesLimit is how many of the latest events the dashboard shows.
const RecentUpdatesLimit = 10

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// GetDashboardStatsQuery summarizes the whole store for staff.
type GetDashboardStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDashboardStatsQuery() GetDashboardStatsQuery {
	return GetDashboardStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}
