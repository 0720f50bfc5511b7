package ports

import "context"

// DashboardStats is the aggregate view shown on the admin dashboard.
type DashboardStats struct {
	Books BookStats
	Posts PostStats
	Users int64
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}
