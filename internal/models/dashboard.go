package models

// DashboardSummary is the aggregated snapshot of portfolio occupancy
// and current-month cash flow
type DashboardSummary struct {
	TotalProperties    int64 `json:"totalProperties"`
	TotalTenants       int64 `json:"totalTenants"`
	OccupiedProperties int64 `json:"occupiedProperties"`
	VacantProperties   int64 `json:"vacantProperties"`

	TotalMonthlyIncome   float64 `json:"totalMonthlyIncome"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`

	PendingAlerts int64 `json:"pendingAlerts"`

	RecentTransactions []*Transaction `json:"recentTransactions"`
}
