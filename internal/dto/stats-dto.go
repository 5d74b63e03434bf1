package dto

// MonthlyCountDTO is one month's record count inside a yearly breakdown.
type MonthlyCountDTO struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

type MonthlyBreakdownDTO struct {
	Year             int               `json:"year"`
	Usages           []MonthlyCountDTO `json:"usages"`
	Maintenances     []MonthlyCountDTO `json:"maintenances"`
	Repairs          []MonthlyCountDTO `json:"repairs"`
	FaultReports     []MonthlyCountDTO `json:"fault_reports"`
	PurchaseRequests []MonthlyCountDTO `json:"purchase_requests"`
}

type DashboardStatsDTO struct {
	TotalDevices            int     `json:"total_devices"`
	AverageUptimePercent    float64 `json:"average_uptime_percent"`
	MTBFHours               float64 `json:"mtbf_hours"`
	AgeFailureRatePercent   float64 `json:"age_failure_rate_percent"`
	MaintenanceRatioPercent float64 `json:"maintenance_ratio_percent"`
	AverageRepairDays       float64 `json:"average_repair_days"`
	AverageMaintenanceDays  float64 `json:"average_maintenance_days"`
	TotalCostMillions       int64   `json:"total_cost_millions"`
}
