package dto

type CreateFaultReportDTO struct {
	DeviceCode  string `json:"device_code" validate:"required"`
	ReporterID  uint64 `json:"reporter_id" validate:"required"`
	ReportedAt  string `json:"reported_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Description string `json:"description" validate:"required"`
}

type UpdateFaultReportDTO struct {
	ReportedAt  string `json:"reported_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Description string `json:"description" validate:"required"`
}

type UpdateRepairDecisionDTO struct {
	RepairStatus string `json:"repair_status" validate:"required"`
}

type UpdateRepairInfoDTO struct {
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	FinishedDate string  `json:"finished_date" validate:"omitempty,datetime=2006-01-02"`
	Provider     string  `json:"repair_service_provider"`
	Cost         float64 `json:"cost" validate:"gte=0"`
}
