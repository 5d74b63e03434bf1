package dto

type CreateMaintenanceDTO struct {
	DeviceCode   string  `json:"device_code" validate:"required"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	FinishedDate string  `json:"finished_date" validate:"omitempty,datetime=2006-01-02"`
	Performer    string  `json:"performer"`
	Cost         float64 `json:"cost" validate:"gte=0"`
	Provider     string  `json:"maintenance_service_provider"`
}

type UpdateMaintenanceDTO struct {
	DeviceCode   string  `json:"device_code" validate:"required"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	FinishedDate string  `json:"finished_date" validate:"omitempty,datetime=2006-01-02"`
	Performer    string  `json:"performer"`
	Cost         float64 `json:"cost" validate:"gte=0"`
	Provider     string  `json:"maintenance_service_provider"`
}
