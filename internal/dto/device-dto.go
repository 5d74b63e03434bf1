package dto

import "medequip-system/internal/entities"

type CreateDeviceDTO struct {
	DeviceCode             string  `json:"device_code" validate:"required"`
	Name                   string  `json:"name" validate:"required"`
	SerialNumber           string  `json:"serial_number" validate:"required"`
	Classification         string  `json:"classification" validate:"required"`
	Manufacturer           string  `json:"manufacturer" validate:"required"`
	Origin                 string  `json:"origin" validate:"required"`
	ManufacturingYear      int     `json:"manufacturing_year" validate:"required,gt=1900"`
	ImportationDate        string  `json:"importation_date" validate:"required,datetime=2006-01-02"`
	Price                  float64 `json:"price" validate:"required,gt=0"`
	StorageLocation        string  `json:"storage_location"`
	WarrantyPeriod         string  `json:"warranty_period" validate:"omitempty,datetime=2006-01-02"`
	MaintenanceCycleMonths int     `json:"maintenance_cycle_months" validate:"required,gt=0"`
}

type UpdateDeviceDTO struct {
	DeviceCode             string  `json:"device_code" validate:"required"`
	Name                   string  `json:"name" validate:"required"`
	SerialNumber           string  `json:"serial_number" validate:"required"`
	Classification         string  `json:"classification" validate:"required"`
	Manufacturer           string  `json:"manufacturer" validate:"required"`
	Origin                 string  `json:"origin" validate:"required"`
	ManufacturingYear      int     `json:"manufacturing_year" validate:"required,gt=1900"`
	ImportationDate        string  `json:"importation_date" validate:"required,datetime=2006-01-02"`
	Price                  float64 `json:"price" validate:"required,gt=0"`
	StorageLocation        string  `json:"storage_location"`
	WarrantyPeriod         string  `json:"warranty_period" validate:"omitempty,datetime=2006-01-02"`
	MaintenanceCycleMonths int     `json:"maintenance_cycle_months" validate:"required,gt=0"`
}

// DeviceDTO is a device row with its derived operational status attached.
type DeviceDTO struct {
	entities.Device
	UsageStatus entities.DeviceStatus `json:"usage_status"`
}

type DeviceDueForMaintenanceDTO struct {
	DeviceCode string `json:"device_code"`
	Name       string `json:"name"`
	Date       string `json:"date"`
}
