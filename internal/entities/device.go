package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"medequip-system/pkg/types"
)

type Device struct {
	ID                     uint64       `json:"id" db:"id"`
	DeviceCode             string       `json:"device_code" db:"device_code"`
	Name                   string       `json:"name" db:"name"`
	SerialNumber           string       `json:"serial_number" db:"serial_number"`
	Classification         string       `json:"classification" db:"classification"`
	Manufacturer           string       `json:"manufacturer" db:"manufacturer"`
	Origin                 string       `json:"origin" db:"origin"`
	ManufacturingYear      int          `json:"manufacturing_year" db:"manufacturing_year"`
	ImportationDate        time.Time    `json:"importation_date" db:"importation_date"`
	Price                  float64      `json:"price" db:"price"`
	StorageLocation        null.String  `json:"storage_location" db:"storage_location"`
	WarrantyPeriod         null.Time    `json:"warranty_period" db:"warranty_period"`
	MaintenanceCycleMonths int          `json:"maintenance_cycle_months" db:"maintenance_cycle_months"`

	types.BaseEntity
}
