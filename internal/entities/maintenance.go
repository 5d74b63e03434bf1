package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"medequip-system/pkg/types"
)

type Maintenance struct {
	ID           uint64       `json:"id" db:"id"`
	DeviceID     uint64       `json:"device_id" db:"device_id"`
	StartDate    time.Time    `json:"start_date" db:"start_date"`
	FinishedDate null.Time    `json:"finished_date" db:"finished_date"`
	Performer    null.String  `json:"performer" db:"performer"`
	Cost         null.Float64 `json:"cost" db:"cost"`
	Provider     null.String  `json:"maintenance_service_provider" db:"maintenance_service_provider"`

	types.BaseEntity

	Device *Device `json:"device,omitempty" db:"-"`
}

// ActiveAt reports whether the maintenance interval covers the given instant.
// An unset finish date keeps the interval open.
func (m *Maintenance) ActiveAt(now time.Time) bool {
	if m.StartDate.After(now) {
		return false
	}
	return !m.FinishedDate.Valid || !m.FinishedDate.Time.Before(now)
}
