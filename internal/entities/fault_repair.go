package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"medequip-system/pkg/types"
)

type FaultRepair struct {
	ID           uint64         `json:"id" db:"id"`
	DeviceID     uint64         `json:"device_id" db:"device_id"`
	ReporterID   uint64         `json:"reporter_id" db:"reporter_id"`
	ReportedAt   time.Time      `json:"reported_at" db:"reported_at"`
	Description  string         `json:"description" db:"description"`
	RepairStatus RepairDecision `json:"repair_status" db:"repair_status"`
	StartDate    null.Time      `json:"start_date" db:"start_date"`
	FinishedDate null.Time      `json:"finished_date" db:"finished_date"`
	Provider     null.String    `json:"repair_service_provider" db:"repair_service_provider"`
	Cost         null.Float64   `json:"cost" db:"cost"`

	types.BaseEntity

	// Joined data, not table columns.
	Device   *Device `json:"device,omitempty" db:"-"`
	Reporter *User   `json:"reporter,omitempty" db:"-"`
}

// State derives the full repair lifecycle position, including the states the
// store only implies through the date fields.
func (f *FaultRepair) State() RepairState {
	switch f.RepairStatus {
	case DecisionNoRepair:
		return RepairStateWillNotRepair
	case DecisionRepair:
		if !f.StartDate.Valid {
			return RepairStateAwaitingRepair
		}
		if f.FinishedDate.Valid {
			return RepairStateRepaired
		}
		return RepairStateRepairing
	default:
		return RepairStatePending
	}
}
