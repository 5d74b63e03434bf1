package entities

import (
	"time"

	"medequip-system/pkg/types"
)

type Usage struct {
	ID              uint64    `json:"id" db:"id"`
	DeviceID        uint64    `json:"device_id" db:"device_id"`
	RequesterID     uint64    `json:"requester_id" db:"requester_id"`
	UsageDepartment string    `json:"usage_department" db:"usage_department"`
	StartDate       time.Time `json:"start_date" db:"start_date"`
	EndDate         time.Time `json:"end_date" db:"end_date"`

	types.BaseEntity

	Device    *Device `json:"device,omitempty" db:"-"`
	Requester *User   `json:"requester,omitempty" db:"-"`
}

// ActiveAt reports whether the usage interval covers the given instant.
func (u *Usage) ActiveAt(now time.Time) bool {
	return !u.StartDate.After(now) && !u.EndDate.Before(now)
}
