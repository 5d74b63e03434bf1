package entities

import (
	"time"

	"medequip-system/pkg/types"
)

type UsageRequest struct {
	ID              uint64        `json:"id" db:"id"`
	RequesterID     uint64        `json:"requester_id" db:"requester_id"`
	UsageDepartment string        `json:"usage_department" db:"usage_department"`
	DeviceName      string        `json:"device_name" db:"device_name"`
	Quantity        int           `json:"quantity" db:"quantity"`
	StartDate       time.Time     `json:"start_date" db:"start_date"`
	EndDate         time.Time     `json:"end_date" db:"end_date"`
	Status          RequestStatus `json:"status" db:"status"`

	types.BaseEntity

	Requester *User `json:"requester,omitempty" db:"-"`
}
