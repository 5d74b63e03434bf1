package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"medequip-system/pkg/types"
)

type PurchaseRequest struct {
	ID                   uint64        `json:"id" db:"id"`
	RequesterID          uint64        `json:"requester_id" db:"requester_id"`
	DeviceName           string        `json:"device_name" db:"device_name"`
	Quantity             int           `json:"quantity" db:"quantity"`
	UnitPriceEstimated   null.Float64  `json:"unit_price_estimated" db:"unit_price_estimated"`
	TotalAmountEstimated null.Float64  `json:"total_amount_estimated" db:"total_amount_estimated"`
	DateOfRequest        time.Time     `json:"date_of_request" db:"date_of_request"`
	Status               RequestStatus `json:"status" db:"status"`

	types.BaseEntity

	Requester *User `json:"requester,omitempty" db:"-"`
}
