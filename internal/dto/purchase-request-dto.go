package dto

type CreatePurchaseRequestDTO struct {
	RequesterID        uint64  `json:"requester_id" validate:"required"`
	DeviceName         string  `json:"device_name" validate:"required"`
	Quantity           int     `json:"quantity" validate:"required,gt=0"`
	UnitPriceEstimated float64 `json:"unit_price_estimated" validate:"gte=0"`
	DateOfRequest      string  `json:"date_of_request" validate:"required,datetime=2006-01-02"`
}

type UpdatePurchaseRequestDTO struct {
	DeviceName         string  `json:"device_name" validate:"required"`
	Quantity           int     `json:"quantity" validate:"required,gt=0"`
	UnitPriceEstimated float64 `json:"unit_price_estimated" validate:"gte=0"`
	DateOfRequest      string  `json:"date_of_request" validate:"required,datetime=2006-01-02"`
}
