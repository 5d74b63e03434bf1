package dto

type CreateUsageRequestDTO struct {
	RequesterID     uint64 `json:"requester_id" validate:"required"`
	UsageDepartment string `json:"usage_department" validate:"required"`
	DeviceName      string `json:"device_name" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	StartDate       string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateUsageRequestDTO struct {
	UsageDepartment string `json:"usage_department" validate:"required"`
	DeviceName      string `json:"device_name" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	StartDate       string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateRequestStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

// CreateUsageDTO records actual use of a batch of devices by one operator.
type CreateUsageDTO struct {
	RequesterStaffCode string   `json:"requester_staff_code" validate:"required"`
	UsageDepartment    string   `json:"usage_department" validate:"required"`
	DeviceCodes        []string `json:"device_codes" validate:"required,min=1,dive,required"`
	StartDate          string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string   `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateUsageDTO struct {
	DeviceCode         string `json:"device_code" validate:"required"`
	RequesterStaffCode string `json:"requester_staff_code" validate:"required"`
	UsageDepartment    string `json:"usage_department" validate:"required"`
	StartDate          string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string `json:"end_date" validate:"required,datetime=2006-01-02"`
}
