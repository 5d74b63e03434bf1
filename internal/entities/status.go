package entities

// DeviceStatus is the derived operational status of a device. The values are
// the exact strings existing consumers render, so they must not change.
type DeviceStatus string

const (
	StatusFaulty           DeviceStatus = "Hỏng"
	StatusUnderRepair      DeviceStatus = "Đang sửa chữa"
	StatusUnderMaintenance DeviceStatus = "Đang bảo trì"
	StatusInUse            DeviceStatus = "Đang sử dụng"
	StatusAvailable        DeviceStatus = "Sẵn sàng sử dụng"

	// StatusError is returned when the record store cannot be read during
	// resolution. It is never cached.
	StatusError DeviceStatus = "Error"
)

// RepairDecision is the stored decision field on a fault report.
type RepairDecision string

const (
	DecisionPending  RepairDecision = "Chờ quyết định"
	DecisionNoRepair RepairDecision = "Không sửa"
	DecisionRepair   RepairDecision = "Sửa"
)

// RepairState is the full fault lifecycle, including the states the store
// only implies through date fields.
type RepairState int

const (
	RepairStatePending RepairState = iota
	RepairStateWillNotRepair
	RepairStateAwaitingRepair
	RepairStateRepairing
	RepairStateRepaired
)

// RequestStatus is the approval state of usage and purchase requests.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Đang chờ duyệt"
	RequestStatusApproved RequestStatus = "Đã duyệt"
	RequestStatusRejected RequestStatus = "Từ chối"
)
