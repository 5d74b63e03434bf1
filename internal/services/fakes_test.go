package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"

	"medequip-system/internal/entities"
	"medequip-system/pkg/types"
)

// In-memory repository fakes. Each one serves its slice back and lets a test
// force an error for every method at once.

type fakeDeviceRepo struct {
	devices []entities.Device
	err     error
}

func (f *fakeDeviceRepo) ListDevices(ctx context.Context, filter types.Filter) ([]entities.Device, error) {
	return f.devices, f.err
}

func (f *fakeDeviceRepo) ListAllDevices(ctx context.Context) ([]entities.Device, error) {
	return f.devices, f.err
}

func (f *fakeDeviceRepo) FindDevice(ctx context.Context, id uint64) (*entities.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.devices {
		if f.devices[i].ID == id {
			return &f.devices[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDeviceRepo) FindDeviceByCode(ctx context.Context, code string) (*entities.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.devices {
		if f.devices[i].DeviceCode == code {
			return &f.devices[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDeviceRepo) CreateDevice(ctx context.Context, d *entities.Device) (uint64, error) {
	return 0, f.err
}

func (f *fakeDeviceRepo) UpdateDevice(ctx context.Context, id uint64, d *entities.Device) error {
	return f.err
}

func (f *fakeDeviceRepo) DeleteDevice(ctx context.Context, id uint64) error { return f.err }

func (f *fakeDeviceRepo) DistinctManufacturers(ctx context.Context) ([]string, error) {
	return nil, f.err
}

func (f *fakeDeviceRepo) DistinctStorageLocations(ctx context.Context) ([]string, error) {
	return nil, f.err
}

type fakeFaultRepairRepo struct {
	faults []entities.FaultRepair
	err    error
}

func (f *fakeFaultRepairRepo) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.FaultRepair, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.FaultRepair
	for i := range f.faults {
		if f.faults[i].DeviceID == deviceID {
			out = append(out, f.faults[i])
		}
	}
	return out, nil
}

func (f *fakeFaultRepairRepo) ListByReporter(ctx context.Context, reporterID uint64, filter types.Filter) ([]entities.FaultRepair, uint64, error) {
	return nil, 0, f.err
}

func (f *fakeFaultRepairRepo) List(ctx context.Context, filter types.Filter) ([]entities.FaultRepair, uint64, error) {
	return f.faults, uint64(len(f.faults)), f.err
}

func (f *fakeFaultRepairRepo) ListAll(ctx context.Context) ([]entities.FaultRepair, error) {
	return f.faults, f.err
}

func (f *fakeFaultRepairRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.FaultRepair, error) {
	return nil, f.err
}

func (f *fakeFaultRepairRepo) FindByID(ctx context.Context, id uint64) (*entities.FaultRepair, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.faults {
		if f.faults[i].ID == id {
			return &f.faults[i], nil
		}
	}
	return nil, nil
}

func (f *fakeFaultRepairRepo) Create(ctx context.Context, r *entities.FaultRepair) (uint64, error) {
	return 0, f.err
}

func (f *fakeFaultRepairRepo) UpdateReport(ctx context.Context, id uint64, reportedAt time.Time, description string) error {
	return f.err
}

func (f *fakeFaultRepairRepo) UpdateDecision(ctx context.Context, id uint64, decision entities.RepairDecision) error {
	return f.err
}

func (f *fakeFaultRepairRepo) UpdateRepairInfo(ctx context.Context, id uint64, start time.Time, finished null.Time, provider null.String, cost float64) error {
	return f.err
}

type fakeMaintenanceRepo struct {
	maintenances []entities.Maintenance
	err          error
}

func (f *fakeMaintenanceRepo) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Maintenance, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Maintenance
	for i := range f.maintenances {
		if f.maintenances[i].DeviceID == deviceID {
			out = append(out, f.maintenances[i])
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) List(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error) {
	return f.maintenances, uint64(len(f.maintenances)), f.err
}

func (f *fakeMaintenanceRepo) ListAll(ctx context.Context) ([]entities.Maintenance, error) {
	return f.maintenances, f.err
}

func (f *fakeMaintenanceRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.Maintenance, error) {
	return nil, f.err
}

func (f *fakeMaintenanceRepo) FindByID(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.maintenances {
		if f.maintenances[i].ID == id {
			return &f.maintenances[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMaintenanceRepo) Create(ctx context.Context, m *entities.Maintenance) (uint64, error) {
	return 0, f.err
}

func (f *fakeMaintenanceRepo) Update(ctx context.Context, id uint64, m *entities.Maintenance) error {
	return f.err
}

func (f *fakeMaintenanceRepo) Delete(ctx context.Context, id uint64) error { return f.err }

func (f *fakeMaintenanceRepo) DistinctProviders(ctx context.Context) ([]string, error) {
	return nil, f.err
}

type fakeUsageRepo struct {
	usages []entities.Usage
	err    error
}

func (f *fakeUsageRepo) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Usage, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Usage
	for i := range f.usages {
		if f.usages[i].DeviceID == deviceID {
			out = append(out, f.usages[i])
		}
	}
	return out, nil
}

func (f *fakeUsageRepo) List(ctx context.Context, filter types.Filter) ([]entities.Usage, uint64, error) {
	return f.usages, uint64(len(f.usages)), f.err
}

func (f *fakeUsageRepo) ListAll(ctx context.Context) ([]entities.Usage, error) {
	return f.usages, f.err
}

func (f *fakeUsageRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]entities.Usage, error) {
	return nil, f.err
}

func (f *fakeUsageRepo) FindByID(ctx context.Context, id uint64) (*entities.Usage, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.usages {
		if f.usages[i].ID == id {
			return &f.usages[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUsageRepo) Create(ctx context.Context, u *entities.Usage) (uint64, error) {
	return 0, f.err
}

func (f *fakeUsageRepo) Update(ctx context.Context, id uint64, u *entities.Usage) error {
	return f.err
}

func (f *fakeUsageRepo) Delete(ctx context.Context, id uint64) error { return f.err }

func (f *fakeUsageRepo) DistinctDepartments(ctx context.Context) ([]string, error) {
	return nil, f.err
}

type fakePurchaseRequestRepo struct {
	requests []entities.PurchaseRequest
	err      error
}

func (f *fakePurchaseRequestRepo) List(ctx context.Context, filter types.Filter) ([]entities.PurchaseRequest, uint64, error) {
	return f.requests, uint64(len(f.requests)), f.err
}

func (f *fakePurchaseRequestRepo) ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.PurchaseRequest, uint64, error) {
	return nil, 0, f.err
}

func (f *fakePurchaseRequestRepo) ListAll(ctx context.Context) ([]entities.PurchaseRequest, error) {
	return f.requests, f.err
}

func (f *fakePurchaseRequestRepo) FindByID(ctx context.Context, id uint64) (*entities.PurchaseRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.requests {
		if f.requests[i].ID == id {
			return &f.requests[i], nil
		}
	}
	return nil, nil
}

func (f *fakePurchaseRequestRepo) Create(ctx context.Context, req *entities.PurchaseRequest) (uint64, error) {
	return 0, f.err
}

func (f *fakePurchaseRequestRepo) Update(ctx context.Context, id uint64, req *entities.PurchaseRequest) error {
	return f.err
}

func (f *fakePurchaseRequestRepo) UpdateStatus(ctx context.Context, id uint64, status entities.RequestStatus) error {
	return f.err
}

func (f *fakePurchaseRequestRepo) Delete(ctx context.Context, id uint64) error { return f.err }

type fakeUserRepo struct {
	users []entities.User
	err   error

	// Mirrors the foreign-key cascade: deleting a user also removes the
	// fault reports they filed.
	faultRepo *fakeFaultRepairRepo
}

func (f *fakeUserRepo) ListUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return f.users, uint64(len(f.users)), f.err
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, f.err
}

func (f *fakeUserRepo) FindUserByStaffCode(ctx context.Context, staffCode string) (*entities.User, error) {
	return nil, f.err
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) (uint64, error) {
	return 0, f.err
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id uint64, user *entities.User) error {
	return f.err
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	return f.err
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	if f.err != nil {
		return f.err
	}
	if f.faultRepo != nil {
		var kept []entities.FaultRepair
		for i := range f.faultRepo.faults {
			if f.faultRepo.faults[i].ReporterID != id {
				kept = append(kept, f.faultRepo.faults[i])
			}
		}
		f.faultRepo.faults = kept
	}
	return nil
}

func (f *fakeUserRepo) DistinctDepartments(ctx context.Context) ([]string, error) {
	return nil, f.err
}
