package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
)

// StatusResolverInterface computes the operational status of a device at a
// given instant from its fault, maintenance and usage history.
type StatusResolverInterface interface {
	Resolve(ctx context.Context, deviceID uint64, now time.Time) (entities.DeviceStatus, error)
}

type StatusResolver struct {
	faultRepairRepo repositories.FaultRepairRepositoryInterface
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	usageRepo       repositories.UsageRepositoryInterface
	logger          *zap.Logger
}

func NewStatusResolver(
	faultRepairRepo repositories.FaultRepairRepositoryInterface,
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	usageRepo repositories.UsageRepositoryInterface,
	logger *zap.Logger,
) StatusResolverInterface {
	return &StatusResolver{
		faultRepairRepo: faultRepairRepo,
		maintenanceRepo: maintenanceRepo,
		usageRepo:       usageRepo,
		logger:          logger,
	}
}

// Resolve walks a fixed precedence chain. The first matching rule wins:
// an unresolved or written-off fault marks the device faulty, an active
// repair interval marks it under repair, then active maintenance, then
// active usage, and a device matching none of those is available.
func (s *StatusResolver) Resolve(ctx context.Context, deviceID uint64, now time.Time) (entities.DeviceStatus, error) {
	faults, err := s.faultRepairRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return "", err
	}

	for i := range faults {
		switch faults[i].State() {
		case entities.RepairStatePending, entities.RepairStateWillNotRepair, entities.RepairStateAwaitingRepair:
			return entities.StatusFaulty, nil
		}
	}

	for i := range faults {
		f := &faults[i]
		if f.RepairStatus != entities.DecisionRepair || !f.StartDate.Valid {
			continue
		}
		if f.StartDate.Time.After(now) {
			continue
		}
		if !f.FinishedDate.Valid || !f.FinishedDate.Time.Before(now) {
			return entities.StatusUnderRepair, nil
		}
	}

	maintenances, err := s.maintenanceRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return "", err
	}
	for i := range maintenances {
		if maintenances[i].ActiveAt(now) {
			return entities.StatusUnderMaintenance, nil
		}
	}

	usages, err := s.usageRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return "", err
	}
	for i := range usages {
		if usages[i].ActiveAt(now) {
			return entities.StatusInUse, nil
		}
	}

	return entities.StatusAvailable, nil
}
