package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

type UsageServiceInterface interface {
	ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Usage, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Usage, uint64, error)
	CreateBatch(ctx context.Context, payload dto.CreateUsageDTO) ([]entities.Usage, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateUsageDTO) error
	Delete(ctx context.Context, id uint64) error
	DistinctDepartments(ctx context.Context) ([]string, error)
	DevicesInUse(ctx context.Context, start, end time.Time) ([]entities.Usage, error)
}

type UsageService struct {
	usageRepo   repositories.UsageRepositoryInterface
	deviceRepo  repositories.DeviceRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	statusCache StatusCacheInterface
	logger      *zap.Logger
}

func NewUsageService(
	usageRepo repositories.UsageRepositoryInterface,
	deviceRepo repositories.DeviceRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	statusCache StatusCacheInterface,
	logger *zap.Logger,
) UsageServiceInterface {
	return &UsageService{
		usageRepo:   usageRepo,
		deviceRepo:  deviceRepo,
		userRepo:    userRepo,
		statusCache: statusCache,
		logger:      logger,
	}
}

func (s *UsageService) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Usage, error) {
	return s.usageRepo.ListByDevice(ctx, deviceID)
}

func (s *UsageService) List(ctx context.Context, filter types.Filter) ([]entities.Usage, uint64, error) {
	return s.usageRepo.List(ctx, filter)
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewHttpError(400, "Ngày bắt đầu không hợp lệ", err, nil)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewHttpError(400, "Ngày kết thúc không hợp lệ", err, nil)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.NewHttpError(400, "Ngày kết thúc phải sau ngày bắt đầu", apperrors.ErrBadRequest, nil)
	}
	return start, end, nil
}

// CreateBatch records one usage row per device code and invalidates each
// device's cached status. Unknown device or staff codes fail the whole batch
// before anything is written.
func (s *UsageService) CreateBatch(ctx context.Context, payload dto.CreateUsageDTO) ([]entities.Usage, error) {
	start, end, err := parseDateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		return nil, err
	}

	requester, err := s.userRepo.FindUserByStaffCode(ctx, payload.RequesterStaffCode)
	if err != nil {
		return nil, err
	}

	devices := make([]*entities.Device, 0, len(payload.DeviceCodes))
	for _, code := range payload.DeviceCodes {
		device, err := s.deviceRepo.FindDeviceByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	created := make([]entities.Usage, 0, len(devices))
	for _, device := range devices {
		usage := entities.Usage{
			DeviceID:        device.ID,
			RequesterID:     requester.ID,
			UsageDepartment: payload.UsageDepartment,
			StartDate:       start,
			EndDate:         end,
		}
		id, err := s.usageRepo.Create(ctx, &usage)
		if err != nil {
			return nil, err
		}
		usage.ID = id
		created = append(created, usage)
		s.statusCache.Invalidate(device.ID)
	}
	return created, nil
}

func (s *UsageService) Update(ctx context.Context, id uint64, payload dto.UpdateUsageDTO) error {
	start, end, err := parseDateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		return err
	}

	current, err := s.usageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	device, err := s.deviceRepo.FindDeviceByCode(ctx, payload.DeviceCode)
	if err != nil {
		return err
	}
	requester, err := s.userRepo.FindUserByStaffCode(ctx, payload.RequesterStaffCode)
	if err != nil {
		return err
	}

	usage := entities.Usage{
		DeviceID:        device.ID,
		RequesterID:     requester.ID,
		UsageDepartment: payload.UsageDepartment,
		StartDate:       start,
		EndDate:         end,
	}
	if err := s.usageRepo.Update(ctx, id, &usage); err != nil {
		return err
	}

	s.statusCache.Invalidate(device.ID)
	if current.DeviceID != device.ID {
		// Reassignment changes the status of both devices.
		s.statusCache.Invalidate(current.DeviceID)
	}
	return nil
}

func (s *UsageService) Delete(ctx context.Context, id uint64) error {
	current, err := s.usageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.usageRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.statusCache.Invalidate(current.DeviceID)
	return nil
}

func (s *UsageService) DistinctDepartments(ctx context.Context) ([]string, error) {
	return s.usageRepo.DistinctDepartments(ctx)
}

func (s *UsageService) DevicesInUse(ctx context.Context, start, end time.Time) ([]entities.Usage, error) {
	return s.usageRepo.ListOverlapping(ctx, start, end)
}
