package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

type MaintenanceServiceInterface interface {
	ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Maintenance, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error)
	Get(ctx context.Context, id uint64) (*entities.Maintenance, error)
	Create(ctx context.Context, payload dto.CreateMaintenanceDTO) (*entities.Maintenance, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateMaintenanceDTO) error
	Delete(ctx context.Context, id uint64) error
	DistinctProviders(ctx context.Context) ([]string, error)
	DevicesInMaintenance(ctx context.Context, start, end time.Time) ([]entities.Maintenance, error)
}

type MaintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	deviceRepo      repositories.DeviceRepositoryInterface
	statusCache     StatusCacheInterface
	logger          *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	deviceRepo repositories.DeviceRepositoryInterface,
	statusCache StatusCacheInterface,
	logger *zap.Logger,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		deviceRepo:      deviceRepo,
		statusCache:     statusCache,
		logger:          logger,
	}
}

func (s *MaintenanceService) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.Maintenance, error) {
	return s.maintenanceRepo.ListByDevice(ctx, deviceID)
}

func (s *MaintenanceService) List(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error) {
	return s.maintenanceRepo.List(ctx, filter)
}

func (s *MaintenanceService) Get(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	return s.maintenanceRepo.FindByID(ctx, id)
}

func (s *MaintenanceService) buildMaintenance(payload dto.CreateMaintenanceDTO, deviceID uint64) (*entities.Maintenance, error) {
	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return nil, apperrors.NewHttpError(400, "Ngày bắt đầu bảo trì không hợp lệ", err, nil)
	}
	var finished null.Time
	if payload.FinishedDate != "" {
		f, err := time.Parse("2006-01-02", payload.FinishedDate)
		if err != nil {
			return nil, apperrors.NewHttpError(400, "Ngày bảo trì xong không hợp lệ", err, nil)
		}
		if f.Before(start) {
			return nil, apperrors.NewHttpError(400, "Ngày bảo trì xong phải sau ngày bắt đầu", apperrors.ErrBadRequest, nil)
		}
		finished = null.TimeFrom(f)
	}

	return &entities.Maintenance{
		DeviceID:     deviceID,
		StartDate:    start,
		FinishedDate: finished,
		Performer:    null.NewString(payload.Performer, payload.Performer != ""),
		Cost:         null.NewFloat64(payload.Cost, payload.Cost > 0),
		Provider:     null.NewString(payload.Provider, payload.Provider != ""),
	}, nil
}

func (s *MaintenanceService) Create(ctx context.Context, payload dto.CreateMaintenanceDTO) (*entities.Maintenance, error) {
	device, err := s.deviceRepo.FindDeviceByCode(ctx, payload.DeviceCode)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.buildMaintenance(payload, device.ID)
	if err != nil {
		return nil, err
	}

	id, err := s.maintenanceRepo.Create(ctx, maintenance)
	if err != nil {
		return nil, err
	}
	s.statusCache.Invalidate(device.ID)
	return s.maintenanceRepo.FindByID(ctx, id)
}

func (s *MaintenanceService) Update(ctx context.Context, id uint64, payload dto.UpdateMaintenanceDTO) error {
	current, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	device, err := s.deviceRepo.FindDeviceByCode(ctx, payload.DeviceCode)
	if err != nil {
		return err
	}
	maintenance, err := s.buildMaintenance(dto.CreateMaintenanceDTO(payload), device.ID)
	if err != nil {
		return err
	}

	if err := s.maintenanceRepo.Update(ctx, id, maintenance); err != nil {
		return err
	}
	s.statusCache.Invalidate(device.ID)
	if current.DeviceID != device.ID {
		s.statusCache.Invalidate(current.DeviceID)
	}
	return nil
}

func (s *MaintenanceService) Delete(ctx context.Context, id uint64) error {
	current, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.maintenanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.statusCache.Invalidate(current.DeviceID)
	return nil
}

func (s *MaintenanceService) DistinctProviders(ctx context.Context) ([]string, error) {
	return s.maintenanceRepo.DistinctProviders(ctx)
}

func (s *MaintenanceService) DevicesInMaintenance(ctx context.Context, start, end time.Time) ([]entities.Maintenance, error) {
	return s.maintenanceRepo.ListOverlapping(ctx, start, end)
}
