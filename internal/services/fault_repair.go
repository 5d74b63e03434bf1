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

type FaultRepairServiceInterface interface {
	ListByDevice(ctx context.Context, deviceID uint64) ([]entities.FaultRepair, error)
	List(ctx context.Context, filter types.Filter) ([]entities.FaultRepair, uint64, error)
	ListByReporter(ctx context.Context, reporterID uint64, filter types.Filter) ([]entities.FaultRepair, uint64, error)
	Get(ctx context.Context, id uint64) (*entities.FaultRepair, error)
	ReportFault(ctx context.Context, payload dto.CreateFaultReportDTO) (*entities.FaultRepair, error)
	UpdateReport(ctx context.Context, id uint64, reporterID uint64, isAdmin bool, payload dto.UpdateFaultReportDTO) error
	UpdateDecision(ctx context.Context, id uint64, payload dto.UpdateRepairDecisionDTO) error
	UpdateRepairInfo(ctx context.Context, id uint64, payload dto.UpdateRepairInfoDTO) error
	RepairingDevices(ctx context.Context, start, end time.Time) ([]entities.FaultRepair, error)
	FaultyDevices(ctx context.Context) ([]dto.DeviceDTO, error)
}

type FaultRepairService struct {
	faultRepairRepo repositories.FaultRepairRepositoryInterface
	deviceRepo      repositories.DeviceRepositoryInterface
	statusCache     StatusCacheInterface
	logger          *zap.Logger
}

func NewFaultRepairService(
	faultRepairRepo repositories.FaultRepairRepositoryInterface,
	deviceRepo repositories.DeviceRepositoryInterface,
	statusCache StatusCacheInterface,
	logger *zap.Logger,
) FaultRepairServiceInterface {
	return &FaultRepairService{
		faultRepairRepo: faultRepairRepo,
		deviceRepo:      deviceRepo,
		statusCache:     statusCache,
		logger:          logger,
	}
}

func (s *FaultRepairService) ListByDevice(ctx context.Context, deviceID uint64) ([]entities.FaultRepair, error) {
	return s.faultRepairRepo.ListByDevice(ctx, deviceID)
}

func (s *FaultRepairService) List(ctx context.Context, filter types.Filter) ([]entities.FaultRepair, uint64, error) {
	return s.faultRepairRepo.List(ctx, filter)
}

func (s *FaultRepairService) ListByReporter(ctx context.Context, reporterID uint64, filter types.Filter) ([]entities.FaultRepair, uint64, error) {
	return s.faultRepairRepo.ListByReporter(ctx, reporterID, filter)
}

func (s *FaultRepairService) Get(ctx context.Context, id uint64) (*entities.FaultRepair, error) {
	return s.faultRepairRepo.FindByID(ctx, id)
}

func (s *FaultRepairService) ReportFault(ctx context.Context, payload dto.CreateFaultReportDTO) (*entities.FaultRepair, error) {
	reportedAt, err := time.Parse(time.RFC3339, payload.ReportedAt)
	if err != nil {
		return nil, apperrors.NewHttpError(400, "Thời điểm báo hỏng không hợp lệ", err, nil)
	}
	device, err := s.deviceRepo.FindDeviceByCode(ctx, payload.DeviceCode)
	if err != nil {
		return nil, err
	}

	report := entities.FaultRepair{
		DeviceID:     device.ID,
		ReporterID:   payload.ReporterID,
		ReportedAt:   reportedAt,
		Description:  payload.Description,
		RepairStatus: entities.DecisionPending,
	}
	id, err := s.faultRepairRepo.Create(ctx, &report)
	if err != nil {
		return nil, err
	}
	s.statusCache.Invalidate(device.ID)
	return s.faultRepairRepo.FindByID(ctx, id)
}

func (s *FaultRepairService) UpdateReport(ctx context.Context, id uint64, reporterID uint64, isAdmin bool, payload dto.UpdateFaultReportDTO) error {
	current, err := s.faultRepairRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && current.ReporterID != reporterID {
		return apperrors.ErrForbidden
	}

	reportedAt, err := time.Parse(time.RFC3339, payload.ReportedAt)
	if err != nil {
		return apperrors.NewHttpError(400, "Thời điểm báo hỏng không hợp lệ", err, nil)
	}
	if err := s.faultRepairRepo.UpdateReport(ctx, id, reportedAt, payload.Description); err != nil {
		return err
	}
	s.statusCache.Invalidate(current.DeviceID)
	return nil
}

func (s *FaultRepairService) UpdateDecision(ctx context.Context, id uint64, payload dto.UpdateRepairDecisionDTO) error {
	decision := entities.RepairDecision(payload.RepairStatus)
	switch decision {
	case entities.DecisionPending, entities.DecisionNoRepair, entities.DecisionRepair:
	default:
		return apperrors.NewHttpError(400, "Quyết định sửa chữa không hợp lệ", apperrors.ErrBadRequest, nil)
	}

	current, err := s.faultRepairRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.faultRepairRepo.UpdateDecision(ctx, id, decision); err != nil {
		return err
	}
	s.statusCache.Invalidate(current.DeviceID)
	return nil
}

func (s *FaultRepairService) UpdateRepairInfo(ctx context.Context, id uint64, payload dto.UpdateRepairInfoDTO) error {
	current, err := s.faultRepairRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.RepairStatus != entities.DecisionRepair {
		return apperrors.NewHttpError(400, "Chưa có quyết định sửa thiết bị này", apperrors.ErrBadRequest, nil)
	}

	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return apperrors.NewHttpError(400, "Ngày bắt đầu sửa không hợp lệ", err, nil)
	}
	var finished null.Time
	if payload.FinishedDate != "" {
		f, err := time.Parse("2006-01-02", payload.FinishedDate)
		if err != nil {
			return apperrors.NewHttpError(400, "Ngày sửa xong không hợp lệ", err, nil)
		}
		if f.Before(start) {
			return apperrors.NewHttpError(400, "Ngày sửa xong phải sau ngày bắt đầu", apperrors.ErrBadRequest, nil)
		}
		finished = null.TimeFrom(f)
	}

	provider := null.NewString(payload.Provider, payload.Provider != "")
	if err := s.faultRepairRepo.UpdateRepairInfo(ctx, id, start, finished, provider, payload.Cost); err != nil {
		return err
	}
	s.statusCache.Invalidate(current.DeviceID)
	return nil
}

func (s *FaultRepairService) RepairingDevices(ctx context.Context, start, end time.Time) ([]entities.FaultRepair, error) {
	return s.faultRepairRepo.ListOverlapping(ctx, start, end)
}

// FaultyDevices returns the devices whose cached status currently reads as
// faulty or under repair. It only reads the cache, resolving misses without
// invalidating anything.
func (s *FaultRepairService) FaultyDevices(ctx context.Context) ([]dto.DeviceDTO, error) {
	devices, err := s.deviceRepo.ListAllDevices(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DeviceDTO, 0)
	for i := range devices {
		status := s.statusCache.Get(ctx, devices[i].ID)
		if status == entities.StatusFaulty || status == entities.StatusUnderRepair {
			out = append(out, dto.DeviceDTO{Device: devices[i], UsageStatus: status})
		}
	}
	return out, nil
}
