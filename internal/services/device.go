package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

type DeviceServiceInterface interface {
	ListDevices(ctx context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error)
	GetDevice(ctx context.Context, id uint64) (*dto.DeviceDTO, error)
	GetDeviceByCode(ctx context.Context, code string) (*entities.Device, error)
	CreateDevice(ctx context.Context, payload dto.CreateDeviceDTO) (*dto.DeviceDTO, error)
	UpdateDevice(ctx context.Context, id uint64, payload dto.UpdateDeviceDTO) error
	DeleteDevice(ctx context.Context, id uint64) error
	DistinctManufacturers(ctx context.Context) ([]string, error)
	DistinctStorageLocations(ctx context.Context) ([]string, error)
}

type DeviceService struct {
	deviceRepo  repositories.DeviceRepositoryInterface
	statusCache StatusCacheInterface
	logger      *zap.Logger
}

func NewDeviceService(
	deviceRepo repositories.DeviceRepositoryInterface,
	statusCache StatusCacheInterface,
	logger *zap.Logger,
) DeviceServiceInterface {
	return &DeviceService{deviceRepo: deviceRepo, statusCache: statusCache, logger: logger}
}

// statusFilterValues extracts the requested status labels from the filter
// map. The derived status never reaches the database, so it is matched after
// resolution rather than in SQL.
func statusFilterValues(filter map[string]interface{}) []string {
	raw, ok := filter["status"]
	if !ok {
		return nil
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", raw))
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListDevices attaches the derived status to every matching row, applies the
// optional status filter, and paginates the result in memory. Pagination has
// to happen after status attachment because the status filter cannot be
// pushed into the query.
func (s *DeviceService) ListDevices(ctx context.Context, filter types.Filter) ([]dto.DeviceDTO, uint64, error) {
	devices, err := s.deviceRepo.ListDevices(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]dto.DeviceDTO, 0, len(devices))
	for i := range devices {
		rows = append(rows, dto.DeviceDTO{
			Device:      devices[i],
			UsageStatus: s.statusCache.Get(ctx, devices[i].ID),
		})
	}

	if wanted := statusFilterValues(filter.Filter); len(wanted) > 0 {
		filtered := rows[:0]
		for _, row := range rows {
			for _, label := range wanted {
				if string(row.UsageStatus) == label {
					filtered = append(filtered, row)
					break
				}
			}
		}
		rows = filtered
	}

	total := uint64(len(rows))
	if filter.WithPagination {
		start := filter.Offset
		if start > len(rows) {
			start = len(rows)
		}
		end := start + filter.Limit
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	}
	return rows, total, nil
}

func (s *DeviceService) GetDevice(ctx context.Context, id uint64) (*dto.DeviceDTO, error) {
	device, err := s.deviceRepo.FindDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.DeviceDTO{Device: *device, UsageStatus: s.statusCache.Get(ctx, device.ID)}, nil
}

func (s *DeviceService) GetDeviceByCode(ctx context.Context, code string) (*entities.Device, error) {
	return s.deviceRepo.FindDeviceByCode(ctx, code)
}

func (s *DeviceService) buildDevice(payload dto.CreateDeviceDTO) (*entities.Device, error) {
	importation, err := time.Parse("2006-01-02", payload.ImportationDate)
	if err != nil {
		return nil, apperrors.NewHttpError(400, "Ngày nhập không hợp lệ", err, nil)
	}
	var warranty null.Time
	if payload.WarrantyPeriod != "" {
		w, err := time.Parse("2006-01-02", payload.WarrantyPeriod)
		if err != nil {
			return nil, apperrors.NewHttpError(400, "Hạn bảo hành không hợp lệ", err, nil)
		}
		warranty = null.TimeFrom(w)
	}
	return &entities.Device{
		DeviceCode:             payload.DeviceCode,
		Name:                   payload.Name,
		SerialNumber:           payload.SerialNumber,
		Classification:         payload.Classification,
		Manufacturer:           payload.Manufacturer,
		Origin:                 payload.Origin,
		ManufacturingYear:      payload.ManufacturingYear,
		ImportationDate:        importation,
		Price:                  payload.Price,
		StorageLocation:        null.NewString(payload.StorageLocation, payload.StorageLocation != ""),
		WarrantyPeriod:         warranty,
		MaintenanceCycleMonths: payload.MaintenanceCycleMonths,
	}, nil
}

func (s *DeviceService) CreateDevice(ctx context.Context, payload dto.CreateDeviceDTO) (*dto.DeviceDTO, error) {
	if existing, err := s.deviceRepo.FindDeviceByCode(ctx, payload.DeviceCode); err == nil && existing != nil {
		return nil, apperrors.NewHttpError(400, "Mã thiết bị đã tồn tại", apperrors.ErrAlreadyExists, nil)
	}

	device, err := s.buildDevice(payload)
	if err != nil {
		return nil, err
	}
	id, err := s.deviceRepo.CreateDevice(ctx, device)
	if err != nil {
		return nil, err
	}
	return s.GetDevice(ctx, id)
}

func (s *DeviceService) UpdateDevice(ctx context.Context, id uint64, payload dto.UpdateDeviceDTO) error {
	current, err := s.deviceRepo.FindDevice(ctx, id)
	if err != nil {
		return err
	}
	if payload.DeviceCode != current.DeviceCode {
		if existing, err := s.deviceRepo.FindDeviceByCode(ctx, payload.DeviceCode); err == nil && existing != nil {
			return apperrors.NewHttpError(400, "Mã thiết bị đã tồn tại", apperrors.ErrAlreadyExists, nil)
		}
	}

	device, err := s.buildDevice(dto.CreateDeviceDTO(payload))
	if err != nil {
		return err
	}
	if err := s.deviceRepo.UpdateDevice(ctx, id, device); err != nil {
		return err
	}
	s.statusCache.Invalidate(id)
	return nil
}

func (s *DeviceService) DeleteDevice(ctx context.Context, id uint64) error {
	if err := s.deviceRepo.DeleteDevice(ctx, id); err != nil {
		return err
	}
	s.statusCache.Invalidate(id)
	return nil
}

func (s *DeviceService) DistinctManufacturers(ctx context.Context) ([]string, error) {
	return s.deviceRepo.DistinctManufacturers(ctx)
}

func (s *DeviceService) DistinctStorageLocations(ctx context.Context) ([]string, error) {
	return s.deviceRepo.DistinctStorageLocations(ctx)
}
