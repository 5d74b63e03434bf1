package services

import (
	"context"

	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/types"
)

type UsageRequestServiceInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.UsageRequest, uint64, error)
	ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.UsageRequest, uint64, error)
	Get(ctx context.Context, id uint64) (*entities.UsageRequest, error)
	Create(ctx context.Context, payload dto.CreateUsageRequestDTO) (*entities.UsageRequest, error)
	Update(ctx context.Context, id uint64, requesterID uint64, isAdmin bool, payload dto.UpdateUsageRequestDTO) error
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error
	Delete(ctx context.Context, id uint64, requesterID uint64, isAdmin bool) error
	DistinctDepartments(ctx context.Context) ([]string, error)
}

type UsageRequestService struct {
	requestRepo repositories.UsageRequestRepositoryInterface
	logger      *zap.Logger
}

func NewUsageRequestService(
	requestRepo repositories.UsageRequestRepositoryInterface,
	logger *zap.Logger,
) UsageRequestServiceInterface {
	return &UsageRequestService{requestRepo: requestRepo, logger: logger}
}

func parseRequestStatus(raw string) (entities.RequestStatus, error) {
	switch entities.RequestStatus(raw) {
	case entities.RequestStatusPending, entities.RequestStatusApproved, entities.RequestStatusRejected:
		return entities.RequestStatus(raw), nil
	default:
		return "", apperrors.NewHttpError(400, "Trạng thái yêu cầu không hợp lệ", apperrors.ErrBadRequest, nil)
	}
}

func (s *UsageRequestService) List(ctx context.Context, filter types.Filter) ([]entities.UsageRequest, uint64, error) {
	return s.requestRepo.List(ctx, filter)
}

func (s *UsageRequestService) ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.UsageRequest, uint64, error) {
	return s.requestRepo.ListByRequester(ctx, requesterID, filter)
}

func (s *UsageRequestService) Get(ctx context.Context, id uint64) (*entities.UsageRequest, error) {
	return s.requestRepo.FindByID(ctx, id)
}

func (s *UsageRequestService) Create(ctx context.Context, payload dto.CreateUsageRequestDTO) (*entities.UsageRequest, error) {
	start, end, err := parseDateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		return nil, err
	}

	request := entities.UsageRequest{
		RequesterID:     payload.RequesterID,
		UsageDepartment: payload.UsageDepartment,
		DeviceName:      payload.DeviceName,
		Quantity:        payload.Quantity,
		StartDate:       start,
		EndDate:         end,
		Status:          entities.RequestStatusPending,
	}
	id, err := s.requestRepo.Create(ctx, &request)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.FindByID(ctx, id)
}

func (s *UsageRequestService) Update(ctx context.Context, id uint64, requesterID uint64, isAdmin bool, payload dto.UpdateUsageRequestDTO) error {
	current, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && current.RequesterID != requesterID {
		return apperrors.ErrForbidden
	}
	if current.Status != entities.RequestStatusPending {
		return apperrors.NewHttpError(400, "Chỉ có thể sửa yêu cầu đang chờ duyệt", apperrors.ErrBadRequest, nil)
	}

	start, end, err := parseDateRange(payload.StartDate, payload.EndDate)
	if err != nil {
		return err
	}
	request := entities.UsageRequest{
		UsageDepartment: payload.UsageDepartment,
		DeviceName:      payload.DeviceName,
		Quantity:        payload.Quantity,
		StartDate:       start,
		EndDate:         end,
	}
	return s.requestRepo.Update(ctx, id, &request)
}

func (s *UsageRequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error {
	status, err := parseRequestStatus(payload.Status)
	if err != nil {
		return err
	}
	return s.requestRepo.UpdateStatus(ctx, id, status)
}

func (s *UsageRequestService) Delete(ctx context.Context, id uint64, requesterID uint64, isAdmin bool) error {
	current, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && current.RequesterID != requesterID {
		return apperrors.ErrForbidden
	}
	return s.requestRepo.Delete(ctx, id)
}

func (s *UsageRequestService) DistinctDepartments(ctx context.Context) ([]string, error) {
	return s.requestRepo.DistinctDepartments(ctx)
}
