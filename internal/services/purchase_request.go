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

type PurchaseRequestServiceInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.PurchaseRequest, uint64, error)
	ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.PurchaseRequest, uint64, error)
	Get(ctx context.Context, id uint64) (*entities.PurchaseRequest, error)
	Create(ctx context.Context, payload dto.CreatePurchaseRequestDTO) (*entities.PurchaseRequest, error)
	Update(ctx context.Context, id uint64, requesterID uint64, isAdmin bool, payload dto.UpdatePurchaseRequestDTO) error
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error
	Delete(ctx context.Context, id uint64, requesterID uint64, isAdmin bool) error
}

type PurchaseRequestService struct {
	requestRepo repositories.PurchaseRequestRepositoryInterface
	logger      *zap.Logger
}

func NewPurchaseRequestService(
	requestRepo repositories.PurchaseRequestRepositoryInterface,
	logger *zap.Logger,
) PurchaseRequestServiceInterface {
	return &PurchaseRequestService{requestRepo: requestRepo, logger: logger}
}

func (s *PurchaseRequestService) List(ctx context.Context, filter types.Filter) ([]entities.PurchaseRequest, uint64, error) {
	return s.requestRepo.List(ctx, filter)
}

func (s *PurchaseRequestService) ListByRequester(ctx context.Context, requesterID uint64, filter types.Filter) ([]entities.PurchaseRequest, uint64, error) {
	return s.requestRepo.ListByRequester(ctx, requesterID, filter)
}

func (s *PurchaseRequestService) Get(ctx context.Context, id uint64) (*entities.PurchaseRequest, error) {
	return s.requestRepo.FindByID(ctx, id)
}

func buildPurchaseRequest(payload dto.CreatePurchaseRequestDTO) (*entities.PurchaseRequest, error) {
	date, err := time.Parse("2006-01-02", payload.DateOfRequest)
	if err != nil {
		return nil, apperrors.NewHttpError(400, "Ngày yêu cầu không hợp lệ", err, nil)
	}

	unitPrice := null.NewFloat64(payload.UnitPriceEstimated, payload.UnitPriceEstimated > 0)
	total := null.NewFloat64(payload.UnitPriceEstimated*float64(payload.Quantity), unitPrice.Valid)
	return &entities.PurchaseRequest{
		RequesterID:          payload.RequesterID,
		DeviceName:           payload.DeviceName,
		Quantity:             payload.Quantity,
		UnitPriceEstimated:   unitPrice,
		TotalAmountEstimated: total,
		DateOfRequest:        date,
		Status:               entities.RequestStatusPending,
	}, nil
}

func (s *PurchaseRequestService) Create(ctx context.Context, payload dto.CreatePurchaseRequestDTO) (*entities.PurchaseRequest, error) {
	request, err := buildPurchaseRequest(payload)
	if err != nil {
		return nil, err
	}
	id, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.FindByID(ctx, id)
}

func (s *PurchaseRequestService) Update(ctx context.Context, id uint64, requesterID uint64, isAdmin bool, payload dto.UpdatePurchaseRequestDTO) error {
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

	request, err := buildPurchaseRequest(dto.CreatePurchaseRequestDTO{
		RequesterID:        current.RequesterID,
		DeviceName:         payload.DeviceName,
		Quantity:           payload.Quantity,
		UnitPriceEstimated: payload.UnitPriceEstimated,
		DateOfRequest:      payload.DateOfRequest,
	})
	if err != nil {
		return err
	}
	return s.requestRepo.Update(ctx, id, request)
}

func (s *PurchaseRequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error {
	status, err := parseRequestStatus(payload.Status)
	if err != nil {
		return err
	}
	return s.requestRepo.UpdateStatus(ctx, id, status)
}

func (s *PurchaseRequestService) Delete(ctx context.Context, id uint64, requesterID uint64, isAdmin bool) error {
	current, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && current.RequesterID != requesterID {
		return apperrors.ErrForbidden
	}
	return s.requestRepo.Delete(ctx, id)
}
