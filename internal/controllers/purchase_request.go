package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	"medequip-system/pkg/utils"
)

type PurchaseRequestController struct {
	requestService services.PurchaseRequestServiceInterface
	logger         *zap.Logger
}

func NewPurchaseRequestController(requestService services.PurchaseRequestServiceInterface, logger *zap.Logger) *PurchaseRequestController {
	return &PurchaseRequestController{requestService: requestService, logger: logger}
}

func (c *PurchaseRequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	requests, total, err := c.requestService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetRequests: failed to list purchase requests", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, requests, "Lấy danh sách đề xuất mua sắm thành công", http.StatusOK, total)
}

func (c *PurchaseRequestController) GetMyRequests(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	requests, total, err := c.requestService.ListByRequester(ctx.Request().Context(), userID, filter)
	if err != nil {
		c.logger.Error("GetMyRequests: failed", zap.Uint64("userID", userID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, requests, "Lấy danh sách đề xuất của bạn thành công", http.StatusOK, total)
}

func (c *PurchaseRequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreatePurchaseRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	request, err := c.requestService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateRequest: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, request, "Gửi đề xuất mua sắm thành công", http.StatusCreated)
}

func (c *PurchaseRequestController) UpdateRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	isAdmin := utils.GetIsAdminFromCtx(ctx.Request().Context())

	var payload dto.UpdatePurchaseRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestService.Update(ctx.Request().Context(), id, userID, isAdmin, payload); err != nil {
		c.logger.Error("UpdateRequest: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật đề xuất thành công", http.StatusOK)
}

func (c *PurchaseRequestController) UpdateRequestStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRequestStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestService.UpdateStatus(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateRequestStatus: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Duyệt đề xuất thành công", http.StatusOK)
}

func (c *PurchaseRequestController) DeleteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	isAdmin := utils.GetIsAdminFromCtx(ctx.Request().Context())

	if err := c.requestService.Delete(ctx.Request().Context(), id, userID, isAdmin); err != nil {
		c.logger.Error("DeleteRequest: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Xóa đề xuất thành công", http.StatusOK)
}

func (c *PurchaseRequestController) ExportRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	filter.Limit = utils.MaxLimit

	requests, _, err := c.requestService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportRequests: failed to list purchase requests", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	headers := []interface{}{
		"Người đề xuất", "Tên thiết bị", "Số lượng", "Đơn giá dự kiến",
		"Thành tiền dự kiến", "Ngày đề xuất", "Trạng thái",
	}
	rows := make([][]interface{}, 0, len(requests))
	for _, r := range requests {
		var requester string
		if r.Requester != nil {
			requester = r.Requester.Name
		}
		rows = append(rows, []interface{}{
			requester, r.DeviceName, r.Quantity, r.UnitPriceEstimated.Float64,
			r.TotalAmountEstimated.Float64, r.DateOfRequest.Format("2006-01-02"), string(r.Status),
		})
	}
	return respondWithXLSX(ctx, "Đề xuất mua sắm", "purchase_requests", headers, rows)
}
