package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	"medequip-system/pkg/utils"
)

type UsageRequestController struct {
	requestService services.UsageRequestServiceInterface
	logger         *zap.Logger
}

func NewUsageRequestController(requestService services.UsageRequestServiceInterface, logger *zap.Logger) *UsageRequestController {
	return &UsageRequestController{requestService: requestService, logger: logger}
}

func (c *UsageRequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	requests, total, err := c.requestService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetRequests: failed to list usage requests", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, requests, "Lấy danh sách yêu cầu sử dụng thành công", http.StatusOK, total)
}

func (c *UsageRequestController) GetMyRequests(ctx echo.Context) error {
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
	return utils.SuccessResponse(ctx, requests, "Lấy danh sách yêu cầu của bạn thành công", http.StatusOK, total)
}

func (c *UsageRequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateUsageRequestDTO
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
	return utils.SuccessResponse(ctx, request, "Gửi yêu cầu sử dụng thành công", http.StatusCreated)
}

func (c *UsageRequestController) UpdateRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	isAdmin := utils.GetIsAdminFromCtx(ctx.Request().Context())

	var payload dto.UpdateUsageRequestDTO
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
	return utils.SuccessResponse(ctx, nil, "Cập nhật yêu cầu thành công", http.StatusOK)
}

func (c *UsageRequestController) UpdateRequestStatus(ctx echo.Context) error {
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
	return utils.SuccessResponse(ctx, nil, "Duyệt yêu cầu thành công", http.StatusOK)
}

func (c *UsageRequestController) DeleteRequest(ctx echo.Context) error {
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
	return utils.SuccessResponse(ctx, nil, "Xóa yêu cầu thành công", http.StatusOK)
}

func (c *UsageRequestController) GetDepartments(ctx echo.Context) error {
	departments, err := c.requestService.DistinctDepartments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, departments, "Lấy danh sách khoa phòng thành công", http.StatusOK)
}
