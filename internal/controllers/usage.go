package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/utils"
)

type UsageController struct {
	usageService services.UsageServiceInterface
	logger       *zap.Logger
}

func NewUsageController(usageService services.UsageServiceInterface, logger *zap.Logger) *UsageController {
	return &UsageController{usageService: usageService, logger: logger}
}

func (c *UsageController) GetUsages(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	usages, total, err := c.usageService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetUsages: failed to list usage records", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, usages, "Lấy danh sách sử dụng thành công", http.StatusOK, total)
}

func (c *UsageController) GetDeviceUsageHistory(ctx echo.Context) error {
	deviceID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	usages, err := c.usageService.ListByDevice(ctx.Request().Context(), deviceID)
	if err != nil {
		c.logger.Error("GetDeviceUsageHistory: failed", zap.Uint64("deviceID", deviceID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, usages, "Lấy lịch sử sử dụng thiết bị thành công", http.StatusOK)
}

func (c *UsageController) CreateUsages(ctx echo.Context) error {
	var payload dto.CreateUsageDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.usageService.CreateBatch(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateUsages: failed", zap.Strings("deviceCodes", payload.DeviceCodes), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Thêm phiếu sử dụng thành công", http.StatusCreated)
}

func (c *UsageController) UpdateUsage(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUsageDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.usageService.Update(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateUsage: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật phiếu sử dụng thành công", http.StatusOK)
}

func (c *UsageController) DeleteUsage(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.usageService.Delete(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteUsage: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Xóa phiếu sử dụng thành công", http.StatusOK)
}

func (c *UsageController) GetDepartments(ctx echo.Context) error {
	departments, err := c.usageService.DistinctDepartments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, departments, "Lấy danh sách khoa phòng thành công", http.StatusOK)
}

// parseRangeQuery reads ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func parseRangeQuery(ctx echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", ctx.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewHttpError(http.StatusBadRequest, "Tham số start không hợp lệ", err, nil)
	}
	end, err := time.Parse("2006-01-02", ctx.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewHttpError(http.StatusBadRequest, "Tham số end không hợp lệ", err, nil)
	}
	return start, end, nil
}

func (c *UsageController) GetDevicesInUse(ctx echo.Context) error {
	start, end, err := parseRangeQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	usages, err := c.usageService.DevicesInUse(ctx.Request().Context(), start, end)
	if err != nil {
		c.logger.Error("GetDevicesInUse: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, usages, "Lấy danh sách thiết bị đang sử dụng thành công", http.StatusOK)
}

func (c *UsageController) ExportUsages(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	filter.Limit = utils.MaxLimit

	usages, _, err := c.usageService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportUsages: failed to list usage records", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	headers := []interface{}{"Mã thiết bị", "Tên thiết bị", "Người sử dụng", "Khoa phòng", "Ngày bắt đầu", "Ngày kết thúc"}
	rows := make([][]interface{}, 0, len(usages))
	for _, u := range usages {
		var deviceCode, deviceName, requester string
		if u.Device != nil {
			deviceCode, deviceName = u.Device.DeviceCode, u.Device.Name
		}
		if u.Requester != nil {
			requester = u.Requester.Name
		}
		rows = append(rows, []interface{}{
			deviceCode, deviceName, requester, u.UsageDepartment,
			u.StartDate.Format("2006-01-02"), u.EndDate.Format("2006-01-02"),
		})
	}
	return respondWithXLSX(ctx, "Sử dụng thiết bị", "usages", headers, rows)
}
