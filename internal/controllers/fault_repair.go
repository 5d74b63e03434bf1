package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	"medequip-system/pkg/utils"
)

type FaultRepairController struct {
	faultRepairService services.FaultRepairServiceInterface
	logger             *zap.Logger
}

func NewFaultRepairController(faultRepairService services.FaultRepairServiceInterface, logger *zap.Logger) *FaultRepairController {
	return &FaultRepairController{faultRepairService: faultRepairService, logger: logger}
}

func (c *FaultRepairController) GetFaultRepairs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	records, total, err := c.faultRepairService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetFaultRepairs: failed to list fault records", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy danh sách báo hỏng thành công", http.StatusOK, total)
}

func (c *FaultRepairController) GetMyReports(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	records, total, err := c.faultRepairService.ListByReporter(ctx.Request().Context(), userID, filter)
	if err != nil {
		c.logger.Error("GetMyReports: failed", zap.Uint64("userID", userID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy danh sách báo hỏng của bạn thành công", http.StatusOK, total)
}

func (c *FaultRepairController) GetDeviceFaultHistory(ctx echo.Context) error {
	deviceID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	records, err := c.faultRepairService.ListByDevice(ctx.Request().Context(), deviceID)
	if err != nil {
		c.logger.Error("GetDeviceFaultHistory: failed", zap.Uint64("deviceID", deviceID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy lịch sử hỏng hóc thiết bị thành công", http.StatusOK)
}

func (c *FaultRepairController) ReportFault(ctx echo.Context) error {
	var payload dto.CreateFaultReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.faultRepairService.ReportFault(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("ReportFault: failed", zap.String("deviceCode", payload.DeviceCode), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, record, "Báo hỏng thành công", http.StatusCreated)
}

func (c *FaultRepairController) UpdateReport(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	isAdmin := utils.GetIsAdminFromCtx(ctx.Request().Context())

	var payload dto.UpdateFaultReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.faultRepairService.UpdateReport(ctx.Request().Context(), id, userID, isAdmin, payload); err != nil {
		c.logger.Error("UpdateReport: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật báo hỏng thành công", http.StatusOK)
}

func (c *FaultRepairController) UpdateDecision(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRepairDecisionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.faultRepairService.UpdateDecision(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateDecision: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật quyết định sửa chữa thành công", http.StatusOK)
}

func (c *FaultRepairController) UpdateRepairInfo(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRepairInfoDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.faultRepairService.UpdateRepairInfo(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateRepairInfo: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật thông tin sửa chữa thành công", http.StatusOK)
}

func (c *FaultRepairController) GetRepairingDevices(ctx echo.Context) error {
	start, end, err := parseRangeQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	records, err := c.faultRepairService.RepairingDevices(ctx.Request().Context(), start, end)
	if err != nil {
		c.logger.Error("GetRepairingDevices: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy danh sách thiết bị đang sửa chữa thành công", http.StatusOK)
}

func (c *FaultRepairController) GetFaultyDevices(ctx echo.Context) error {
	devices, err := c.faultRepairService.FaultyDevices(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetFaultyDevices: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devices, "Lấy danh sách thiết bị hỏng thành công", http.StatusOK)
}

func (c *FaultRepairController) ExportFaultRepairs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	filter.Limit = utils.MaxLimit

	records, _, err := c.faultRepairService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportFaultRepairs: failed to list fault records", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	headers := []interface{}{
		"Mã thiết bị", "Tên thiết bị", "Người báo hỏng", "Thời điểm báo hỏng",
		"Mô tả", "Quyết định", "Ngày bắt đầu sửa", "Ngày sửa xong", "Đơn vị sửa chữa", "Chi phí",
	}
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		var deviceCode, deviceName, reporter string
		if r.Device != nil {
			deviceCode, deviceName = r.Device.DeviceCode, r.Device.Name
		}
		if r.Reporter != nil {
			reporter = r.Reporter.Name
		}
		var started, finished string
		if r.StartDate.Valid {
			started = r.StartDate.Time.Format("2006-01-02")
		}
		if r.FinishedDate.Valid {
			finished = r.FinishedDate.Time.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			deviceCode, deviceName, reporter, r.ReportedAt.Format("2006-01-02 15:04"),
			r.Description, string(r.RepairStatus), started, finished, r.Provider.String, r.Cost.Float64,
		})
	}
	return respondWithXLSX(ctx, "Báo hỏng và sửa chữa", "fault_repairs", headers, rows)
}
