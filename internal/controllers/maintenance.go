package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	"medequip-system/pkg/utils"
)

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(maintenanceService services.MaintenanceServiceInterface, logger *zap.Logger) *MaintenanceController {
	return &MaintenanceController{maintenanceService: maintenanceService, logger: logger}
}

func (c *MaintenanceController) GetMaintenances(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	records, total, err := c.maintenanceService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetMaintenances: failed to list maintenance records", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy danh sách bảo trì thành công", http.StatusOK, total)
}

func (c *MaintenanceController) GetDeviceMaintenanceHistory(ctx echo.Context) error {
	deviceID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	records, err := c.maintenanceService.ListByDevice(ctx.Request().Context(), deviceID)
	if err != nil {
		c.logger.Error("GetDeviceMaintenanceHistory: failed", zap.Uint64("deviceID", deviceID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy lịch sử bảo trì thiết bị thành công", http.StatusOK)
}

func (c *MaintenanceController) CreateMaintenance(ctx echo.Context) error {
	var payload dto.CreateMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.maintenanceService.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateMaintenance: failed", zap.String("deviceCode", payload.DeviceCode), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, record, "Thêm phiếu bảo trì thành công", http.StatusCreated)
}

func (c *MaintenanceController) UpdateMaintenance(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaintenanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.maintenanceService.Update(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateMaintenance: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật phiếu bảo trì thành công", http.StatusOK)
}

func (c *MaintenanceController) DeleteMaintenance(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.maintenanceService.Delete(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteMaintenance: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Xóa phiếu bảo trì thành công", http.StatusOK)
}

func (c *MaintenanceController) GetProviders(ctx echo.Context) error {
	providers, err := c.maintenanceService.DistinctProviders(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, providers, "Lấy danh sách đơn vị bảo trì thành công", http.StatusOK)
}

func (c *MaintenanceController) GetDevicesInMaintenance(ctx echo.Context) error {
	start, end, err := parseRangeQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	records, err := c.maintenanceService.DevicesInMaintenance(ctx.Request().Context(), start, end)
	if err != nil {
		c.logger.Error("GetDevicesInMaintenance: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, records, "Lấy danh sách thiết bị đang bảo trì thành công", http.StatusOK)
}

func (c *MaintenanceController) ExportMaintenances(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	filter.Limit = utils.MaxLimit

	records, _, err := c.maintenanceService.List(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportMaintenances: failed to list maintenance records", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	headers := []interface{}{
		"Mã thiết bị", "Tên thiết bị", "Ngày bắt đầu", "Ngày hoàn thành",
		"Người thực hiện", "Đơn vị bảo trì", "Chi phí",
	}
	rows := make([][]interface{}, 0, len(records))
	for _, m := range records {
		var deviceCode, deviceName string
		if m.Device != nil {
			deviceCode, deviceName = m.Device.DeviceCode, m.Device.Name
		}
		var finished string
		if m.FinishedDate.Valid {
			finished = m.FinishedDate.Time.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			deviceCode, deviceName, m.StartDate.Format("2006-01-02"), finished,
			m.Performer.String, m.Provider.String, m.Cost.Float64,
		})
	}
	return respondWithXLSX(ctx, "Bảo trì thiết bị", "maintenances", headers, rows)
}
