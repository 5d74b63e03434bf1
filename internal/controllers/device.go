package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	"medequip-system/pkg/utils"
)

type DeviceController struct {
	deviceService services.DeviceServiceInterface
	logger        *zap.Logger
}

func NewDeviceController(deviceService services.DeviceServiceInterface, logger *zap.Logger) *DeviceController {
	return &DeviceController{deviceService: deviceService, logger: logger}
}

func (c *DeviceController) GetDevices(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	devices, total, err := c.deviceService.ListDevices(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetDevices: failed to list devices", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, devices, "Lấy danh sách thiết bị thành công", http.StatusOK, total)
}

func (c *DeviceController) FindDevice(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	device, err := c.deviceService.GetDevice(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindDevice: failed to find device", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, device, "Lấy thông tin thiết bị thành công", http.StatusOK)
}

// FindDeviceByCode serves the name-lookup the record forms use when the
// operator types a device code.
func (c *DeviceController) FindDeviceByCode(ctx echo.Context) error {
	code := ctx.Param("code")
	device, err := c.deviceService.GetDeviceByCode(ctx.Request().Context(), code)
	if err != nil {
		c.logger.Warn("FindDeviceByCode: lookup failed", zap.String("code", code), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]string{"name": device.Name}, "Tìm thấy thiết bị", http.StatusOK)
}

func (c *DeviceController) CreateDevice(ctx echo.Context) error {
	var payload dto.CreateDeviceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	device, err := c.deviceService.CreateDevice(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateDevice: failed", zap.String("deviceCode", payload.DeviceCode), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, device, "Thêm thiết bị thành công", http.StatusCreated)
}

func (c *DeviceController) UpdateDevice(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDeviceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.deviceService.UpdateDevice(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateDevice: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật thiết bị thành công", http.StatusOK)
}

func (c *DeviceController) DeleteDevice(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.deviceService.DeleteDevice(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteDevice: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Xóa thiết bị thành công", http.StatusOK)
}

func (c *DeviceController) GetManufacturers(ctx echo.Context) error {
	manufacturers, err := c.deviceService.DistinctManufacturers(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, manufacturers, "Lấy danh sách hãng sản xuất thành công", http.StatusOK)
}

func (c *DeviceController) GetStorageLocations(ctx echo.Context) error {
	locations, err := c.deviceService.DistinctStorageLocations(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, locations, "Lấy danh sách vị trí lưu trữ thành công", http.StatusOK)
}

func (c *DeviceController) ExportDevices(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false

	devices, _, err := c.deviceService.ListDevices(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportDevices: failed to list devices", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	headers := []interface{}{
		"Mã thiết bị", "Tên thiết bị", "Số serial", "Phân loại", "Hãng sản xuất",
		"Xuất xứ", "Năm sản xuất", "Ngày nhập", "Giá", "Vị trí lưu trữ",
		"Chu kỳ bảo trì (tháng)", "Trạng thái",
	}
	rows := make([][]interface{}, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, []interface{}{
			d.DeviceCode, d.Name, d.SerialNumber, d.Classification, d.Manufacturer,
			d.Origin, d.ManufacturingYear, d.ImportationDate.Format("2006-01-02"),
			d.Price, d.StorageLocation.String, d.MaintenanceCycleMonths, string(d.UsageStatus),
		})
	}
	return respondWithXLSX(ctx, "Thiết bị", "devices", headers, rows)
}
