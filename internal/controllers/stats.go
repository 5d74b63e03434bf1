package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/services"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/utils"
)

type StatsController struct {
	statsService services.StatsServiceInterface
	logger       *zap.Logger
}

func NewStatsController(statsService services.StatsServiceInterface, logger *zap.Logger) *StatsController {
	return &StatsController{statsService: statsService, logger: logger}
}

func (c *StatsController) GetDashboardStats(ctx echo.Context) error {
	stats, err := c.statsService.DashboardStats(ctx.Request().Context(), time.Now())
	if err != nil {
		c.logger.Error("GetDashboardStats: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Lấy số liệu thống kê thành công", http.StatusOK)
}

func (c *StatsController) GetMonthlyBreakdown(ctx echo.Context) error {
	now := time.Now()
	year := now.Year()
	if yearStr := ctx.QueryParam("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(
				http.StatusBadRequest, "Tham số year không hợp lệ", err, nil), c.logger)
		}
		year = y
	}

	breakdown, err := c.statsService.MonthlyBreakdown(ctx.Request().Context(), year, now)
	if err != nil {
		c.logger.Error("GetMonthlyBreakdown: failed", zap.Int("year", year), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, breakdown, "Lấy thống kê theo tháng thành công", http.StatusOK)
}

func (c *StatsController) GetDevicesDueForMaintenance(ctx echo.Context) error {
	due, err := c.statsService.DevicesDueForMaintenance(ctx.Request().Context(), time.Now())
	if err != nil {
		c.logger.Error("GetDevicesDueForMaintenance: failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, due, "Lấy danh sách thiết bị đến hạn bảo trì thành công", http.StatusOK)
}
