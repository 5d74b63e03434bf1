package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/services"
	"medequip-system/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	users, total, err := c.userService.ListUsers(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetUsers: failed to list users", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, users, "Lấy danh sách nhân viên thành công", http.StatusOK, total)
}

func (c *UserController) GetUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.userService.GetUser(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("GetUser: failed to find user", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Lấy thông tin nhân viên thành công", http.StatusOK)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.UpdateUser(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateUser: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cập nhật nhân viên thành công", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteUser: failed", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Xóa nhân viên thành công", http.StatusOK)
}

func (c *UserController) GetDepartments(ctx echo.Context) error {
	departments, err := c.userService.DistinctDepartments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, departments, "Lấy danh sách khoa phòng thành công", http.StatusOK)
}

func (c *UserController) ExportUsers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	filter.Limit = utils.MaxLimit

	users, _, err := c.userService.ListUsers(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("ExportUsers: failed to list users", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	headers := []interface{}{"Mã nhân viên", "Họ tên", "Email", "Khoa phòng", "Quản trị viên"}
	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = "x"
		}
		rows = append(rows, []interface{}{u.StaffCode, u.Name, u.Email, u.Department, admin})
	}
	return respondWithXLSX(ctx, "Nhân viên", "users", headers, rows)
}
