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

type UserServiceInterface interface {
	ListUsers(ctx context.Context, filter types.Filter) ([]dto.UserPublicDTO, uint64, error)
	GetUser(ctx context.Context, id uint64) (*dto.UserPublicDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) error
	DeleteUser(ctx context.Context, id uint64) error
	DistinctDepartments(ctx context.Context) ([]string, error)
}

type UserService struct {
	userRepo    repositories.UserRepositoryInterface
	statusCache StatusCacheInterface
	logger      *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, statusCache StatusCacheInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, statusCache: statusCache, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context, filter types.Filter) ([]dto.UserPublicDTO, uint64, error) {
	users, total, err := s.userRepo.ListUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.UserPublicDTO, 0, len(users))
	for i := range users {
		out = append(out, toPublicUser(&users[i]))
	}
	return out, total, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*dto.UserPublicDTO, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	public := toPublicUser(user)
	return &public, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) error {
	current, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return err
	}

	if payload.Email != current.Email {
		if _, err := s.userRepo.FindUserByEmail(ctx, payload.Email); err == nil {
			return apperrors.NewHttpError(400, "Email đã được sử dụng", apperrors.ErrAlreadyExists, nil)
		}
	}
	if payload.StaffCode != current.StaffCode {
		if _, err := s.userRepo.FindUserByStaffCode(ctx, payload.StaffCode); err == nil {
			return apperrors.NewHttpError(400, "Mã nhân viên đã tồn tại", apperrors.ErrAlreadyExists, nil)
		}
	}

	user := entities.User{
		StaffCode:  payload.StaffCode,
		Email:      payload.Email,
		Name:       payload.Name,
		Department: payload.Department,
		IsAdmin:    current.IsAdmin,
	}
	return s.userRepo.UpdateUser(ctx, id, &user)
}

// DeleteUser removes the user; usage, fault and request rows they own are
// removed by the cascade rules. The affected device set is not known up
// front, so every cached status is dropped.
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.statusCache.InvalidateAll()
	return nil
}

func (s *UserService) DistinctDepartments(ctx context.Context) ([]string, error) {
	return s.userRepo.DistinctDepartments(ctx)
}
