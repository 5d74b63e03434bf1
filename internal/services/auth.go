package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/internal/repositories"
	"medequip-system/pkg/config"
	apperrors "medequip-system/pkg/errors"
	"medequip-system/pkg/service"
	"medequip-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserPublicDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        *config.Config
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

func toPublicUser(user *entities.User) dto.UserPublicDTO {
	return dto.UserPublicDTO{
		ID:         user.ID,
		StaffCode:  user.StaffCode,
		Email:      user.Email,
		Name:       user.Name,
		Department: user.Department,
		IsAdmin:    user.IsAdmin,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserPublicDTO, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, payload.Email); err == nil {
		return nil, apperrors.NewHttpError(400, "Email đã được sử dụng", apperrors.ErrAlreadyExists, nil)
	}
	if _, err := s.userRepo.FindUserByStaffCode(ctx, payload.StaffCode); err == nil {
		return nil, apperrors.NewHttpError(400, "Mã nhân viên đã tồn tại", apperrors.ErrAlreadyExists, nil)
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		StaffCode:  payload.StaffCode,
		Email:      payload.Email,
		Password:   hashed,
		Name:       payload.Name,
		Department: payload.Department,
		IsAdmin:    payload.IsAdmin,
	}
	id, err := s.userRepo.CreateUser(ctx, &user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	public := toPublicUser(&user)
	return &public, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*dto.AuthResponseDTO, error) {
	sessionID := uuid.New().String()
	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.IsAdmin, sessionID)
	if err != nil {
		return nil, err
	}

	sessionKey := fmt.Sprintf("session:%s", sessionID)
	if err := s.cacheRepo.Set(ctx, sessionKey, user.ID, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return nil, err
	}

	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toPublicUser(user),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	return s.issueTokens(ctx, user)
}

// Refresh rotates the session: the presented refresh token's session is
// deleted and a fresh one is issued, so each refresh token works once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	sessionKey := fmt.Sprintf("session:%s", claims.SessionID)
	storedID, err := s.cacheRepo.Get(ctx, sessionKey)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if userID, err := strconv.ParseUint(storedID, 10, 64); err != nil || userID != claims.UserID {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.cacheRepo.Del(ctx, sessionKey); err != nil {
		s.logger.Warn("failed to delete rotated session", zap.String("sessionID", claims.SessionID), zap.Error(err))
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return err
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	return s.cacheRepo.Del(ctx, fmt.Sprintf("session:%s", claims.SessionID))
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(user.Password, payload.CurrentPassword); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	lockoutKey := fmt.Sprintf("lockout:%d", userID)
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	attempts, _ := s.cacheRepo.Incr(ctx, attemptsKey)
	if attempts == 1 {
		s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.Auth.LockoutDuration)
	}
	if attempts >= int64(s.cfg.Auth.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%d", userID)
		s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.Auth.LockoutDuration)
		s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	lockoutKey := fmt.Sprintf("lockout:%d", userID)
	s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}
