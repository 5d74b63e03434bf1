package utils

import (
	"context"

	"medequip-system/pkg/contextkeys"
	apperrors "medequip-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetIsAdminFromCtx(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(contextkeys.IsAdminKey).(bool)
	return ok && isAdmin
}
