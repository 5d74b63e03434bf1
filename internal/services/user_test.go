package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medequip-system/internal/entities"
)

func TestDeleteUserDropsCachedStatuses(t *testing.T) {
	// A pending fault filed by user 5 marks device 1 as faulty. Deleting the
	// reporter cascades the fault away, so the cached label must not survive.
	faultRepo := &fakeFaultRepairRepo{faults: []entities.FaultRepair{
		{ID: 1, DeviceID: 1, ReporterID: 5, ReportedAt: day(2024, 6, 14), RepairStatus: entities.DecisionPending},
	}}
	resolver := NewStatusResolver(faultRepo, &fakeMaintenanceRepo{}, &fakeUsageRepo{}, zap.NewNop())
	cache := NewStatusCache(resolver, nil, zap.NewNop())

	ctx := context.Background()
	require.Equal(t, entities.StatusFaulty, cache.Get(ctx, 1))

	userRepo := &fakeUserRepo{
		users:     []entities.User{{ID: 5, Name: "Nguyễn Văn A"}},
		faultRepo: faultRepo,
	}
	svc := NewUserService(userRepo, cache, zap.NewNop())

	require.NoError(t, svc.DeleteUser(ctx, 5))
	assert.Equal(t, entities.StatusAvailable, cache.Get(ctx, 1))
}

func TestDeleteUserRepoErrorKeepsCache(t *testing.T) {
	cache := &fakeStatusCache{}
	svc := NewUserService(&fakeUserRepo{err: errors.New("boom")}, cache, zap.NewNop())

	err := svc.DeleteUser(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, cache.cleared)
}
