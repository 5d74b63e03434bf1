package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medequip-system/internal/entities"
)

var statusNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestResolver(faults []entities.FaultRepair, maintenances []entities.Maintenance, usages []entities.Usage) StatusResolverInterface {
	return NewStatusResolver(
		&fakeFaultRepairRepo{faults: faults},
		&fakeMaintenanceRepo{maintenances: maintenances},
		&fakeUsageRepo{usages: usages},
		zap.NewNop(),
	)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveAvailableByDefault(t *testing.T) {
	resolver := newTestResolver(nil, nil, nil)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, status)
}

func TestResolveFaulty(t *testing.T) {
	cases := []struct {
		name  string
		fault entities.FaultRepair
	}{
		{
			name: "pending decision",
			fault: entities.FaultRepair{
				DeviceID:     1,
				RepairStatus: entities.DecisionPending,
			},
		},
		{
			name: "written off",
			fault: entities.FaultRepair{
				DeviceID:     1,
				RepairStatus: entities.DecisionNoRepair,
			},
		},
		{
			name: "repair approved but not started",
			fault: entities.FaultRepair{
				DeviceID:     1,
				RepairStatus: entities.DecisionRepair,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := newTestResolver([]entities.FaultRepair{tc.fault}, nil, nil)

			status, err := resolver.Resolve(context.Background(), 1, statusNow)

			require.NoError(t, err)
			assert.Equal(t, entities.StatusFaulty, status)
		})
	}
}

func TestResolveUnderRepair(t *testing.T) {
	cases := []struct {
		name  string
		fault entities.FaultRepair
	}{
		{
			name: "open repair",
			fault: entities.FaultRepair{
				DeviceID:     1,
				RepairStatus: entities.DecisionRepair,
				StartDate:    null.TimeFrom(day(2024, 6, 10)),
			},
		},
		{
			name: "finish date still ahead",
			fault: entities.FaultRepair{
				DeviceID:     1,
				RepairStatus: entities.DecisionRepair,
				StartDate:    null.TimeFrom(day(2024, 6, 10)),
				FinishedDate: null.TimeFrom(day(2024, 6, 20)),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := newTestResolver([]entities.FaultRepair{tc.fault}, nil, nil)

			status, err := resolver.Resolve(context.Background(), 1, statusNow)

			require.NoError(t, err)
			assert.Equal(t, entities.StatusUnderRepair, status)
		})
	}
}

func TestResolveFinishedRepairDoesNotCount(t *testing.T) {
	faults := []entities.FaultRepair{{
		DeviceID:     1,
		RepairStatus: entities.DecisionRepair,
		StartDate:    null.TimeFrom(day(2024, 6, 1)),
		FinishedDate: null.TimeFrom(day(2024, 6, 10)),
	}}
	resolver := newTestResolver(faults, nil, nil)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, status)
}

func TestResolveFutureRepairDoesNotCount(t *testing.T) {
	faults := []entities.FaultRepair{{
		DeviceID:     1,
		RepairStatus: entities.DecisionRepair,
		StartDate:    null.TimeFrom(day(2024, 7, 1)),
	}}
	resolver := newTestResolver(faults, nil, nil)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, status)
}

func TestResolveUnderMaintenance(t *testing.T) {
	maintenances := []entities.Maintenance{{
		DeviceID:  1,
		StartDate: day(2024, 6, 14),
	}}
	usages := []entities.Usage{{
		DeviceID:  1,
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 30),
	}}
	resolver := newTestResolver(nil, maintenances, usages)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusUnderMaintenance, status, "maintenance outranks usage")
}

func TestResolveInUse(t *testing.T) {
	usages := []entities.Usage{{
		DeviceID:  1,
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 30),
	}}
	resolver := newTestResolver(nil, nil, usages)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusInUse, status)
}

func TestResolveFaultOutranksEverything(t *testing.T) {
	faults := []entities.FaultRepair{{
		DeviceID:     1,
		RepairStatus: entities.DecisionPending,
	}}
	maintenances := []entities.Maintenance{{
		DeviceID:  1,
		StartDate: day(2024, 6, 14),
	}}
	usages := []entities.Usage{{
		DeviceID:  1,
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 30),
	}}
	resolver := newTestResolver(faults, maintenances, usages)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusFaulty, status)
}

func TestResolveIgnoresOtherDevices(t *testing.T) {
	faults := []entities.FaultRepair{{
		DeviceID:     2,
		RepairStatus: entities.DecisionPending,
	}}
	resolver := newTestResolver(faults, nil, nil)

	status, err := resolver.Resolve(context.Background(), 1, statusNow)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusAvailable, status)
}

func TestResolveStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	resolver := NewStatusResolver(
		&fakeFaultRepairRepo{err: storeErr},
		&fakeMaintenanceRepo{},
		&fakeUsageRepo{},
		zap.NewNop(),
	)

	_, err := resolver.Resolve(context.Background(), 1, statusNow)

	assert.ErrorIs(t, err, storeErr)
}
