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

// statsYearEnd is one full non-leap year after the fixture importation date.
var statsYearEnd = day(2024, 1, 1)

func newTestStatsService(
	devices []entities.Device,
	faults []entities.FaultRepair,
	maintenances []entities.Maintenance,
	usages []entities.Usage,
	purchases []entities.PurchaseRequest,
) StatsServiceInterface {
	return NewStatsService(
		&fakeDeviceRepo{devices: devices},
		&fakeFaultRepairRepo{faults: faults},
		&fakeMaintenanceRepo{maintenances: maintenances},
		&fakeUsageRepo{usages: usages},
		&fakePurchaseRequestRepo{requests: purchases},
		zap.NewNop(),
	)
}

// One device imported 2023-01-01 with a four day maintenance and a nine day
// fault outage. Age at statsYearEnd is 365 days, downtime 13 days.
func downtimeFixture() ([]entities.Device, []entities.FaultRepair, []entities.Maintenance) {
	devices := []entities.Device{{
		ID:                     1,
		DeviceCode:             "MRI-01",
		Name:                   "MRI Scanner",
		ImportationDate:        day(2023, 1, 1),
		MaintenanceCycleMonths: 3,
	}}
	faults := []entities.FaultRepair{{
		ID:           1,
		DeviceID:     1,
		ReportedAt:   day(2023, 7, 1),
		RepairStatus: entities.DecisionRepair,
		StartDate:    null.TimeFrom(day(2023, 7, 2)),
		FinishedDate: null.TimeFrom(day(2023, 7, 10)),
		Cost:         null.Float64From(2_000_000),
	}}
	maintenances := []entities.Maintenance{{
		ID:           1,
		DeviceID:     1,
		StartDate:    day(2023, 6, 1),
		FinishedDate: null.TimeFrom(day(2023, 6, 5)),
		Cost:         null.Float64From(1_000_000),
	}}
	return devices, faults, maintenances
}

func TestAverageUptime(t *testing.T) {
	devices, faults, maintenances := downtimeFixture()
	// Imported at the measuring instant, so its age is zero and it must be
	// skipped rather than divide by zero.
	devices = append(devices, entities.Device{ID: 2, ImportationDate: statsYearEnd})
	svc := newTestStatsService(devices, faults, maintenances, nil, nil)

	got, err := svc.AverageUptime(context.Background(), statsYearEnd)

	require.NoError(t, err)
	assert.InDelta(t, (365.0-13.0)/365.0*100, got, 1e-9)
}

func TestAverageUptimeNoDevices(t *testing.T) {
	svc := newTestStatsService(nil, nil, nil, nil, nil)

	got, err := svc.AverageUptime(context.Background(), statsYearEnd)

	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMTBF(t *testing.T) {
	devices, faults, maintenances := downtimeFixture()
	// No fault history, so it contributes nothing to the mean.
	devices = append(devices, entities.Device{ID: 2, ImportationDate: day(2020, 1, 1)})
	svc := newTestStatsService(devices, faults, maintenances, nil, nil)

	got, err := svc.MTBF(context.Background(), statsYearEnd)

	require.NoError(t, err)
	// 365 days of age minus 13 days of downtime, in hours, over one fault.
	assert.InDelta(t, 8448.0, got, 1e-6)
}

func TestAverageAgeFailureRate(t *testing.T) {
	devices, faults, maintenances := downtimeFixture()
	svc := newTestStatsService(devices, faults, maintenances, nil, nil)

	got, err := svc.AverageAgeFailureRate(context.Background(), statsYearEnd)

	require.NoError(t, err)
	assert.InDelta(t, 13.0/365.0*100, got, 1e-9)
}

func TestAverageMaintenanceRatio(t *testing.T) {
	devices := []entities.Device{
		// Twelve months old with a three month cycle: four expected, one done.
		{ID: 1, ImportationDate: day(2023, 1, 1), MaintenanceCycleMonths: 3},
		// Cycle not yet due, counts as fully maintained.
		{ID: 2, ImportationDate: day(2023, 12, 20), MaintenanceCycleMonths: 6},
		// No cycle configured, excluded entirely.
		{ID: 3, ImportationDate: day(2023, 1, 1)},
	}
	maintenances := []entities.Maintenance{{ID: 1, DeviceID: 1, StartDate: day(2023, 6, 1)}}
	svc := newTestStatsService(devices, nil, maintenances, nil, nil)

	got, err := svc.AverageMaintenanceRatio(context.Background(), statsYearEnd)

	require.NoError(t, err)
	assert.InDelta(t, (25.0+100.0)/2, got, 1e-9)
}

func TestAverageRepairTime(t *testing.T) {
	_, faults, _ := downtimeFixture()
	// Still open, must not drag the mean down.
	faults = append(faults, entities.FaultRepair{
		ID:           2,
		DeviceID:     1,
		ReportedAt:   day(2023, 12, 1),
		RepairStatus: entities.DecisionRepair,
		StartDate:    null.TimeFrom(day(2023, 12, 2)),
	})
	svc := newTestStatsService(nil, faults, nil, nil, nil)

	got, err := svc.AverageRepairTime(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestAverageMaintenanceTime(t *testing.T) {
	_, _, maintenances := downtimeFixture()
	maintenances = append(maintenances, entities.Maintenance{
		ID:        2,
		DeviceID:  1,
		StartDate: day(2023, 12, 1),
	})
	svc := newTestStatsService(nil, nil, maintenances, nil, nil)

	got, err := svc.AverageMaintenanceTime(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-9)
}

func TestTotalCostMillions(t *testing.T) {
	_, faults, maintenances := downtimeFixture()
	// A record without a recorded cost contributes zero.
	maintenances = append(maintenances, entities.Maintenance{
		ID:        2,
		DeviceID:  1,
		StartDate: day(2023, 12, 1),
	})
	svc := newTestStatsService(nil, faults, maintenances, nil, nil)

	got, err := svc.TotalCostMillions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestMonthlyBreakdown(t *testing.T) {
	usages := []entities.Usage{{
		ID:        1,
		DeviceID:  1,
		StartDate: day(2023, 3, 15),
		EndDate:   day(2023, 4, 2),
	}}
	_, faults, maintenances := downtimeFixture()
	purchases := []entities.PurchaseRequest{{
		ID:            1,
		RequesterID:   1,
		DateOfRequest: day(2023, 5, 20),
	}}
	svc := newTestStatsService(nil, faults, maintenances, usages, purchases)

	got, err := svc.MonthlyBreakdown(context.Background(), 2023, statsYearEnd)

	require.NoError(t, err)
	require.Len(t, got.Usages, 12)
	assert.Equal(t, 2023, got.Year)

	// A usage spanning a month boundary counts in both months.
	assert.Equal(t, 1, got.Usages[2].Count, "March")
	assert.Equal(t, 1, got.Usages[3].Count, "April")
	assert.Equal(t, 0, got.Usages[4].Count, "May")

	assert.Equal(t, 1, got.Maintenances[5].Count, "June")
	assert.Equal(t, 1, got.FaultReports[6].Count, "July")
	assert.Equal(t, 1, got.Repairs[6].Count, "repair start and finish in the same month count once")
	assert.Equal(t, 1, got.PurchaseRequests[4].Count, "May")
}

func TestMonthlyBreakdownCurrentYearStopsAtCurrentMonth(t *testing.T) {
	svc := newTestStatsService(nil, nil, nil, nil, nil)

	got, err := svc.MonthlyBreakdown(context.Background(), 2024, day(2024, 3, 10))

	require.NoError(t, err)
	assert.Len(t, got.Usages, 3)
	assert.Len(t, got.Repairs, 3)
}

func TestDashboardStats(t *testing.T) {
	devices, faults, maintenances := downtimeFixture()
	svc := newTestStatsService(devices, faults, maintenances, nil, nil)

	got, err := svc.DashboardStats(context.Background(), statsYearEnd)

	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalDevices)
	assert.InDelta(t, (365.0-13.0)/365.0*100, got.AverageUptimePercent, 1e-9)
	assert.InDelta(t, 8448.0, got.MTBFHours, 1e-6)
	assert.Equal(t, int64(3), got.TotalCostMillions)
}

func TestDashboardStatsFailsWhole(t *testing.T) {
	svc := NewStatsService(
		&fakeDeviceRepo{err: errors.New("connection refused")},
		&fakeFaultRepairRepo{},
		&fakeMaintenanceRepo{},
		&fakeUsageRepo{},
		&fakePurchaseRequestRepo{},
		zap.NewNop(),
	)

	got, err := svc.DashboardStats(context.Background(), statsYearEnd)

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestDevicesDueForMaintenance(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	devices := []entities.Device{
		// Next thirty day cycle lands two days out.
		{ID: 1, DeviceCode: "XR-01", Name: "X-Ray", ImportationDate: now.AddDate(0, 0, -28), MaintenanceCycleMonths: 1},
		// No cycle configured.
		{ID: 2, DeviceCode: "XR-02", Name: "X-Ray", ImportationDate: now.AddDate(0, 0, -28)},
		// Next cycle is twenty nine days out, past the window.
		{ID: 3, DeviceCode: "XR-03", Name: "X-Ray", ImportationDate: now.AddDate(0, 0, -1), MaintenanceCycleMonths: 1},
		// Older device, the schedule steps past the elapsed cycle first.
		{ID: 4, DeviceCode: "CT-01", Name: "CT Scanner", ImportationDate: now.AddDate(0, 0, -115), MaintenanceCycleMonths: 2},
	}
	svc := newTestStatsService(devices, nil, nil, nil, nil)

	got, err := svc.DevicesDueForMaintenance(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Latest due date first.
	assert.Equal(t, "CT-01", got[0].DeviceCode)
	assert.Equal(t, "2024-06-20", got[0].Date)
	assert.Equal(t, "XR-01", got[1].DeviceCode)
	assert.Equal(t, "2024-06-17", got[1].Date)
}
