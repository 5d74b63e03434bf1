package entities

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
)

func TestFaultRepairState(t *testing.T) {
	start := null.TimeFrom(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	finish := null.TimeFrom(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		name  string
		fault FaultRepair
		want  RepairState
	}{
		{"no decision yet", FaultRepair{RepairStatus: DecisionPending}, RepairStatePending},
		{"written off", FaultRepair{RepairStatus: DecisionNoRepair}, RepairStateWillNotRepair},
		{"approved, no start date", FaultRepair{RepairStatus: DecisionRepair}, RepairStateAwaitingRepair},
		{"started", FaultRepair{RepairStatus: DecisionRepair, StartDate: start}, RepairStateRepairing},
		{"finished", FaultRepair{RepairStatus: DecisionRepair, StartDate: start, FinishedDate: finish}, RepairStateRepaired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fault.State())
		})
	}
}

func TestMaintenanceActiveAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	open := Maintenance{StartDate: now.AddDate(0, 0, -2)}
	assert.True(t, open.ActiveAt(now), "an unset finish date keeps the interval open")

	closed := Maintenance{
		StartDate:    now.AddDate(0, 0, -10),
		FinishedDate: null.TimeFrom(now.AddDate(0, 0, -2)),
	}
	assert.False(t, closed.ActiveAt(now))

	upcoming := Maintenance{StartDate: now.AddDate(0, 0, 2)}
	assert.False(t, upcoming.ActiveAt(now))
}

func TestUsageActiveAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	current := Usage{StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)}
	assert.True(t, current.ActiveAt(now))

	past := Usage{StartDate: now.AddDate(0, 0, -5), EndDate: now.AddDate(0, 0, -1)}
	assert.False(t, past.ActiveAt(now))

	future := Usage{StartDate: now.AddDate(0, 0, 1), EndDate: now.AddDate(0, 0, 5)}
	assert.False(t, future.ActiveAt(now))
}
