package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medequip-system/internal/dto"
	"medequip-system/internal/entities"
	"medequip-system/pkg/types"
)

type fakeStatusCache struct {
	statuses    map[uint64]entities.DeviceStatus
	invalidated []uint64
	cleared     bool
}

func (c *fakeStatusCache) Get(ctx context.Context, deviceID uint64) entities.DeviceStatus {
	if status, ok := c.statuses[deviceID]; ok {
		return status
	}
	return entities.StatusAvailable
}

func (c *fakeStatusCache) Invalidate(deviceID uint64) {
	c.invalidated = append(c.invalidated, deviceID)
}

func (c *fakeStatusCache) InvalidateAll() { c.cleared = true }

func listFixtureDevices() []entities.Device {
	return []entities.Device{
		{ID: 1, DeviceCode: "MRI-01", Name: "MRI Scanner"},
		{ID: 2, DeviceCode: "XR-01", Name: "X-Ray"},
		{ID: 3, DeviceCode: "CT-01", Name: "CT Scanner"},
	}
}

func TestListDevicesAttachesStatus(t *testing.T) {
	cache := &fakeStatusCache{statuses: map[uint64]entities.DeviceStatus{
		1: entities.StatusInUse,
		2: entities.StatusFaulty,
	}}
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, cache, zap.NewNop())

	rows, total, err := svc.ListDevices(context.Background(), types.Filter{})

	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Equal(t, entities.StatusInUse, rows[0].UsageStatus)
	assert.Equal(t, entities.StatusFaulty, rows[1].UsageStatus)
	assert.Equal(t, entities.StatusAvailable, rows[2].UsageStatus)
}

func TestListDevicesStatusFilter(t *testing.T) {
	cache := &fakeStatusCache{statuses: map[uint64]entities.DeviceStatus{
		1: entities.StatusInUse,
		2: entities.StatusFaulty,
	}}
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, cache, zap.NewNop())

	filter := types.Filter{Filter: map[string]interface{}{
		"status": string(entities.StatusFaulty) + "," + string(entities.StatusAvailable),
	}}
	rows, total, err := svc.ListDevices(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "XR-01", rows[0].DeviceCode)
	assert.Equal(t, "CT-01", rows[1].DeviceCode)
}

func TestListDevicesPaginatesAfterFiltering(t *testing.T) {
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, &fakeStatusCache{}, zap.NewNop())

	filter := types.Filter{WithPagination: true, Limit: 2, Offset: 2}
	rows, total, err := svc.ListDevices(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, uint64(3), total, "total reflects the filtered set, not the page")
	require.Len(t, rows, 1)
	assert.Equal(t, "CT-01", rows[0].DeviceCode)
}

func TestListDevicesOffsetPastEnd(t *testing.T) {
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, &fakeStatusCache{}, zap.NewNop())

	filter := types.Filter{WithPagination: true, Limit: 10, Offset: 10}
	rows, total, err := svc.ListDevices(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Empty(t, rows)
}

func TestCreateDeviceRejectsDuplicateCode(t *testing.T) {
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, &fakeStatusCache{}, zap.NewNop())

	_, err := svc.CreateDevice(context.Background(), dto.CreateDeviceDTO{
		DeviceCode:      "MRI-01",
		ImportationDate: "2024-01-01",
	})

	assert.Error(t, err)
}

func TestCreateDeviceRejectsBadImportationDate(t *testing.T) {
	svc := NewDeviceService(&fakeDeviceRepo{}, &fakeStatusCache{}, zap.NewNop())

	_, err := svc.CreateDevice(context.Background(), dto.CreateDeviceDTO{
		DeviceCode:      "US-01",
		ImportationDate: "01/06/2024",
	})

	assert.Error(t, err)
}

func TestUpdateDeviceInvalidatesStatus(t *testing.T) {
	cache := &fakeStatusCache{}
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, cache, zap.NewNop())

	err := svc.UpdateDevice(context.Background(), 1, dto.UpdateDeviceDTO{
		DeviceCode:      "MRI-01",
		ImportationDate: "2024-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, cache.invalidated)
}

func TestDeleteDeviceInvalidatesStatus(t *testing.T) {
	cache := &fakeStatusCache{}
	svc := NewDeviceService(&fakeDeviceRepo{devices: listFixtureDevices()}, cache, zap.NewNop())

	err := svc.DeleteDevice(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, cache.invalidated)
}
