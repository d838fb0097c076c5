package services

import (
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeValidation(t *testing.T) {
	service := NewDeviceService()

	_, err := service.CreateDevice(&IntakeRequest{}, nil)
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	for _, field := range []string{
		"customer_name",
		"phone_number",
		"device_type",
		"brand_model",
		"problem_description",
	} {
		assert.Contains(t, ve.Fields, field)
	}

	// Whitespace-only values are rejected too
	_, err = service.CreateDevice(&IntakeRequest{
		CustomerName:       "   ",
		PhoneNumber:        "0612345678",
		DeviceType:         "Laptop",
		BrandModel:         "Lenovo X220",
		ProblemDescription: "Does not boot",
	}, nil)
	require.Error(t, err)
	ve, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "customer_name")
	assert.NotContains(t, ve.Fields, "phone_number")
}

func intakeFixture(customer string) *IntakeRequest {
	return &IntakeRequest{
		CustomerName:       customer,
		PhoneNumber:        "0612345678",
		EmailAddress:       "customer@example.com",
		DeviceType:         "Laptop",
		BrandModel:         "Lenovo ThinkPad X220",
		ProblemDescription: "Does not power on",
		Accessories:        "Charger",
	}
}

func cleanupDevice(t *testing.T, device *models.Device) {
	t.Helper()
	if device == nil {
		return
	}
	if err := db.GetDB().Delete(device).Error; err != nil {
		t.Logf("Warning: failed to clean up test device %s: %v", device.DeviceID, err)
	}
}

func TestDeviceWorkflow(t *testing.T) {
	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	defer db.Close()

	service := NewDeviceService()
	intaker := adminFixture(t)

	device, err := service.CreateDevice(intakeFixture("Workflow Test Customer"), intaker)
	require.NoError(t, err)
	defer cleanupDevice(t, device)
	require.NotNil(t, device.IntakerID)
	assert.Equal(t, intaker.ID, *device.IntakerID)

	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{4,}$`), device.DeviceID)
	assert.Equal(t, models.StatusOpen, device.Status)
	assert.Nil(t, device.DateFinished)
	assert.False(t, device.IntakeDateTime.IsZero())

	// Sequential creates get distinct, increasing ids
	second, err := service.CreateDevice(intakeFixture("Workflow Test Customer 2"), nil)
	require.NoError(t, err)
	defer cleanupDevice(t, second)
	assert.NotEqual(t, device.DeviceID, second.DeviceID)
	assert.Greater(t, second.DeviceID, device.DeviceID)

	// Lookup by public id
	fetched, err := service.GetDevice(device.DeviceID)
	require.NoError(t, err)
	assert.Equal(t, device.ID, fetched.ID)

	_, err = service.GetDevice("1999-0000")
	assert.Equal(t, ErrNotFound, err)

	// Terminal transition stamps date_finished exactly once
	updated, err := service.UpdateRepairInfo(device.DeviceID, &RepairUpdateRequest{
		Status:       models.StatusRepaired,
		RepairerName: "Volunteer Vera",
		RepairNotes:  "Replaced the power supply",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DateFinished)
	firstFinished := *updated.DateFinished

	updated, err = service.UpdateRepairInfo(device.DeviceID, &RepairUpdateRequest{
		Status: models.StatusInProgress,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DateFinished, "date_finished is never cleared")

	updated, err = service.UpdateRepairInfo(device.DeviceID, &RepairUpdateRequest{
		Status: models.StatusRepaired,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, firstFinished, *updated.DateFinished, time.Millisecond)

	// Unknown status is rejected
	_, err = service.UpdateRepairInfo(device.DeviceID, &RepairUpdateRequest{
		Status: models.DeviceStatus("exploded"),
	})
	_, ok := AsValidationError(err)
	assert.True(t, ok)

	// Repair updates only touch the devices table; the intaker row and the
	// device's link to it stay as they were
	require.NotNil(t, updated.IntakerID)
	assert.Equal(t, intaker.ID, *updated.IntakerID)
	var refreshed models.User
	require.NoError(t, db.GetDB().First(&refreshed, intaker.ID).Error)
	assert.Equal(t, intaker.Username, refreshed.Username)
	assert.WithinDuration(t, intaker.UpdatedAt, refreshed.UpdatedAt, time.Millisecond)
}

func TestConcurrentIntakeAllocatesDistinctIDs(t *testing.T) {
	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	defer db.Close()

	service := NewDeviceService()

	const n = 5
	var wg sync.WaitGroup
	results := make([]*models.Device, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.CreateDevice(intakeFixture(fmt.Sprintf("Concurrent Customer %d", i)), nil)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "create %d failed", i)
		defer cleanupDevice(t, results[i])
		assert.False(t, seen[results[i].DeviceID], "duplicate device id %s", results[i].DeviceID)
		seen[results[i].DeviceID] = true
	}
}

func TestListDevicesFilters(t *testing.T) {
	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	defer db.Close()

	service := NewDeviceService()

	needle, err := service.CreateDevice(&IntakeRequest{
		CustomerName:       "Zelda Zoekterm",
		PhoneNumber:        "0687654321",
		DeviceType:         "Sewing machine",
		BrandModel:         "Singer 201",
		ProblemDescription: "Jammed bobbin",
	}, nil)
	require.NoError(t, err)
	defer cleanupDevice(t, needle)

	// Search is a case-insensitive substring match
	devices, err := service.ListDevices(&DeviceFilter{Search: "zelda zoek"})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, needle.DeviceID, devices[0].DeviceID)

	// Search by device id fragment
	devices, err = service.ListDevices(&DeviceFilter{Search: needle.DeviceID})
	require.NoError(t, err)
	require.Len(t, devices, 1)

	// Status filter composes with search via AND
	devices, err = service.ListDevices(&DeviceFilter{Search: "zelda zoek", Status: string(models.StatusRepaired)})
	require.NoError(t, err)
	assert.Empty(t, devices)

	devices, err = service.ListDevices(&DeviceFilter{Search: "zelda zoek", Status: string(models.StatusOpen)})
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	// A hostile sort key falls back to the default order without erroring
	_, err = service.ListDevices(&DeviceFilter{Sort: "; DROP TABLE devices"})
	assert.NoError(t, err)
}
