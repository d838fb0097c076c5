package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusOpen.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusRepaired.IsTerminal())
	assert.True(t, StatusNotRepaired.IsTerminal())
	assert.True(t, StatusFreeForRecycling.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.IsValid())
	}
	assert.False(t, DeviceStatus("broken").IsValid())
	assert.False(t, DeviceStatus("").IsValid())
}

func TestDaysInRepair(t *testing.T) {
	intake := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		device Device
		now    time.Time
		want   int
	}{
		{
			name:   "same day",
			device: Device{IntakeDateTime: intake, Status: StatusOpen},
			now:    intake.Add(5 * time.Hour),
			want:   0,
		},
		{
			name:   "partial days truncate toward zero",
			device: Device{IntakeDateTime: intake, Status: StatusOpen},
			now:    intake.Add(3*24*time.Hour + 23*time.Hour),
			want:   3,
		},
		{
			name: "finished devices count up to date_finished, not now",
			device: func() Device {
				finished := intake.Add(2 * 24 * time.Hour)
				return Device{IntakeDateTime: intake, Status: StatusRepaired, DateFinished: &finished}
			}(),
			now:  intake.Add(100 * 24 * time.Hour),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.device.DaysInRepair(tt.now))
		})
	}
}

func TestNeedsReminder(t *testing.T) {
	const threshold = 14
	intake := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("terminal statuses never need reminders", func(t *testing.T) {
		for _, status := range []DeviceStatus{StatusRepaired, StatusNotRepaired, StatusFreeForRecycling} {
			device := Device{IntakeDateTime: intake, Status: status}
			assert.False(t, device.NeedsReminder(intake, threshold), "status %s at 0 days", status)
			assert.False(t, device.NeedsReminder(intake.Add(1000*24*time.Hour), threshold), "status %s at 1000 days", status)
		}
	})

	t.Run("exactly at the threshold", func(t *testing.T) {
		device := Device{IntakeDateTime: intake, Status: StatusOpen}
		assert.True(t, device.NeedsReminder(intake.Add(threshold*24*time.Hour), threshold))
	})

	t.Run("one day under the threshold", func(t *testing.T) {
		device := Device{IntakeDateTime: intake, Status: StatusInProgress}
		assert.False(t, device.NeedsReminder(intake.Add((threshold-1)*24*time.Hour), threshold))
	})
}

func TestStampFinishedSetOnce(t *testing.T) {
	intake := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	device := Device{IntakeDateTime: intake, Status: StatusOpen}

	// Non-terminal statuses never stamp
	device.StampFinished(intake.Add(24 * time.Hour))
	assert.Nil(t, device.DateFinished)

	// First terminal transition stamps
	first := intake.Add(3 * 24 * time.Hour)
	device.Status = StatusRepaired
	device.StampFinished(first)
	require.NotNil(t, device.DateFinished)
	assert.Equal(t, first, *device.DateFinished)

	// Reverting and finishing again keeps the original timestamp
	device.Status = StatusInProgress
	device.StampFinished(intake.Add(5 * 24 * time.Hour))
	assert.Equal(t, first, *device.DateFinished)

	device.Status = StatusRepaired
	device.StampFinished(intake.Add(9 * 24 * time.Hour))
	assert.Equal(t, first, *device.DateFinished)
}
