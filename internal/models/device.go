package models

import (
	"time"
)

// DeviceStatus represents the repair status enum
type DeviceStatus string

const (
	StatusOpen             DeviceStatus = "open"
	StatusInProgress       DeviceStatus = "in_progress"
	StatusRepaired         DeviceStatus = "repaired"
	StatusNotRepaired      DeviceStatus = "not_repaired"
	StatusFreeForRecycling DeviceStatus = "free_for_recycling"
)

// AllStatuses lists every valid status value
var AllStatuses = []DeviceStatus{
	StatusOpen,
	StatusInProgress,
	StatusRepaired,
	StatusNotRepaired,
	StatusFreeForRecycling,
}

// IsValid reports whether the status is one of the known values
func (s DeviceStatus) IsValid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further repair work is expected
func (s DeviceStatus) IsTerminal() bool {
	return s == StatusRepaired || s == StatusNotRepaired || s == StatusFreeForRecycling
}

// Device represents a device brought in for repair
type Device struct {
	ID uint `json:"id" gorm:"primarykey"`

	// Assigned once at intake (e.g. 2025-0042), never regenerated
	DeviceID string `json:"device_id" gorm:"size:20;uniqueIndex;not null"`

	// Intake information
	IntakeDateTime time.Time `json:"intake_datetime" gorm:"not null"`
	IntakerID      *uint     `json:"intaker_id" gorm:"index"`
	Intaker        *User     `json:"intaker,omitempty" gorm:"foreignKey:IntakerID;constraint:OnDelete:SET NULL"`

	// Customer information
	CustomerName string `json:"customer_name" gorm:"size:200;not null" validate:"required"`
	PhoneNumber  string `json:"phone_number" gorm:"size:20;not null" validate:"required"`
	EmailAddress string `json:"email_address" gorm:"size:254"`

	// Device information
	DeviceType            string `json:"device_type" gorm:"size:100;not null" validate:"required"`
	BrandModel            string `json:"brand_model" gorm:"size:200;not null" validate:"required"`
	ProblemDescription    string `json:"problem_description" gorm:"type:text;not null" validate:"required"`
	Accessories           string `json:"accessories" gorm:"type:text"`
	WorkMaterialCosts     string `json:"work_material_costs" gorm:"type:text"`
	InvestigationCostPaid bool   `json:"investigation_cost_paid" gorm:"not null;default:false"`

	// Repair information
	Status       DeviceStatus `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	RepairerName string       `json:"repairer_name" gorm:"size:200"`
	RepairNotes  string       `json:"repair_notes" gorm:"type:text"`

	// Stamped on the first transition into a terminal status. Never cleared,
	// even if the status later moves back to open/in_progress.
	DateFinished *time.Time `json:"date_finished"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Device model
func (Device) TableName() string {
	return "devices"
}

// StampFinished sets the finished timestamp on the first terminal transition
func (d *Device) StampFinished(now time.Time) {
	if d.Status.IsTerminal() && d.DateFinished == nil {
		d.DateFinished = &now
	}
}

// DaysInRepair returns the whole days the device has spent in the system,
// counted up to DateFinished when set, otherwise up to now.
func (d *Device) DaysInRepair(now time.Time) int {
	end := now
	if d.DateFinished != nil {
		end = *d.DateFinished
	}
	return int(end.Sub(d.IntakeDateTime).Hours() / 24)
}

// NeedsReminder reports whether the device has been sitting in a non-terminal
// status for at least thresholdDays whole days.
func (d *Device) NeedsReminder(now time.Time, thresholdDays int) bool {
	if d.Status.IsTerminal() {
		return false
	}
	return d.DaysInRepair(now) >= thresholdDays
}
