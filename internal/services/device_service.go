package services

import (
	"fmt"
	"strings"
	"time"

	"repaircafe_server/config"
	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"gorm.io/gorm"
)

// maxAllocationAttempts bounds the retry loop for the device id race: two
// concurrent intakes can read the same last id before either commits, the
// unique index rejects the loser and the allocation is re-run.
const maxAllocationAttempts = 3

// DeviceService handles the device intake and repair workflow
type DeviceService struct {
	cfg *config.AppConfig
}

// NewDeviceService creates a new device service
func NewDeviceService() *DeviceService {
	return &DeviceService{cfg: config.GetAppConfig()}
}

// ReminderThresholdDays returns the configured staleness threshold
func (ds *DeviceService) ReminderThresholdDays() int {
	return ds.cfg.ReminderThresholdDays
}

// IntakeRequest represents the front desk intake form
type IntakeRequest struct {
	CustomerName          string `json:"customer_name"`
	PhoneNumber           string `json:"phone_number"`
	EmailAddress          string `json:"email_address"`
	DeviceType            string `json:"device_type"`
	BrandModel            string `json:"brand_model"`
	ProblemDescription    string `json:"problem_description"`
	Accessories           string `json:"accessories"`
	WorkMaterialCosts     string `json:"work_material_costs"`
	InvestigationCostPaid bool   `json:"investigation_cost_paid"`
}

// validateIntake checks the required intake fields
func (ds *DeviceService) validateIntake(req *IntakeRequest) *ValidationError {
	ve := NewValidationError()
	if strings.TrimSpace(req.CustomerName) == "" {
		ve.Add("customer_name", "Customer name is required")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		ve.Add("phone_number", "Phone number is required")
	}
	if strings.TrimSpace(req.DeviceType) == "" {
		ve.Add("device_type", "Device type is required")
	}
	if strings.TrimSpace(req.BrandModel) == "" {
		ve.Add("brand_model", "Brand and model is required")
	}
	if strings.TrimSpace(req.ProblemDescription) == "" {
		ve.Add("problem_description", "Problem description is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// CreateDevice registers a new device at the front desk. The device id is
// allocated and the row inserted inside one transaction; a unique-constraint
// conflict re-runs the allocation instead of surfacing to the caller.
func (ds *DeviceService) CreateDevice(req *IntakeRequest, actingUser *models.User) (*models.Device, error) {
	if ve := ds.validateIntake(req); ve != nil {
		return nil, ve
	}

	now := time.Now()
	device := models.Device{
		IntakeDateTime:        now,
		CustomerName:          strings.TrimSpace(req.CustomerName),
		PhoneNumber:           strings.TrimSpace(req.PhoneNumber),
		EmailAddress:          strings.TrimSpace(req.EmailAddress),
		DeviceType:            strings.TrimSpace(req.DeviceType),
		BrandModel:            strings.TrimSpace(req.BrandModel),
		ProblemDescription:    strings.TrimSpace(req.ProblemDescription),
		Accessories:           req.Accessories,
		WorkMaterialCosts:     req.WorkMaterialCosts,
		InvestigationCostPaid: req.InvestigationCostPaid,
		Status:                models.StatusOpen,
	}
	if actingUser != nil {
		intakerID := actingUser.ID
		device.IntakerID = &intakerID
	}

	var lastErr error
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		device.DeviceID = ""
		err := db.GetDB().Transaction(func(tx *gorm.DB) error {
			var existingIDs []string
			prefix := fmt.Sprintf("%d-", now.Year())
			if err := tx.Model(&models.Device{}).
				Where("device_id LIKE ?", prefix+"%").
				Pluck("device_id", &existingIDs).Error; err != nil {
				return err
			}

			device.DeviceID = NextDeviceID(now.Year(), existingIDs)
			return tx.Create(&device).Error
		})
		if err == nil {
			colors.PrintSuccess("Device %s registered by %s", device.DeviceID, intakerName(actingUser))
			return &device, nil
		}

		lastErr = err
		if !isUniqueViolation(err) {
			return nil, err
		}
		colors.PrintWarning("Device id %s already taken, re-allocating (attempt %d/%d)",
			device.DeviceID, attempt, maxAllocationAttempts)
		device.ID = 0
	}

	return nil, fmt.Errorf("device id allocation failed after %d attempts: %v", maxAllocationAttempts, lastErr)
}

func intakerName(user *models.User) string {
	if user == nil {
		return "unknown"
	}
	return user.Username
}

// GetDevice fetches a device by its public device id
func (ds *DeviceService) GetDevice(deviceID string) (*models.Device, error) {
	var device models.Device
	err := db.GetDB().Preload("Intaker").Where("device_id = ?", deviceID).First(&device).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &device, nil
}

// RepairUpdateRequest represents the repair station update form
type RepairUpdateRequest struct {
	Status       models.DeviceStatus `json:"status"`
	RepairerName string              `json:"repairer_name"`
	RepairNotes  string              `json:"repair_notes"`
}

// UpdateRepairInfo applies status, repairer and notes to a device. The first
// transition into a terminal status stamps the finished timestamp; it is
// never overwritten or cleared afterwards.
func (ds *DeviceService) UpdateRepairInfo(deviceID string, req *RepairUpdateRequest) (*models.Device, error) {
	if !req.Status.IsValid() {
		ve := NewValidationError()
		ve.Add("status", fmt.Sprintf("Invalid status %q", req.Status))
		return nil, ve
	}

	device, err := ds.GetDevice(deviceID)
	if err != nil {
		return nil, err
	}

	device.Status = req.Status
	device.RepairerName = req.RepairerName
	device.RepairNotes = req.RepairNotes
	device.StampFinished(time.Now())

	// The Intaker association is preloaded for the response; omit it here
	// so a repair update only ever writes the devices table.
	if err := db.GetDB().Omit("Intaker").Save(device).Error; err != nil {
		return nil, err
	}
	return device, nil
}

// DeviceFilter holds the dashboard listing parameters
type DeviceFilter struct {
	Status    string
	IntakerID *uint
	Search    string
	Sort      string
}

// Columns devices may be sorted on. Anything outside this list falls back to
// the default order so a raw query parameter can never reach the ORDER BY.
var allowedSorts = map[string]string{
	"device_id":         "devices.device_id ASC",
	"-device_id":        "devices.device_id DESC",
	"customer_name":     "devices.customer_name ASC",
	"-customer_name":    "devices.customer_name DESC",
	"device_type":       "devices.device_type ASC",
	"-device_type":      "devices.device_type DESC",
	"status":            "devices.status ASC",
	"-status":           "devices.status DESC",
	"intake_datetime":   "devices.intake_datetime ASC",
	"-intake_datetime":  "devices.intake_datetime DESC",
	"intaker_username":  "users.username ASC",
	"-intaker_username": "users.username DESC",
}

const defaultSortOrder = "devices.intake_datetime DESC"

// SortOrder maps a requested sort key onto a whitelisted ORDER BY clause
func SortOrder(sortKey string) string {
	if order, ok := allowedSorts[sortKey]; ok {
		return order
	}
	return defaultSortOrder
}

// ListDevices returns devices matching the filter. Status and intaker match
// exactly, the search term is a case-insensitive substring OR-match across
// id, customer, phone, type and brand, and everything composes with AND.
func (ds *DeviceService) ListDevices(filter *DeviceFilter) ([]models.Device, error) {
	database := db.GetDB()

	query := database.Model(&models.Device{}).
		Select("devices.*").
		Joins("LEFT JOIN users ON users.id = devices.intaker_id").
		Preload("Intaker")

	if filter.Status != "" {
		query = query.Where("devices.status = ?", filter.Status)
	}
	if filter.IntakerID != nil {
		query = query.Where("devices.intaker_id = ?", *filter.IntakerID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			database.Where("LOWER(devices.device_id) LIKE ?", pattern).
				Or("LOWER(devices.customer_name) LIKE ?", pattern).
				Or("LOWER(devices.phone_number) LIKE ?", pattern).
				Or("LOWER(devices.device_type) LIKE ?", pattern).
				Or("LOWER(devices.brand_model) LIKE ?", pattern),
		)
	}

	var devices []models.Device
	if err := query.Order(SortOrder(filter.Sort)).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// ReminderList returns the non-terminal devices that have been in the system
// for at least the configured threshold. The terminal-status exclusion is
// pushed into the query; the day threshold depends on "now" and is applied
// here.
func (ds *DeviceService) ReminderList(now time.Time) ([]models.Device, error) {
	var candidates []models.Device
	err := db.GetDB().Preload("Intaker").
		Where("status IN ?", []models.DeviceStatus{models.StatusOpen, models.StatusInProgress}).
		Order("intake_datetime ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var overdue []models.Device
	for _, device := range candidates {
		if device.NeedsReminder(now, ds.cfg.ReminderThresholdDays) {
			overdue = append(overdue, device)
		}
	}
	return overdue, nil
}

// ReminderCount returns how many devices currently need attention
func (ds *DeviceService) ReminderCount(now time.Time) (int, error) {
	overdue, err := ds.ReminderList(now)
	if err != nil {
		return 0, err
	}
	return len(overdue), nil
}

// Intakers returns the users that have registered at least one device,
// ordered by username, for the dashboard filter dropdown.
func (ds *DeviceService) Intakers() ([]models.User, error) {
	var intakers []models.User
	err := db.GetDB().
		Where("id IN (?)", db.GetDB().Model(&models.Device{}).
			Select("DISTINCT intaker_id").
			Where("intaker_id IS NOT NULL")).
		Order("username ASC").
		Find(&intakers).Error
	if err != nil {
		return nil, err
	}
	return intakers, nil
}
