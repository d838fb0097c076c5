package controllers

import (
	"net/http"
	"strconv"
	"time"

	"repaircafe_server/internal/http/middleware"
	"repaircafe_server/internal/http/realtime"
	"repaircafe_server/internal/models"
	"repaircafe_server/internal/services"
	"repaircafe_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// DeviceController handles device intake and repair HTTP requests
type DeviceController struct {
	deviceService *services.DeviceService
}

// NewDeviceController creates a new device controller
func NewDeviceController() *DeviceController {
	return &DeviceController{
		deviceService: services.NewDeviceService(),
	}
}

// ErrorResponse is the error envelope shared by the controllers
type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse is the success envelope shared by the controllers
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   int         `json:"count,omitempty"`
}

// handleServiceError translates service layer errors into HTTP responses
func handleServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Validation failed",
			Message: "Please correct the highlighted fields and try again",
			Details: ve.Fields,
		})
		return
	}

	switch err {
	case services.ErrNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Error:   "Not found",
			Message: "The requested record does not exist",
		})
	case services.ErrPermissionDenied:
		c.JSON(http.StatusForbidden, ErrorResponse{
			Success: false,
			Error:   "Forbidden",
			Message: "Admin access required",
		})
	case services.ErrSelfDeleteForbidden:
		c.JSON(http.StatusForbidden, ErrorResponse{
			Success: false,
			Error:   "Self delete forbidden",
			Message: "You cannot delete your own account!",
		})
	default:
		colors.PrintError("Unexpected service error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Internal server error",
			Message: "Please try again later",
		})
	}
}

// deviceView decorates a device with its derived repair-time fields
func (dc *DeviceController) deviceView(device *models.Device, now time.Time) gin.H {
	return gin.H{
		"device":         device,
		"days_in_repair": device.DaysInRepair(now),
		"needs_reminder": device.NeedsReminder(now, dc.deviceService.ReminderThresholdDays()),
	}
}

// CreateDevice registers a new device from the front desk intake form
func (dc *DeviceController) CreateDevice(c *gin.Context) {
	var req services.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	device, err := dc.deviceService.CreateDevice(&req, middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	realtime.BroadcastDeviceEvent("device_created", device)

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Device registered successfully! Device ID: " + device.DeviceID,
		Data:    device,
	})
}

// GetDevices returns the device list for the dashboard, honoring the
// status/intaker/search filters and the sort key
func (dc *DeviceController) GetDevices(c *gin.Context) {
	filter := services.DeviceFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}

	if intakerParam := c.Query("intaker"); intakerParam != "" {
		intakerID, err := strconv.ParseUint(intakerParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Invalid intaker filter",
				Message: "The intaker filter must be a numeric user id",
			})
			return
		}
		id := uint(intakerID)
		filter.IntakerID = &id
	}

	devices, err := dc.deviceService.ListDevices(&filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Devices retrieved successfully",
		Data:    devices,
		Count:   len(devices),
	})
}

// GetDevice returns a single device with its derived repair-time fields
func (dc *DeviceController) GetDevice(c *gin.Context) {
	device, err := dc.deviceService.GetDevice(c.Param("device_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Device retrieved successfully",
		Data:    dc.deviceView(device, time.Now()),
	})
}

// UpdateRepairInfo applies a repair station update to a device
func (dc *DeviceController) UpdateRepairInfo(c *gin.Context) {
	var req services.RepairUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	device, err := dc.deviceService.UpdateRepairInfo(c.Param("device_id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	realtime.BroadcastDeviceEvent("device_updated", device)

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Device " + device.DeviceID + " updated successfully!",
		Data:    dc.deviceView(device, time.Now()),
	})
}

// GetIntakers returns the users who have registered at least one device, for
// the dashboard filter dropdown
func (dc *DeviceController) GetIntakers(c *gin.Context) {
	intakers, err := dc.deviceService.Intakers()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	safeIntakers := make([]map[string]interface{}, 0, len(intakers))
	for i := range intakers {
		safeIntakers = append(safeIntakers, intakers[i].ToSafeUser())
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Intakers retrieved successfully",
		Data:    safeIntakers,
		Count:   len(safeIntakers),
	})
}

// GetReminders returns the devices that have been sitting in a non-terminal
// status past the configured threshold
func (dc *DeviceController) GetReminders(c *gin.Context) {
	devices, err := dc.deviceService.ReminderList(time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Reminder list retrieved successfully",
		"data":           devices,
		"count":          len(devices),
		"threshold_days": dc.deviceService.ReminderThresholdDays(),
	})
}
