package controllers

import (
	"net/http"
	"time"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"
	"repaircafe_server/internal/services"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the workshop overview numbers
type DashboardController struct {
	deviceService *services.DeviceService
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController() *DashboardController {
	return &DashboardController{
		deviceService: services.NewDeviceService(),
	}
}

// DashboardStatsResponse holds the dashboard counters
type DashboardStatsResponse struct {
	TotalDevices      int64 `json:"total_devices"`
	OpenDevices       int64 `json:"open_devices"`
	InProgressDevices int64 `json:"in_progress_devices"`
	FinishedDevices   int64 `json:"finished_devices"`
	TotalUsers        int64 `json:"total_users"`
	ReminderCount     int   `json:"reminder_count"`
	ThresholdDays     int   `json:"reminder_threshold_days"`
}

// GetDashboardStats returns the workshop counters for the dashboard header
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	var stats DashboardStatsResponse
	gormDB := db.GetDB()

	if err := gormDB.Model(&models.Device{}).Count(&stats.TotalDevices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get total devices"})
		return
	}

	if err := gormDB.Model(&models.Device{}).Where("status = ?", models.StatusOpen).Count(&stats.OpenDevices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get open devices"})
		return
	}

	if err := gormDB.Model(&models.Device{}).Where("status = ?", models.StatusInProgress).Count(&stats.InProgressDevices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get in-progress devices"})
		return
	}

	if err := gormDB.Model(&models.Device{}).Where("date_finished IS NOT NULL").Count(&stats.FinishedDevices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get finished devices"})
		return
	}

	if err := gormDB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get total users"})
		return
	}

	reminderCount, err := dc.deviceService.ReminderCount(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reminder count"})
		return
	}
	stats.ReminderCount = reminderCount
	stats.ThresholdDays = dc.deviceService.ReminderThresholdDays()

	c.JSON(http.StatusOK, stats)
}
