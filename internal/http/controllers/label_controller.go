package controllers

import (
	"net/http"
	"time"

	"repaircafe_server/internal/services"
	"repaircafe_server/pkg/barcode"
	"repaircafe_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// LabelController serves printable device labels
type LabelController struct {
	deviceService *services.DeviceService
}

// NewLabelController creates a new label controller
func NewLabelController() *LabelController {
	return &LabelController{
		deviceService: services.NewDeviceService(),
	}
}

// GetLabel returns the device together with its barcode as a PNG data URL,
// ready for the label and A4 form printers at the front desk
func (lc *LabelController) GetLabel(c *gin.Context) {
	device, err := lc.deviceService.GetDevice(c.Param("device_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	barcodeImage, err := barcode.GenerateBase64(device.DeviceID)
	if err != nil {
		colors.PrintError("Failed to render barcode for device %s: %v", device.DeviceID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Barcode rendering failed",
			Message: "Please try again later",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Label generated successfully",
		Data: gin.H{
			"device":         device,
			"barcode_image":  barcodeImage,
			"printed_at":     time.Now().Format(time.RFC3339),
			"days_in_repair": device.DaysInRepair(time.Now()),
		},
	})
}
