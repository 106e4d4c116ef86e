package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// DeviceHandler handles network device HTTP endpoints.
type DeviceHandler struct {
	deviceService *service.DeviceService
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(deviceService *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// ListDevices handles GET /v1/devices
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	devices, err := h.deviceService.ListDevices()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve devices")
		return
	}

	utils.Success(c, 200, "Devices retrieved", gin.H{
		"devices": devices,
		"total":   len(devices),
	})
}

// GetDevice handles GET /v1/devices/:id
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid device ID")
		return
	}

	device, err := h.deviceService.GetDevice(id)
	if err != nil {
		if errors.Is(err, utils.ErrDeviceNotFound) {
			utils.Error(c, 404, "DEVICE_NOT_FOUND", "Device not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve device")
		return
	}
	if device == nil {
		utils.Error(c, 404, "DEVICE_NOT_FOUND", "Device not found")
		return
	}

	utils.Success(c, 200, "Device retrieved", device)
}

// CreateDevice handles POST /v1/devices
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var req service.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	device, err := h.deviceService.CreateDevice(&req, actorFrom(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create device")
		return
	}

	utils.Success(c, 201, "Device created successfully", device)
}

// UpdateDevice handles PUT /v1/devices/:id
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid device ID")
		return
	}

	var req service.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	device, err := h.deviceService.UpdateDevice(id, &req, actorFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrDeviceNotFound) {
			utils.Error(c, 404, "DEVICE_NOT_FOUND", "Device not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update device")
		return
	}

	utils.Success(c, 200, "Device updated successfully", device)
}

// SetDeviceStatusRequest represents the request to overwrite a device status.
type SetDeviceStatusRequest struct {
	Status models.DeviceStatus `json:"status" binding:"required"`
}

// SetDeviceStatus handles PATCH /v1/devices/:id/status
func (h *DeviceHandler) SetDeviceStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid device ID")
		return
	}

	var req SetDeviceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	device, err := h.deviceService.SetDeviceStatus(id, req.Status, actorFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrDeviceNotFound) {
			utils.Error(c, 404, "DEVICE_NOT_FOUND", "Device not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update device status")
		return
	}

	utils.Success(c, 200, "Device status updated", device)
}

// DeleteDevice handles DELETE /v1/devices/:id
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid device ID")
		return
	}

	if err := h.deviceService.DeleteDevice(id, actorFrom(c)); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete device")
		return
	}

	utils.Success(c, 200, "Device deleted successfully", nil)
}
