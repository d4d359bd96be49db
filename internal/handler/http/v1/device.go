package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety/internal/models"
)

// @Summary Register a device
// @Description Register a wearable or tag for a subject. Requires API key.
// @Tags Devices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param device body DeviceRegisterRequest true "Device registration"
// @Success 201 {object} DeviceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Device already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /devices [post]
func (h *Handler) registerDevice(c *gin.Context) {
	var input DeviceRegisterRequest
	log := h.logger.WithField("method", "registerDevice")
	if !h.bind(c, log, &input) {
		return
	}

	device := DTOToDeviceModel(input)
	if err := h.devices.RegisterDevice(c.Request.Context(), device); err != nil {
		h.writeError(c, log.WithField("device_id", input.DeviceID), err)
		return
	}
	c.JSON(http.StatusCreated, ModelToDeviceResponse(*device))
}

// @Summary Get device
// @Description Get a registered device. Requires API key.
// @Tags Devices
// @Produce json
// @Security ApiKeyAuth
// @Param deviceId path string true "Device ID"
// @Success 200 {object} DeviceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Device not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /devices/{deviceId} [get]
func (h *Handler) getDevice(c *gin.Context) {
	deviceID := c.Param("deviceId")
	log := h.logger.WithField("method", "getDevice").WithField("device_id", deviceID)

	device, err := h.devices.GetDevice(c.Request.Context(), deviceID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDeviceResponse(*device))
}

// @Summary Device heartbeat
// @Description Update battery, position and health readings of a device. Requires API key.
// @Tags Devices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param deviceId path string true "Device ID"
// @Param body body HeartbeatRequest true "Heartbeat"
// @Success 200 {object} DeviceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Device not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /devices/{deviceId}/heartbeat [post]
func (h *Handler) deviceHeartbeat(c *gin.Context) {
	deviceID := c.Param("deviceId")
	log := h.logger.WithField("method", "deviceHeartbeat").WithField("device_id", deviceID)

	var input HeartbeatRequest
	if !h.bind(c, log, &input) {
		return
	}

	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be sent together"})
		return
	}
	var point *models.Point
	if input.Latitude != nil {
		p := pointOf(*input.Latitude, *input.Longitude)
		point = &p
	}

	device, err := h.devices.Heartbeat(c.Request.Context(), deviceID, input.BatteryLevel, point, dtoToHealth(input.Health))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDeviceResponse(*device))
}
