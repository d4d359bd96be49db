package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/models"
)

// @Summary Press the panic button
// @Description Open an emergency and a critical alert for the subject. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body PanicRequest true "Panic request"
// @Success 201 {object} EmergencyCreatedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/panic [post]
func (h *Handler) raisePanic(c *gin.Context) {
	var input PanicRequest
	log := h.logger.WithField("method", "raisePanic")
	if !h.bind(c, log, &input) {
		return
	}
	log = log.WithField("subject_id", input.SubjectID)

	emergency, alert, err := h.alerts.RaisePanic(
		c.Request.Context(),
		input.SubjectID,
		pointOf(input.Latitude, input.Longitude),
		models.EmergencyKind(input.Kind),
	)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, EmergencyCreatedResponse{
		Emergency: ModelToEmergencyResponse(*emergency),
		Alert:     ModelToAlertResponse(*alert),
	})
}

// @Summary Device SOS
// @Description Record an SOS pressed on a wearable, opening an emergency and a critical alert. Requires API key.
// @Tags Devices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param deviceId path string true "Device ID"
// @Param body body SOSRequest true "SOS signal"
// @Success 201 {object} EmergencyCreatedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Device not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /devices/{deviceId}/sos [post]
func (h *Handler) raiseSOS(c *gin.Context) {
	deviceID := c.Param("deviceId")
	log := h.logger.WithField("method", "raiseSOS").WithField("device_id", deviceID)

	var input SOSRequest
	if !h.bind(c, log, &input) {
		return
	}

	emergency, alert, err := h.alerts.RaiseSOS(
		c.Request.Context(),
		deviceID,
		input.SubjectID,
		pointOf(input.Latitude, input.Longitude),
		dtoToHealth(input.Health),
	)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, EmergencyCreatedResponse{
		Emergency: ModelToEmergencyResponse(*emergency),
		Alert:     ModelToAlertResponse(*alert),
	})
}

// @Summary Get emergency by ID
// @Description Get a single emergency. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getEmergency(c *gin.Context) {
	id, ok := parseID(c, "id", "emergency")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getEmergency").WithField("id", id)

	emergency, err := h.alerts.GetEmergency(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(*emergency))
}

// @Summary Dispatch responders
// @Description Move an active emergency to dispatched. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 409 {object} map[string]string "Emergency is not active"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/dispatch [post]
func (h *Handler) dispatchEmergency(c *gin.Context) {
	h.emergencyAction(c, "dispatchEmergency", h.alerts.Dispatch)
}

// @Summary Resolve an emergency
// @Description Move an active or dispatched emergency to resolved. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 409 {object} map[string]string "Emergency already resolved"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/resolve [post]
func (h *Handler) resolveEmergency(c *gin.Context) {
	h.emergencyAction(c, "resolveEmergency", h.alerts.ResolveEmergency)
}

// @Summary Generate an e-FIR number
// @Description Assign an electronic First Information Report number. Repeated calls return the same number. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 400 {object} map[string]string "Invalid emergency ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/efir [post]
func (h *Handler) generateEFIR(c *gin.Context) {
	h.emergencyAction(c, "generateEFIR", h.alerts.GenerateEFIR)
}

// emergencyAction выполняет действие над ЧС по ID из пути
func (h *Handler) emergencyAction(c *gin.Context, method string, action func(context.Context, uuid.UUID) (*models.Emergency, error)) {
	id, ok := parseID(c, "id", "emergency")
	if !ok {
		return
	}
	log := h.logger.WithField("method", method).WithField("id", id)

	emergency, err := action(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyResponse(*emergency))
}
