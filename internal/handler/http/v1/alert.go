package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety/internal/models"
)

// @Summary List alerts of a subject
// @Description List alerts of a subject, newest first, optionally filtered. Requires API key.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path string true "Subject ID"
// @Param since query string false "RFC3339 lower bound on creation time"
// @Param cause query string false "geofence, anomaly, panic, sos or missing"
// @Param status query string false "active, acknowledged or resolved"
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subjects/{subjectId}/alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	subjectID := c.Param("subjectId")
	log := h.logger.WithField("method", "listAlerts").WithField("subject_id", subjectID)

	filter := models.AlertFilter{
		Cause:  models.AlertCause(c.Query("cause")),
		Status: models.AlertStatus(c.Query("status")),
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since parameter"})
			return
		}
		filter.Since = since
	}

	alerts, err := h.alerts.ListAlerts(c.Request.Context(), subjectID, filter)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get alert by ID
// @Description Get a single alert. Requires API key.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id, ok := parseID(c, "id", "alert")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.alerts.GetAlert(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(*alert))
}

// @Summary Acknowledge an alert
// @Description Move an active alert to acknowledged. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param body body AcknowledgeRequest true "Who acknowledges"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert is not active"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/acknowledge [post]
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	id, ok := parseID(c, "id", "alert")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "acknowledgeAlert").WithField("id", id)

	var input AcknowledgeRequest
	if !h.bind(c, log, &input) {
		return
	}

	alert, err := h.alerts.Acknowledge(c.Request.Context(), id, input.AcknowledgedBy)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(*alert))
}

// @Summary Resolve an alert
// @Description Move an active or acknowledged alert to resolved. Requires API key.
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert already resolved"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id}/resolve [post]
func (h *Handler) resolveAlert(c *gin.Context) {
	id, ok := parseID(c, "id", "alert")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "resolveAlert").WithField("id", id)

	alert, err := h.alerts.Resolve(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(*alert))
}

// @Summary Report a missing person
// @Description Raise a critical missing-person alert. Every report creates a new alert. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body MissingPersonRequest true "Missing person report"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/missing [post]
func (h *Handler) reportMissing(c *gin.Context) {
	var input MissingPersonRequest
	log := h.logger.WithField("method", "reportMissing")
	if !h.bind(c, log, &input) {
		return
	}
	log = log.WithField("subject_id", input.SubjectID)

	alert, err := h.alerts.ReportMissing(
		c.Request.Context(),
		input.SubjectID,
		pointOf(input.Latitude, input.Longitude),
		timeOrZero(input.LastSeen),
		input.Description,
	)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(*alert))
}
