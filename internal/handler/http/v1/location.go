package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety/internal/models"
)

const (
	defaultHistoryWindow = 24 * time.Hour
	maxAnalyzeWindow     = 30 * 24 * time.Hour
)

// @Summary Submit a location report
// @Description Store a location report, check it against zones and return any newly raised alerts. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body LocationReportRequest true "Location report"
// @Success 200 {object} EvaluateResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /locations [post]
func (h *Handler) submitLocation(c *gin.Context) {
	var input LocationReportRequest
	log := h.logger.WithField("method", "submitLocation")
	if !h.bind(c, log, &input) {
		return
	}
	log = log.WithField("subject_id", input.SubjectID)

	alerts, err := h.locations.EvaluateLocation(c.Request.Context(), DTOToLocationReport(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, EvaluateResponse{Alerts: ModelsToAlertResponses(alerts)})
}

// @Summary Submit a batch of location reports
// @Description Evaluate many reports at once. Reports of one subject are processed in timestamp order. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch body LocationBatchRequest true "Location reports"
// @Success 200 {object} EvaluateResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /locations/batch [post]
func (h *Handler) submitLocationBatch(c *gin.Context) {
	var input LocationBatchRequest
	log := h.logger.WithField("method", "submitLocationBatch")
	if !h.bind(c, log, &input) {
		return
	}

	reports := make([]models.LocationReport, 0, len(input.Reports))
	for _, r := range input.Reports {
		reports = append(reports, *DTOToLocationReport(r))
	}

	alerts, err := h.locations.EvaluateBatch(c.Request.Context(), reports)
	if err != nil {
		h.writeError(c, log.WithField("reports", len(reports)), err)
		return
	}
	c.JSON(http.StatusOK, EvaluateResponse{Alerts: ModelsToAlertResponses(alerts)})
}

// @Summary Get location history
// @Description List stored location reports of a subject, oldest first. Requires API key.
// @Tags Location
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path string true "Subject ID"
// @Param since query string false "RFC3339 lower bound, defaults to 24h ago"
// @Success 200 {array} LocationReportResponse
// @Failure 400 {object} map[string]string "Invalid since parameter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subjects/{subjectId}/locations [get]
func (h *Handler) locationHistory(c *gin.Context) {
	subjectID := c.Param("subjectId")
	log := h.logger.WithField("method", "locationHistory").WithField("subject_id", subjectID)

	since := time.Now().UTC().Add(-defaultHistoryWindow)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since parameter"})
			return
		}
		since = parsed
	}

	reports, err := h.locations.History(c.Request.Context(), subjectID, since)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	resp := make([]LocationReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, ModelToLocationReportResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Analyze a subject for anomalies
// @Description Run anomaly detection over the subject's recent reports and raise alerts. Requires API key.
// @Tags Location
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path string true "Subject ID"
// @Param window query string false "Look-back window as Go duration, e.g. 24h"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} map[string]string "Invalid window parameter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subjects/{subjectId}/anomalies/analyze [post]
func (h *Handler) analyzeSubject(c *gin.Context) {
	subjectID := c.Param("subjectId")
	log := h.logger.WithField("method", "analyzeSubject").WithField("subject_id", subjectID)

	var window time.Duration
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 || parsed > maxAnalyzeWindow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window parameter"})
			return
		}
		window = parsed
	}

	anomalies, alerts, err := h.locations.AnalyzeSubject(c.Request.Context(), subjectID, window)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	resp := AnalyzeResponse{
		Anomalies: make([]AnomalyResponse, 0, len(anomalies)),
		Alerts:    ModelsToAlertResponses(alerts),
	}
	for _, a := range anomalies {
		resp.Anomalies = append(resp.Anomalies, ModelToAnomalyResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get safety score
// @Description Compute the subject's 0..100 safety score with its factors and history. Requires API key.
// @Tags Score
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} SafetyScoreResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subjects/{subjectId}/safety-score [get]
func (h *Handler) safetyScore(c *gin.Context) {
	subjectID := c.Param("subjectId")
	log := h.logger.WithField("method", "safetyScore").WithField("subject_id", subjectID)

	score, err := h.scores.ComputeSafetyScore(c.Request.Context(), subjectID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSafetyScoreResponse(*score))
}
