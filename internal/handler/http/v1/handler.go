package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - набор сервисов, которые обслуживает HTTP-слой
type Services struct {
	Alerts    service.AlertService
	Locations service.LocationService
	Scores    service.ScoreService
	Zones     service.ZoneService
	Devices   service.DeviceService
}

type Handler struct {
	alerts    service.AlertService
	locations service.LocationService
	scores    service.ScoreService
	zones     service.ZoneService
	devices   service.DeviceService
	logger    *logrus.Logger
	validate  *validator.Validate
	cfg       *config.Config
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		alerts:    services.Alerts,
		locations: services.Locations,
		scores:    services.Scores,
		zones:     services.Zones,
		devices:   services.Devices,
		logger:    logger,
		validate:  validator.New(),
		cfg:       cfg,
	}
}

// bind читает тело запроса и валидирует его; при ошибке ответ уже отправлен
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// parseID разбирает UUID из параметра пути
func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError переводит доменную ошибку в HTTP-ответ
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrInvalidGeometry):
		log.WithError(err).Warn("Rejected request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrDuplicateSuppressed):
		log.WithError(err).Warn("Conflicting request")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStoreUnavailable):
		log.WithError(err).Error("Storage unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		log.WithError(err).Error("Request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
