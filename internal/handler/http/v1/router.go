package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Конвейер местоположений
	locations := protected.Group("/locations")
	{
		locations.POST("", h.submitLocation)
		locations.POST("/batch", h.submitLocationBatch)
	}

	subjects := protected.Group("/subjects/:subjectId")
	{
		subjects.GET("/locations", h.locationHistory)
		subjects.GET("/alerts", h.listAlerts)
		subjects.GET("/safety-score", h.safetyScore)
		subjects.POST("/anomalies/analyze", h.analyzeSubject)
	}

	alerts := protected.Group("/alerts")
	{
		alerts.POST("/missing", h.reportMissing)
		alerts.GET("/:id", h.getAlert)
		alerts.POST("/:id/acknowledge", h.acknowledgeAlert)
		alerts.POST("/:id/resolve", h.resolveAlert)
	}

	emergencies := protected.Group("/emergencies")
	{
		emergencies.POST("/panic", h.raisePanic)
		emergencies.GET("/:id", h.getEmergency)
		emergencies.POST("/:id/dispatch", h.dispatchEmergency)
		emergencies.POST("/:id/resolve", h.resolveEmergency)
		emergencies.POST("/:id/efir", h.generateEFIR)
	}

	// Управление геозонами (CRUD)
	zones := protected.Group("/zones")
	{
		zones.POST("", h.createZone)
		zones.GET("", h.listZones)
		zones.POST("/check", h.checkPoint)
		zones.GET("/:id", h.getZone)
		zones.PUT("/:id", h.updateZone)
		zones.DELETE("/:id", h.deleteZone)
	}

	devices := protected.Group("/devices")
	{
		devices.POST("", h.registerDevice)
		devices.GET("/:deviceId", h.getDevice)
		devices.POST("/:deviceId/heartbeat", h.deviceHeartbeat)
		devices.POST("/:deviceId/sos", h.raiseSOS)
	}
}
