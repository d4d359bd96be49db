package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Create a zone
// @Description Create a geofence zone. Invalid polygons are rejected. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param zone body ZoneRequest true "Zone creation request"
// @Success 201 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid request body or geometry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [post]
func (h *Handler) createZone(c *gin.Context) {
	var input ZoneRequest
	log := h.logger.WithField("method", "createZone")
	if !h.bind(c, log, &input) {
		return
	}

	zone := DTOToZoneModel(input)
	if err := h.zones.UpsertZone(c.Request.Context(), zone); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToZoneResponse(*zone))
}

// @Summary List zones
// @Description List all indexed zones. Requires API key.
// @Tags Zones
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ZoneResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	log := h.logger.WithField("method", "listZones")

	zones, err := h.zones.ListZones(c.Request.Context())
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, modelsToZoneResponses(zones))
}

// @Summary Get zone by ID
// @Description Get a single zone. Requires API key.
// @Tags Zones
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid zone ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Zone not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id} [get]
func (h *Handler) getZone(c *gin.Context) {
	id, ok := parseID(c, "id", "zone")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getZone").WithField("id", id)

	zone, err := h.zones.GetZone(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(*zone))
}

// @Summary Replace a zone
// @Description Replace a zone's definition, keeping its creation time. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Param zone body ZoneRequest true "Zone definition"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid zone ID, request body or geometry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id} [put]
func (h *Handler) updateZone(c *gin.Context) {
	id, ok := parseID(c, "id", "zone")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateZone").WithField("id", id)

	var input ZoneRequest
	if !h.bind(c, log, &input) {
		return
	}

	zone := DTOToZoneModel(input)
	zone.ID = id
	if err := h.zones.UpsertZone(c.Request.Context(), zone); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(*zone))
}

// @Summary Delete a zone
// @Description Remove a zone from storage and the index. Requires API key.
// @Tags Zones
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid zone ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Zone not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id} [delete]
func (h *Handler) deleteZone(c *gin.Context) {
	id, ok := parseID(c, "id", "zone")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteZone").WithField("id", id)

	if err := h.zones.RemoveZone(c.Request.Context(), id); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check a point against zones
// @Description Return zones containing the point, most dangerous first. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param point body ZoneCheckRequest true "Point to check"
// @Success 200 {object} ZoneCheckResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/check [post]
func (h *Handler) checkPoint(c *gin.Context) {
	var input ZoneCheckRequest
	log := h.logger.WithField("method", "checkPoint")
	if !h.bind(c, log, &input) {
		return
	}

	zones, err := h.zones.CheckPoint(c.Request.Context(), pointOf(input.Latitude, input.Longitude), timeOrZero(input.At))
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	resp := ZoneCheckResponse{Zones: modelsToZoneResponses(zones)}
	for _, z := range zones {
		if z.Kind.Alerting() {
			resp.InRestrictedZone = true
			break
		}
	}
	c.JSON(http.StatusOK, resp)
}
