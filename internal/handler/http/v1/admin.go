package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get incident statistics
// @Description Count incidents per status created within the stats window. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	counts, err := h.services.Incidents.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelToStatsResponse(counts, h.cfg.StatsTimeWindowMinutes))
}

// @Summary Reload facility directory
// @Description Re-read the facility list from the database. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/facilities/refresh [post]
func (h *Handler) refreshFacilities(c *gin.Context) {
	log := h.logger.WithField("method", "refreshFacilities")

	if err := h.services.Directory.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{Facilities: h.services.Directory.Len()})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
