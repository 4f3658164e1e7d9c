package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errGetReadings = "failed to load readings"

// @Summary      Latest device readings
// @Tags         readings
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/readings/latest [get]
// @Security     BearerAuth
func (h *Handler) latestReadings(c *gin.Context) {
	readings, err := h.services.Monitoring.LatestReadings(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetReadings, "readings_latest_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}
