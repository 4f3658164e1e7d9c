package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"power_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errHoursInvalid   = "invalid 'hours'; must be a positive number"
	errDeviceMissing  = "missing 'device' query parameter"
	errEstimateFailed = "failed to estimate cost"
)

// @Summary      Estimate running cost
// @Description  wattage/1000 × hours × price per kWh for one device type.
// @Tags         cost
// @Produce      json
// @Param        device  query  string  true   "Device type"  Enums(refrigerator,air_conditioner,washing_machine,television,lighting,water_heater)
// @Param        hours   query  number  false  "Usage hours (default 1)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/cost/estimate [get]
// @Security     BearerAuth
func (h *Handler) estimateCost(c *gin.Context) {
	device := c.Query("device")
	if device == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errDeviceMissing})
		return
	}

	hours := 1.0
	if qs := c.Query("hours"); qs != "" {
		v, err := strconv.ParseFloat(qs, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errHoursInvalid})
			return
		}
		hours = v
	}

	est, err := h.services.Cost.Estimate(c.Request.Context(), device, hours)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDevice) {
			if h.log != nil {
				h.log.Infow("cost_estimate_rejected", "device", device, "hours", hours, "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errEstimateFailed, "cost_estimate_failed", err, "device", device)
		return
	}

	c.JSON(http.StatusOK, est)
}
