package handlers

import (
	"errors"
	"net/http"

	"power_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusUpdated = "updated"

	errGetSettings    = "failed to load settings"
	errUpdateSettings = "failed to save settings"
)

// Request DTO for replacing the settings document.
type settingsRequest struct {
	PricePerKWh float64            `json:"price_per_kwh" binding:"required"`
	WattsByType map[string]float64 `json:"watts_by_type" binding:"required"`
}

// isSettingsValidationError reports whether the service rejected the
// document itself, as opposed to failing to persist it.
func isSettingsValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidPrice) ||
		errors.Is(err, service.ErrInvalidWattage) ||
		errors.Is(err, service.ErrUnknownDevice) ||
		errors.Is(err, service.ErrMissingDevice)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get power settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	st, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSettings, "settings_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Update power settings
// @Description  Replaces the tariff and all six device wattages. Admin and manager only.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   settingsRequest  true  "Settings payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings [put]
// @Security     BearerAuth
func (h *Handler) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	st, err := h.services.Settings.Update(c.Request.Context(), service.UpdateSettingsParams{
		Actor:       callerIdentity(c),
		PricePerKWh: req.PricePerKWh,
		WattsByType: req.WattsByType,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			h.logAndJSONError(c, http.StatusForbidden, err.Error(), "settings_update_forbidden", err, "role", callerIdentity(c).Role)
		case isSettingsValidationError(err):
			if h.log != nil {
				h.log.Infow("settings_update_rejected", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errUpdateSettings, "settings_update_failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusUpdated, "settings": st})
}
