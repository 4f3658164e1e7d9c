package handlers

import (
	"errors"
	"net/http"

	"power_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// signUpRequest is the account-creation payload.
type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role,omitempty"` // defaults to viewer
}

// signInRequest carries credentials plus the remember-me flag that extends
// the token lifetime.
type signInRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signUpRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "id, strength_score, strength_label"
// @Failure      400  {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             res.ID,
		"strength_score": res.StrengthScore,
		"strength_label": res.StrengthLabel,
	})
}

// @Summary      Sign in
// @Description  Returns a bearer token. remember_me extends the token lifetime.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signInRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "token"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Email, input.Password, input.RememberMe)
	if err != nil {
		status := signInStatus(err)
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "email", input.Email, "status", status, "err", err)
		}
		c.JSON(status, gin.H{"error": MessageForStatus(status)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// signInStatus maps auth service errors onto the documented status codes.
func signInStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrAccountLocked):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
