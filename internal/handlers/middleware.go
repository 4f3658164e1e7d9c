package handlers

import (
	"net/http"
	"strings"

	"power_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"
	ctxRole   = "role"
)

func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	ident, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, ident.UserID)
	c.Set(ctxRole, ident.Role)
	c.Next()
}

// callerIdentity rebuilds the identity the middleware stored on the context.
func callerIdentity(c *gin.Context) service.Identity {
	ident := service.Identity{}
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(int); ok {
			ident.UserID = id
		}
	}
	if v, ok := c.Get(ctxRole); ok {
		if role, ok := v.(string); ok {
			ident.Role = role
		}
	}
	return ident
}
