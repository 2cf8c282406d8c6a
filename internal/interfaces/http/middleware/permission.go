package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"medlog/internal/domain/permission"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

type PermissionMiddleware struct {
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.PermissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission checks the authenticated user against the casbin policy.
// Must run after AuthMiddleware.RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.ContextKeyUserID)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		userID, ok := value.(uint)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid user context")
			c.Abort()
			return
		}

		subject := fmt.Sprintf("user:%d", userID)
		allowed, err := m.enforcer.Enforce(subject, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "subject", subject, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
