package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medlog/internal/application/terminal/usecases"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

// TerminalSessionMiddleware resolves the device cookie into terminal context
// on every kiosk request. Resolution failure is not an error here; the
// request continues unauthenticated and RequirePairing decides the outcome.
type TerminalSessionMiddleware struct {
	resolveUseCase *usecases.ResolveTerminalUseCase
	logger         logger.Interface
}

func NewTerminalSessionMiddleware(
	resolveUseCase *usecases.ResolveTerminalUseCase,
	logger logger.Interface,
) *TerminalSessionMiddleware {
	return &TerminalSessionMiddleware{
		resolveUseCase: resolveUseCase,
		logger:         logger,
	}
}

func (m *TerminalSessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTerminalCookie(c)

		resolved, err := m.resolveUseCase.Execute(c.Request.Context(), usecases.ResolveTerminalCommand{
			Token: token,
		})
		if err != nil {
			m.logger.Errorw("terminal session resolution failed", "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}

		if resolved != nil {
			c.Set(constants.ContextKeyTerminalID, resolved.TerminalID)
			c.Set(constants.ContextKeySiteID, resolved.SiteID)
		}

		c.Next()
	}
}

// ResolvedTerminalID returns the terminal ID set by Resolve, if any.
func ResolvedTerminalID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyTerminalID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// ResolvedSiteID returns the site ID set by Resolve, if any.
func ResolvedSiteID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeySiteID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
