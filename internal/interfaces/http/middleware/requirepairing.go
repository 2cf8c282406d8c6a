package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medlog/internal/shared/constants"
	"medlog/internal/shared/utils"
)

// RequirePairing guards kiosk routes. Browser navigation from an unpaired
// device is redirected to the pairing screen; API calls get a plain 401 so
// the kiosk frontend can switch views itself.
func RequirePairing() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ResolvedTerminalID(c); ok {
			c.Next()
			return
		}

		if wantsHTML(c) {
			c.Redirect(http.StatusFound, constants.PairEntryPath)
			c.Abort()
			return
		}

		utils.ErrorResponse(c, http.StatusUnauthorized, "terminal not paired")
		c.Abort()
	}
}

func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
