package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medlog/internal/shared/config"
	"medlog/internal/shared/constants"
)

// SetTerminalCookie stores the raw device credential as an HttpOnly cookie.
// The cookie lives as long as the session's far-future expiry so a kiosk
// stays paired across restarts.
func SetTerminalCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, expiresAt time.Time) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(
		constants.TerminalCookieName,
		token,
		maxAge,
		cookiePath(cookieConfig),
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearTerminalCookie removes the device credential cookie.
func ClearTerminalCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		constants.TerminalCookieName,
		"",
		-1,
		cookiePath(cookieConfig),
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// GetTerminalCookie retrieves the raw device credential from the request, if present.
func GetTerminalCookie(c *gin.Context) string {
	token, err := c.Cookie(constants.TerminalCookieName)
	if err != nil {
		return ""
	}
	return token
}

func cookiePath(cookieConfig config.CookieConfig) string {
	if cookieConfig.Path == "" {
		return "/"
	}
	return cookieConfig.Path
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
