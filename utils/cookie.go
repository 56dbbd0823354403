package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "go_scan_session"
	FlashCookie   = "go_scan_flash"
)

// SetSessionCookie stores the session token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// SetFlash queues a message for the next rendered page.
func SetFlash(c *gin.Context, msg string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, msg, 60, "/", "", secure, true)
}

// PopFlash returns the queued message, if any, and clears it.
func PopFlash(c *gin.Context, secure bool) string {
	msg, err := c.Cookie(FlashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, "", -1, "/", "", secure, true)
	return msg
}
