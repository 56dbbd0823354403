package utils

import (
	"Go_Scan/model"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// SessionResolver maps a session cookie token to the logged-in principal.
type SessionResolver interface {
	Current(ctx context.Context, token string) (*model.Principal, error)
}

// AuthMiddleware requires a live session. Page requests are sent to the login
// form, everything else gets a 401.
func AuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		p, err := sessions.Current(c.Request.Context(), token)
		if err != nil || p == nil {
			if wantsHTML(c.Request) {
				c.Redirect(http.StatusFound, "/login")
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			}
			c.Abort()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (*model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}

func wantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
