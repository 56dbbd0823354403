package utils

import (
	"Go_Scan/model"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResolver map[string]*model.Principal

func (s stubResolver) Current(ctx context.Context, token string) (*model.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, errors.New("no session")
}

func newAuthEngine(sessions SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("", AuthMiddleware(sessions))
	handler := func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": p.UserName})
	}
	auth.GET("/page", handler)
	auth.POST("/api", handler)
	return r
}

func TestAuthMiddlewareRejectsAPIRequest(t *testing.T) {
	r := newAuthEngine(stubResolver{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestAuthMiddlewareRedirectsBrowser(t *testing.T) {
	r := newAuthEngine(stubResolver{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthMiddlewareAcceptsSession(t *testing.T) {
	r := newAuthEngine(stubResolver{"tok": {SessionID: "s", UserID: 3, UserName: "bob"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"bob"}`, w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	SetFlash(c, "You have been logged out.", false)

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/login", nil)
	c2.Request.AddCookie(cookies[0])
	assert.Equal(t, "You have been logged out.", PopFlash(c2, false))
	cleared := w2.Result().Cookies()
	if assert.Len(t, cleared, 1) {
		assert.True(t, cleared[0].MaxAge < 0)
	}
}
