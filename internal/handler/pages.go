package handler

import (
	"Go_Scan/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = utils.PopFlash(c, h.opts.CookieSecure)
	}
	if p, ok := utils.CurrentPrincipal(c); ok {
		data["User"] = p
	} else if token, err := c.Cookie(utils.SessionCookie); err == nil {
		if p, err := h.auth.Current(c.Request.Context(), token); err == nil {
			data["User"] = p
		}
	}
	c.HTML(status, page, data)
}

func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", "Scan", nil)
}

func (h *Handler) Simulate(c *gin.Context) {
	h.render(c, http.StatusOK, "simulate.html", "Simulate", nil)
}

// Process shows the corrected text the upload script left in sessionStorage.
func (h *Handler) Process(c *gin.Context) {
	h.render(c, http.StatusOK, "process.html", "Result", nil)
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
