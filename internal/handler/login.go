package handler

import (
	"Go_Scan/internal/dto"
	"Go_Scan/internal/service"
	"Go_Scan/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgLoggedIn     = "Logged in successfully."
	msgBadLogin     = "Invalid username or password."
	msgLoggedOut    = "You have been logged out."
	msgLoginFailure = "Login failed, please try again."
)

func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "Log in", nil)
}

// Login checks the form credentials and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", "Log in", gin.H{"Flash": msgBadLogin})
		return
	}
	ctx := c.Request.Context()
	token, p, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.render(c, http.StatusOK, "login.html", "Log in", gin.H{"Flash": msgBadLogin, "Username": req.Username})
			return
		}
		h.logger.Error(ctx, "login failed", "error", err)
		h.render(c, http.StatusInternalServerError, "login.html", "Log in", gin.H{"Flash": msgLoginFailure, "Username": req.Username})
		return
	}
	h.logger.Info(ctx, "user logged in", "user_id", p.UserID)
	utils.SetSessionCookie(c, token, h.opts.SessionTTL, h.opts.CookieSecure)
	utils.SetFlash(c, msgLoggedIn, h.opts.CookieSecure)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(utils.SessionCookie)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.logger.Error(c.Request.Context(), "logout failed", "error", err)
	}
	utils.ClearSessionCookie(c, h.opts.CookieSecure)
	utils.SetFlash(c, msgLoggedOut, h.opts.CookieSecure)
	c.Redirect(http.StatusFound, "/login")
}
