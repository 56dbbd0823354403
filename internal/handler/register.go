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
	msgRegistered     = "Registration successful. You can now log in."
	msgUsernameTaken  = "Username already exists. Please choose a different username."
	msgMissingFields  = "Username and password are required."
	msgUsernameLength = "Username must be at most 150 characters."
	msgRegisterFailed = "Registration failed, please try again."
)

func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", "Register", nil)
}

// Register creates the account and sends the user on to the login form.
func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusBadRequest, "register.html", "Register", gin.H{"Flash": msgMissingFields})
		return
	}
	ctx := c.Request.Context()
	user, err := h.auth.Register(ctx, req.Username, req.Password)
	if err != nil {
		status, msg := http.StatusOK, msgRegisterFailed
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			msg = msgUsernameTaken
		case errors.Is(err, service.ErrInvalidInput):
			status, msg = http.StatusBadRequest, msgMissingFields
		case errors.Is(err, service.ErrUsernameTooLong):
			status, msg = http.StatusBadRequest, msgUsernameLength
		default:
			status = http.StatusInternalServerError
			h.logger.Error(ctx, "register failed", "error", err)
		}
		h.render(c, status, "register.html", "Register", gin.H{"Flash": msg, "Username": req.Username})
		return
	}
	h.logger.Info(ctx, "user registered", "user_id", user.ID)
	utils.SetFlash(c, msgRegistered, h.opts.CookieSecure)
	c.Redirect(http.StatusFound, "/login")
}
