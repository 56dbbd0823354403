package router

import (
	"Go_Scan/internal/handler"
	"Go_Scan/utils"
	"Go_Scan/web"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InitRouter builds the page and API routes.
func InitRouter(h *handler.Handler, sessions utils.SessionResolver, allowOrigins []string) (*gin.Engine, error) {
	r := gin.Default()
	r.Use(utils.CORSMiddleware(allowOrigins))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/", h.Index)
	r.GET("/simulate", h.Simulate)
	r.GET("/healthz", handler.Healthz)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)

	auth := r.Group("")
	auth.Use(utils.AuthMiddleware(sessions))
	{
		auth.GET("/process", h.Process)
		auth.GET("/logout", h.Logout)
		auth.POST("/process-document", h.ProcessDocument)
		auth.POST("/correct-text", h.CorrectText)
		auth.POST("/evaluate-text", h.EvaluateText)
	}
	return r, nil
}
