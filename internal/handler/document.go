package handler

import (
	"Go_Scan/internal/awsx"
	"Go_Scan/internal/dto"
	"Go_Scan/internal/ocr"
	"Go_Scan/internal/service"
	"Go_Scan/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProcessDocument uploads the posted document and returns the text
// detection result once the job finishes.
func (h *Handler) ProcessDocument(c *gin.Context) {
	p, ok := utils.CurrentPrincipal(c)
	if !ok {
		utils.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.limitBody(c)
	var req dto.ProcessDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := h.docs.Process(c.Request.Context(), p, req.FileContent, req.FileName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUpload):
			utils.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, awsx.ErrCredentials):
			utils.Fail(c, http.StatusInternalServerError, "AWS credentials not found or incomplete.")
		case errors.Is(err, ocr.ErrJobFailed):
			utils.Fail(c, http.StatusInternalServerError, "Text detection job failed")
		case errors.Is(err, ocr.ErrShuttingDown):
			utils.Fail(c, http.StatusServiceUnavailable, "server is shutting down, please retry")
		default:
			utils.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) limitBody(c *gin.Context) {
	if h.opts.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxBodyBytes)
	}
}
