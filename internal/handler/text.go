package handler

import (
	"Go_Scan/internal/dto"
	"Go_Scan/internal/llm"
	"Go_Scan/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CorrectText(c *gin.Context) {
	h.limitBody(c)
	var req dto.CorrectTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "No text provided")
		return
	}
	corrected, err := h.text.Correct(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyInput) {
			utils.Fail(c, http.StatusBadRequest, "No text provided")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.CorrectTextResponse{CorrectedText: corrected})
}

func (h *Handler) EvaluateText(c *gin.Context) {
	h.limitBody(c)
	var req dto.EvaluateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "No text or question provided")
		return
	}
	feedback, err := h.text.Evaluate(c.Request.Context(), req.Text, req.Question)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyInput) {
			utils.Fail(c, http.StatusBadRequest, "No text or question provided")
			return
		}
		h.logger.Error(c.Request.Context(), "evaluate text failed", "error", err)
		utils.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.EvaluateTextResponse{Feedback: feedback})
}
