package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"qaboard/src/app/http/dto"
	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
	"qaboard/src/core/usecase"
)

// AnswerHandler handles answer submission.
type AnswerHandler struct {
	answerService *usecase.AnswerService
	log           *slog.Logger
}

func NewAnswerHandler(answerService *usecase.AnswerService, log *slog.Logger) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, log: log}
}

// Create stores an answer sent as an urlencoded form.
// POST /comments
func (h *AnswerHandler) Create(c *gin.Context) {
	var req dto.CreateAnswerRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		response.FromDomainError(c, h.log, dto.BindError(err), middleware.GetRequestID(c))
		return
	}

	if _, err := h.answerService.Create(c.Request.Context(), req.ToDomain()); err != nil {
		response.FromDomainError(c, h.log, err, middleware.GetRequestID(c))
		return
	}
	response.Text(c, "Answer added")
}
