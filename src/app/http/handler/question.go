package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"qaboard/src/app/http/dto"
	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
	"qaboard/src/core/domain"
	"qaboard/src/core/usecase"
)

// QuestionHandler handles the /questions endpoints.
type QuestionHandler struct {
	questionService *usecase.QuestionService
	log             *slog.Logger
}

func NewQuestionHandler(questionService *usecase.QuestionService, log *slog.Logger) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, log: log}
}

// List returns questions, optionally windowed by limit and offset.
// GET /questions
func (h *QuestionHandler) List(c *gin.Context) {
	params := lo.MapValues(c.Request.URL.Query(), func(v []string, _ string) string {
		return v[0]
	})

	p, err := domain.ExtractPagination(params)
	if err != nil {
		h.fail(c, err)
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, questions)
}

// Get returns one question.
// GET /questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	q, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, q)
}

// Create stores a moderated question.
// POST /questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, dto.BindError(err))
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, q)
}

// Update replaces a question with moderated fields.
// PUT /questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, dto.BindError(err))
		return
	}

	q, err := h.questionService.Update(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, q)
}

// Delete removes a question.
// DELETE /questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Text(c, "Question %d deleted", id)
}

func (h *QuestionHandler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		h.fail(c, domain.NewParseIntError("id", err))
		return 0, false
	}
	return id, true
}

func (h *QuestionHandler) fail(c *gin.Context, err error) {
	response.FromDomainError(c, h.log, err, middleware.GetRequestID(c))
}
