package dto_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"

	"qaboard/src/app/http/dto"
	"qaboard/src/core/domain"
)

func bindJSON(t *testing.T, body string) (dto.CreateQuestionRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dto.RegisterValidation()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/questions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req dto.CreateQuestionRequest
	return req, c.ShouldBindJSON(&req)
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	require.ErrorIs(t, err, domain.ErrMalformedBody)
	return de.Field
}

func TestBindError_MissingRequiredField(t *testing.T) {
	_, err := bindJSON(t, `{"content":"c"}`)
	require.Error(t, err)

	mapped := dto.BindError(err)
	require.Equal(t, "title", fieldOf(t, mapped))
	require.Contains(t, mapped.Error(), "title is required")
}

func TestBindError_WrongType(t *testing.T) {
	_, err := bindJSON(t, `{"title":"t","content":"c","tags":"faq"}`)
	require.Error(t, err)
	require.Equal(t, "tags", fieldOf(t, dto.BindError(err)))
}

func TestBindError_Syntax(t *testing.T) {
	_, err := bindJSON(t, `{"title":`)
	require.Error(t, err)
	require.Empty(t, fieldOf(t, dto.BindError(err)))
}

func TestCreateQuestionRequest_NullTags(t *testing.T) {
	req, err := bindJSON(t, `{"title":"t","content":"c","tags":null}`)
	require.NoError(t, err)
	q := req.ToDomain()
	require.Equal(t, "t", q.Title)
	require.Nil(t, q.Tags)
}

func TestCreateAnswerRequest_Form(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidation()

	form := url.Values{"content": {"yes"}, "question_id": {"3"}}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var req dto.CreateAnswerRequest
	require.NoError(t, c.ShouldBindWith(&req, binding.Form))
	require.Equal(t, domain.NewAnswer{Content: "yes", QuestionID: 3}, req.ToDomain())

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader("question_id=3"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var missing dto.CreateAnswerRequest
	err := c.ShouldBindWith(&missing, binding.Form)
	require.Error(t, err)
	require.Equal(t, "content", fieldOf(t, dto.BindError(err)))
}
