package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"qaboard/src/app/http/response"
	"qaboard/src/app/server"
	"qaboard/src/core/domain"
	"qaboard/src/core/ports/mock"
	"qaboard/src/infra/config"
	"qaboard/src/infra/logger"
)

type harness struct {
	srv  http.Handler
	repo *mock.MockQuestionRepository
	mod  *mock.MockModerator
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            3030,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.example.com"},
			AllowedMethods: []string{"PUT", "DELETE", "GET", "POST"},
			AllowedHeaders: []string{"content-type"},
		},
	}
}

func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	ctrl := gomock.NewController(t)
	h := &harness{
		repo: mock.NewMockQuestionRepository(ctrl),
		mod:  mock.NewMockModerator(ctrl),
	}
	h.srv = server.New(cfg, logger.Discard(), h.repo, h.mod).Router()
	return h
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.srv.ServeHTTP(w, req)
	return w
}

func (h *harness) echoModeration() {
	h.mod.EXPECT().Check(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, text string) (string, error) { return text, nil }).
		AnyTimes()
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var body response.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	require.NotEmpty(t, body.Error.RequestID)
	return body.Error
}

func TestListQuestions_EmptyStore(t *testing.T) {
	h := newHarness(t)
	h.repo.EXPECT().ListQuestions(gomock.Any(), domain.Pagination{}).Return([]domain.Question{}, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestListQuestions_Pagination(t *testing.T) {
	h := newHarness(t)
	limit := 2
	h.repo.EXPECT().ListQuestions(gomock.Any(), domain.Pagination{Limit: &limit, Offset: 1}).
		Return([]domain.Question{{ID: "2", Title: "b", Content: "b"}, {ID: "3", Title: "c", Content: "c"}}, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/questions?limit=2&offset=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"id":"2","title":"b","content":"b","tags":null},{"id":"3","title":"c","content":"c","tags":null}]`, w.Body.String())
}

func TestListQuestions_BadPaginationNeverReachesStore(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/questions?limit=x&offset=0", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	detail := decodeError(t, w)
	require.Equal(t, response.CodeInvalidParameter, detail.Code)
	require.Equal(t, "limit", detail.Field)

	w = h.do(httptest.NewRequest(http.MethodGet, "/questions?limit=5", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, response.CodeMissingParameters, decodeError(t, w).Code)
}

func TestListQuestions_DatabaseOutage(t *testing.T) {
	h := newHarness(t)
	h.repo.EXPECT().ListQuestions(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewDatabaseQueryError(errors.New("dial tcp 127.0.0.1:5432: connection refused")))

	w := h.do(httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	detail := decodeError(t, w)
	require.Equal(t, response.CodeDatabaseQuery, detail.Code)
	require.NotContains(t, w.Body.String(), "connection refused")
}

func TestCreateQuestion(t *testing.T) {
	h := newHarness(t)
	h.echoModeration()
	h.repo.EXPECT().CreateQuestion(gomock.Any(), domain.NewQuestion{Title: "t", Content: "c"}).
		Return(&domain.Question{ID: "1", Title: "t", Content: "c"}, nil)

	w := h.do(jsonRequest(http.MethodPost, "/questions", `{"title":"t","content":"c","tags":null}`))
	require.Equal(t, http.StatusOK, w.Code)

	var q domain.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	require.Equal(t, domain.QuestionID("1"), q.ID)
	require.Equal(t, "t", q.Title)
	require.Equal(t, "c", q.Content)
}

func TestCreateQuestion_MalformedBody(t *testing.T) {
	h := newHarness(t)

	w := h.do(jsonRequest(http.MethodPost, "/questions", `{"content":"c"}`))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	detail := decodeError(t, w)
	require.Equal(t, response.CodeInvalidBody, detail.Code)
	require.Equal(t, "title", detail.Field)
}

func TestCreateQuestion_ModerationFailureHidesDetail(t *testing.T) {
	h := newHarness(t)
	h.mod.EXPECT().Check(gomock.Any(), gomock.Any()).
		Return("", domain.NewModerationStatusError(http.StatusUnauthorized, "Invalid authentication credentials")).
		MinTimes(1)

	w := h.do(jsonRequest(http.MethodPost, "/questions", `{"title":"t","content":"c"}`))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	detail := decodeError(t, w)
	require.Equal(t, "Internal Server Error", detail.Message)
	require.NotContains(t, w.Body.String(), "credentials")
}

func TestUpdateQuestion_Missing(t *testing.T) {
	h := newHarness(t)
	h.echoModeration()
	h.repo.EXPECT().UpdateQuestion(gomock.Any(), int64(42), domain.UpdateQuestion{Title: "t", Content: "c"}).
		Return(nil, domain.NewNotFoundError("question"))

	w := h.do(jsonRequest(http.MethodPut, "/questions/42", `{"id":"42","title":"t","content":"c"}`))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, response.CodeNotFound, decodeError(t, w).Code)
}

func TestUpdateQuestion_NonIntegerID(t *testing.T) {
	h := newHarness(t)

	w := h.do(jsonRequest(http.MethodPut, "/questions/abc", `{"title":"t","content":"c"}`))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	detail := decodeError(t, w)
	require.Equal(t, response.CodeInvalidParameter, detail.Code)
	require.Equal(t, "id", detail.Field)
}

func TestDeleteQuestion_Twice(t *testing.T) {
	h := newHarness(t)
	gomock.InOrder(
		h.repo.EXPECT().DeleteQuestion(gomock.Any(), int64(7)).Return(nil),
		h.repo.EXPECT().DeleteQuestion(gomock.Any(), int64(7)).Return(domain.NewNotFoundError("question")),
	)

	w := h.do(httptest.NewRequest(http.MethodDelete, "/questions/7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Question 7 deleted", w.Body.String())

	w = h.do(httptest.NewRequest(http.MethodDelete, "/questions/7", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddAnswer(t *testing.T) {
	h := newHarness(t)
	h.repo.EXPECT().CreateAnswer(gomock.Any(), domain.NewAnswer{Content: "use a mutex", QuestionID: 99}).
		Return(&domain.Answer{ID: "1", Content: "use a mutex", QuestionID: "99"}, nil)

	form := url.Values{"content": {"use a mutex"}, "question_id": {"99"}}
	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := h.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Answer added", w.Body.String())
}

func TestAddAnswer_BadQuestionID(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader("content=x&question_id=abc"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := h.do(req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, response.CodeInvalidBody, decodeError(t, w).Code)
}

func TestCORS(t *testing.T) {
	h := newHarness(t)

	t.Run("disallowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		w := h.do(req)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, response.CodeCORSForbidden, decodeError(t, w).Code)
	})

	t.Run("disallowed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "x-secret")

		w := h.do(req)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Contains(t, decodeError(t, w).Message, "x-secret")
	})

	t.Run("allowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")

		w := h.do(req)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestUnmatchedRoute(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, response.CodeRouteNotFound, decodeError(t, w).Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHarness(t)

	w := h.do(httptest.NewRequest(http.MethodPatch, "/questions", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, response.CodeMethodNotAllowed, decodeError(t, w).Code)
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	})
	h.repo.EXPECT().ListQuestions(gomock.Any(), gomock.Any()).Return([]domain.Question{}, nil)

	w := h.do(httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Equal(t, response.CodeRateLimited, decodeError(t, w).Code)
}

func TestRequestIDEcho(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "trace-123")

	w := h.do(req)
	require.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
	require.Equal(t, "trace-123", decodeError(t, w).RequestID)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	h.repo.EXPECT().Health(gomock.Any()).Return(errors.New("pool closed"))

	w := h.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = h.do(httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"degraded"`)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)

	h.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	w := h.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "qaboard_http_requests_total")
}

func TestGetQuestion(t *testing.T) {
	h := newHarness(t)
	gomock.InOrder(
		h.repo.EXPECT().GetQuestion(gomock.Any(), int64(3)).
			Return(&domain.Question{ID: "3", Title: "t", Content: "c", Tags: []string{"go"}}, nil),
		h.repo.EXPECT().GetQuestion(gomock.Any(), int64(4)).
			Return(nil, domain.NewNotFoundError("question")),
	)

	w := h.do(httptest.NewRequest(http.MethodGet, "/questions/3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":"3","title":"t","content":"c","tags":["go"]}`, w.Body.String())

	w = h.do(httptest.NewRequest(http.MethodGet, "/questions/4", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "question not found", decodeError(t, w).Message)
}

func TestQuestionID_OutOfRangeNeverReachesStore(t *testing.T) {
	h := newHarness(t)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/questions/3000000000", nil),
		jsonRequest(http.MethodPut, "/questions/3000000000", `{"title":"t","content":"c"}`),
		httptest.NewRequest(http.MethodDelete, "/questions/3000000000", nil),
		httptest.NewRequest(http.MethodDelete, "/questions/-2147483649", nil),
	}
	for _, req := range requests {
		w := h.do(req)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, req.Method+" "+req.URL.Path)
		detail := decodeError(t, w)
		require.Equal(t, response.CodeInvalidParameter, detail.Code)
		require.Equal(t, "id", detail.Field)
	}
}

func TestAddAnswer_QuestionIDOutOfRange(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader("content=x&question_id=3000000000"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := h.do(req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, response.CodeInvalidBody, decodeError(t, w).Code)
}

func TestCreateQuestion_LongTitleReachesStore(t *testing.T) {
	h := newHarness(t)
	h.echoModeration()
	title := strings.Repeat("q", 300)
	h.repo.EXPECT().CreateQuestion(gomock.Any(), domain.NewQuestion{Title: title, Content: "c"}).
		Return(&domain.Question{ID: "1", Title: title, Content: "c"}, nil)

	w := h.do(jsonRequest(http.MethodPost, "/questions", `{"title":"`+title+`","content":"c"}`))
	require.Equal(t, http.StatusOK, w.Code)
}
