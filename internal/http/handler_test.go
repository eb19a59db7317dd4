package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list.com/todo-list/internal/constants"
	dto "todo-list.com/todo-list/internal/data_models"
	"todo-list.com/todo-list/internal/metrics"
	"todo-list.com/todo-list/internal/services"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) *echo.Echo {
	t.Helper()

	clock := func() time.Time { return testNow }
	m := metrics.New()
	svc := services.NewTodoService(zerolog.Nop(), nil, services.WithClock(clock), services.WithMetrics(m))

	e := echo.New()
	Register(e, NewHandler(svc, clock), RouteConfig{
		RateLimitPerMinute: 1000,
		Logger:             zerolog.Nop(),
		Metrics:            m.Handler(),
	})
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createTodo(t *testing.T, e *echo.Echo, body string) dto.TodoView {
	t.Helper()

	rec := do(t, e, http.MethodPost, "/todos", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.TodoView](t, rec)
}

func TestHandler_CreateTodo(t *testing.T) {
	e := setupServer(t)

	todo := createTodo(t, e, `{"title":"  Walk dog ","body":"park","dueDate":"2024-06-14T09:00:00Z"}`)

	assert.Equal(t, testNow.UnixMilli(), todo.ID)
	assert.Equal(t, "Walk dog", todo.Title)
	assert.Equal(t, "park", todo.Body)
	assert.Equal(t, constants.DueStatusOverdue, todo.DueStatus)
	assert.False(t, todo.Completed)
	assert.NotEmpty(t, do(t, e, http.MethodGet, "/todos", "").Header().Get(echo.HeaderXRequestID))
}

func TestHandler_CreateTodoValidation(t *testing.T) {
	e := setupServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing title", `{"body":"x"}`, "title is required"},
		{"blank title", `{"title":"   "}`, "title is required"},
		{"long title", `{"title":"` + strings.Repeat("a", 201) + `"}`, "title must be at most 200 characters"},
		{"bad json", `{"title":`, "invalid JSON payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decode[map[string]string](t, rec)["message"])
		})
	}

	list := decode[dto.TodoListResponse](t, do(t, e, http.MethodGet, "/todos", ""))
	assert.Zero(t, list.Count)
}

func TestHandler_ListTodosSorted(t *testing.T) {
	e := setupServer(t)

	createTodo(t, e, `{"title":"Buy milk"}`)
	createTodo(t, e, `{"title":"Walk dog","dueDate":"2024-06-14T09:00:00Z"}`)

	list := decode[dto.TodoListResponse](t, do(t, e, http.MethodGet, "/todos", ""))
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Walk dog", list.Todos[0].Title)
	assert.Equal(t, "Buy milk", list.Todos[1].Title)
}

func TestHandler_ListBuckets(t *testing.T) {
	e := setupServer(t)

	empty := decode[dto.BucketsResponse](t, do(t, e, http.MethodGet, "/todos/buckets", ""))
	assert.True(t, empty.Empty)
	assert.Equal(t, constants.BucketDueToday, empty.Default)

	createTodo(t, e, `{"title":"today","dueDate":"2024-06-15T23:00:00Z"}`)
	createTodo(t, e, `{"title":"overdue","dueDate":"2024-06-14T23:00:00Z"}`)
	createTodo(t, e, `{"title":"upcoming","dueDate":"2024-06-16T00:01:00Z"}`)
	createTodo(t, e, `{"title":"someday"}`)

	resp := decode[dto.BucketsResponse](t, do(t, e, http.MethodGet, "/todos/buckets", ""))
	assert.False(t, resp.Empty)
	assert.Equal(t, constants.BucketOverdue, resp.Default)
	for _, bucket := range constants.Buckets[:4] {
		assert.Equal(t, 1, resp.Counts[bucket], bucket)
	}
	assert.Equal(t, 0, resp.Counts[constants.BucketCompleted])
	assert.Equal(t, "today", resp.Buckets[constants.BucketDueToday][0].Title)
	assert.Equal(t, "upcoming", resp.Buckets[constants.BucketUpcoming][0].Title)
	assert.Empty(t, resp.Buckets[constants.BucketCompleted])
}

func TestHandler_TodoLifecycle(t *testing.T) {
	e := setupServer(t)
	todo := createTodo(t, e, `{"title":"Test Todo","body":"Test Body"}`)
	path := "/todos/" + jsonID(todo.ID)

	rec := do(t, e, http.MethodPost, path+"/editing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.TodoView](t, rec).IsEditing)

	rec = do(t, e, http.MethodDelete, path+"/editing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.TodoView](t, rec).IsEditing)

	rec = do(t, e, http.MethodPut, path, `{"title":"Updated Title","body":"Updated Body","dueDate":"2024-06-20T12:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[dto.TodoView](t, rec)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, constants.DueStatusOnTrack, updated.DueStatus)

	rec = do(t, e, http.MethodPut, path, `{"title":" "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, path+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.TodoView](t, rec).Completed)

	rec = do(t, e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated Title", decode[dto.TodoView](t, rec).Title)

	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, path, "").Code)
}

func TestHandler_UnknownAndInvalidIDs(t *testing.T) {
	e := setupServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/todos/12345", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodPost, "/todos/12345/toggle", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodPut, "/todos/12345", `{"title":"x"}`).Code)

	for _, id := range []string{"abc", "0", "-4"} {
		rec := do(t, e, http.MethodGet, "/todos/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestHandler_Metrics(t *testing.T) {
	e := setupServer(t)
	createTodo(t, e, `{"title":"counted"}`)

	rec := do(t, e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `todo_commands_total{command="create",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "todo_todos 1")
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
