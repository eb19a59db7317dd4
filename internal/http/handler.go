package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"todo-list.com/todo-list/internal/classifier"
	"todo-list.com/todo-list/internal/constants"
	dto "todo-list.com/todo-list/internal/data_models"
	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/http/validators"
	model "todo-list.com/todo-list/internal/models"
	"todo-list.com/todo-list/internal/services"
)

type Handler struct {
	todoService *services.TodoService
	clock       func() time.Time
}

// NewHandler serves todoService. clock supplies "now" for bucketing and
// defaults to time.Now.
func NewHandler(todoService *services.TodoService, clock func() time.Time) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		todoService: todoService,
		clock:       clock,
	}
}

func (h *Handler) CreateTodo(c echo.Context) error {
	req, err := bindTodoRequest(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Create(c.Request().Context(), req.Title, req.Body, req.DueDate)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, h.view(todo))
}

func (h *Handler) ListTodos(c echo.Context) error {
	todos := h.todoService.List()

	return c.JSON(http.StatusOK, dto.TodoListResponse{
		Count: len(todos),
		Todos: h.views(todos),
	})
}

func (h *Handler) ListBuckets(c echo.Context) error {
	buckets := h.todoService.Buckets(h.clock())

	resp := dto.BucketsResponse{
		Default: buckets.Default(),
		Empty:   buckets.Len() == 0,
		Counts:  buckets.Counts(),
		Buckets: make(map[constants.Bucket][]dto.TodoView, len(constants.Buckets)),
	}
	for _, bucket := range constants.Buckets {
		resp.Buckets[bucket] = h.views(buckets.Get(bucket))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.respondWithTodo(c, id)
}

func (h *Handler) UpdateTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindTodoRequest(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Edit(c.Request().Context(), id, req.Title, req.Body, req.DueDate); err != nil {
		return httpError(err)
	}
	return h.respondWithTodo(c, id)
}

// DeleteTodo answers 204 whether or not the todo existed.
func (h *Handler) DeleteTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	h.todoService.Delete(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ToggleTodo(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	h.todoService.ToggleComplete(c.Request().Context(), id)
	return h.respondWithTodo(c, id)
}

func (h *Handler) BeginEdit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	h.todoService.BeginEdit(c.Request().Context(), id)
	return h.respondWithTodo(c, id)
}

func (h *Handler) CancelEdit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	h.todoService.CancelEdit(c.Request().Context(), id)
	return h.respondWithTodo(c, id)
}

func (h *Handler) respondWithTodo(c echo.Context, id int64) error {
	todo, err := h.todoService.Get(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.view(todo))
}

func (h *Handler) view(todo model.Todo) dto.TodoView {
	status, _ := classifier.DueStatus(todo, h.clock())
	return dto.TodoView{Todo: todo, DueStatus: status}
}

func (h *Handler) views(todos []model.Todo) []dto.TodoView {
	out := make([]dto.TodoView, 0, len(todos))
	for _, t := range todos {
		out = append(out, h.view(t))
	}
	return out
}

func bindTodoRequest(c echo.Context) (*dto.TodoRequestData, error) {
	var req dto.TodoRequestData
	if err := c.Bind(&req); err != nil {
		return nil, httpError(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateTodoRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpError(apperrors.ErrInvalidTodoID)
	}
	return id, nil
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}
