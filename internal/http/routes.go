package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	middleware "todo-list.com/todo-list/internal/http/middlewares"
)

type RouteConfig struct {
	RateLimitPerMinute int
	Logger             zerolog.Logger
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func Register(e *echo.Echo, h *Handler, cfg RouteConfig) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(middleware.RateLimiter(middleware.RateLimiterConfig{
		Limit:  cfg.RateLimitPerMinute,
		Window: time.Minute,
	}))

	e.POST("/todos", h.CreateTodo)
	e.GET("/todos", h.ListTodos)
	e.GET("/todos/buckets", h.ListBuckets)
	e.GET("/todos/:id", h.GetTodo)
	e.PUT("/todos/:id", h.UpdateTodo)
	e.DELETE("/todos/:id", h.DeleteTodo)
	e.POST("/todos/:id/toggle", h.ToggleTodo)
	e.POST("/todos/:id/editing", h.BeginEdit)
	e.DELETE("/todos/:id/editing", h.CancelEdit)

	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}
}
