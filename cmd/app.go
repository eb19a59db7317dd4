package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	config "todo-list.com/todo-list/internal/configs"
	"todo-list.com/todo-list/internal/metrics"
	"todo-list.com/todo-list/internal/persistence"
	repository "todo-list.com/todo-list/internal/repositories"
	"todo-list.com/todo-list/internal/services"
)

type application struct {
	cfg     config.Config
	logger  zerolog.Logger
	repo    repository.SnapshotRepository
	metrics *metrics.Metrics
	todos   *services.TodoService
}

func newApplication(ctx context.Context) (*application, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.Env, os.Stderr)
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		logger.Debug().Msg(".env file not found, using environment variables")
	}

	repo, err := config.NewSnapshotRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	adapter := persistence.NewAdapter(
		repo,
		cfg.StorageKey,
		logger.With().Str("component", "persistence").Logger(),
		persistence.WithAdapterMetrics(m),
	)
	todos := services.NewTodoService(
		logger.With().Str("component", "todos").Logger(),
		adapter,
		services.WithMetrics(m),
	)

	if err := todos.Load(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}

	logger.Debug().
		Str("driver", cfg.StorageDriver).
		Str("key", adapter.Key()).
		Msg("storage ready")

	return &application{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		metrics: m,
		todos:   todos,
	}, nil
}

// Close flushes the collection one last time and releases storage.
func (a *application) Close(ctx context.Context) error {
	flushErr := a.todos.Flush(ctx)
	if flushErr != nil {
		a.logger.Error().Err(flushErr).Msg("final flush failed")
	}
	return errors.Join(flushErr, a.repo.Close())
}

func withApplication(cmd *cobra.Command, fn func(ctx context.Context, app *application) error) error {
	ctx := cmd.Context()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}

	runErr := fn(ctx, app)
	// Flush even when ctx was cancelled by a signal.
	closeErr := app.Close(context.WithoutCancel(ctx))
	return errors.Join(runErr, closeErr)
}
