package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	httpapi "todo-list.com/todo-list/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local JSON API",
	Long:  "Serves the todo command and query API on the configured loopback address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd, func(ctx context.Context, app *application) error {
			e := echo.New()
			e.HideBanner = true
			e.HidePort = true

			handler := httpapi.NewHandler(app.todos, time.Now)
			httpapi.Register(e, handler, httpapi.RouteConfig{
				RateLimitPerMinute: app.cfg.RateLimit,
				Logger:             app.logger,
				Metrics:            app.metrics.Handler(),
			})

			errCh := make(chan error, 1)
			go func() {
				app.logger.Info().Str("addr", app.cfg.AppURL()).Msg("HTTP server listening")
				if err := e.Start(app.cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(
				context.WithoutCancel(ctx),
				time.Duration(app.cfg.ShutdownTimeoutSeconds)*time.Second,
			)
			defer cancel()

			if err := e.Shutdown(shutdownCtx); err != nil {
				app.logger.Error().Err(err).Msg("server shutdown failed")
			}

			app.logger.Info().Msg("HTTP server shut down gracefully")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
