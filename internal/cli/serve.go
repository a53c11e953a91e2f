package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/upb/ai-proxy/app"
	"github.com/upb/ai-proxy/config"
	"github.com/upb/ai-proxy/internal/observability"
	"github.com/upb/ai-proxy/routes"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP proxy endpoint",
		Long:  "serve exposes POST /api/ai-proxy for browser and desktop clients that cannot call providers directly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.New(ctx)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return withExitCode(ExitConfigError, err)
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return withExitCode(ExitRuntimeError, err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      routes.SetupRoutes(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("ai-proxy listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("version", app.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			_ = deps.Close(context.Background())
			return withExitCode(ExitRuntimeError, fmt.Errorf("server error: %w", err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		_ = deps.Close(shutdownCtx)
		return withExitCode(ExitRuntimeError, err)
	}

	logger.Info("server stopped")
	return deps.Close(shutdownCtx)
}
