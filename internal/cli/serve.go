package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mannequin/internal/application/services"
	"mannequin/internal/application/usecases"
	"mannequin/internal/config"
	"mannequin/internal/infra"
	"mannequin/internal/infrastructure/api"
	"mannequin/internal/infrastructure/repositories"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the try-on web page and API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(cfg.AppEnv)

	synthesis, err := newSynthesisService(ctx, cfg, &logger)
	if err != nil {
		return fmt.Errorf("failed to create synthesis service: %w", err)
	}
	defer synthesis.Close()

	tryOn, err := newTryOnUseCase(cfg, synthesis, &logger)
	if err != nil {
		return err
	}

	sessionRepo := repositories.NewMemorySessionRepository[*usecases.Controller]()
	go repositories.SweepIdle[*usecases.Controller](ctx, sessionRepo, time.Minute, cfg.SessionIdleTimeout, &logger)

	sessions := api.NewSessionManager(sessionRepo, controllerFactory(tryOn, cfg, &logger), !cfg.IsDevelopment())
	handler := api.NewRouter(api.RouterConfig{
		Sessions:      sessions,
		Uploads:       services.NewUploadService(cfg.UploadMemoryBytes),
		DefaultLocale: cfg.DefaultLocale,
		Logger:        &logger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("backend", cfg.SynthesisBackend).
			Str("model", cfg.GeminiModel).
			Msg("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
