package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/transport/rest"
)

// Run is the server entry point. It opens the configured backend, serves
// the HTTP API and shuts down gracefully when ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	j, err := OpenJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := j.Close(); err != nil {
			logger.Error("close journal", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(j, cfg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// NewHandler builds the HTTP API over j.
func NewHandler(j *Journal, cfg *config.Config, logger *slog.Logger) http.Handler {
	journalHandler := rest.NewJournalHandler(j.Service, j.Browser, rest.JournalHandlerConfig{
		Location:     j.Location,
		MaxBodyBytes: cfg.Journal.MaxImportBytes,
	}, logger)

	return rest.NewRouter(rest.RouterDeps{
		Journal: journalHandler,
		Health:  rest.NewHealthHandler(j.Store, cfg.Storage.Driver, BuildVersion()),
		CORS:    cfg.CORS,
		Logger:  logger,
	})
}
