package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/service/browse"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

// Journal bundles the backend and the services built on it. The HTTP
// server and the CLI both start from here.
type Journal struct {
	Store    Store
	Service  *journal.Service
	Browser  *browse.Browser
	Location *time.Location
}

// OpenJournal opens the configured backend and builds the services.
func OpenJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Journal, error) {
	loc, err := config.ParseTimezone(cfg.Journal.Timezone)
	if err != nil {
		return nil, err
	}
	tag, err := config.ParseLocale(cfg.Journal.Locale)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	logger.Info("storage opened",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("key", cfg.Journal.StorageKey),
	)

	return &Journal{
		Store:    store,
		Service:  journal.NewService(logger, store, cfg.Journal),
		Browser:  browse.New(tag),
		Location: loc,
	}, nil
}

// Close releases the backend.
func (j *Journal) Close() error {
	if err := j.Store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
