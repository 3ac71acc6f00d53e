// Package sqlite implements the blob store on an embedded SQLite database
// through gorm. Each key is one row of kv_blobs; the version column gives
// compare-and-swap across processes sharing the database file.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// blobRow is the gorm model of one stored blob.
type blobRow struct {
	BlobKey   string `gorm:"primaryKey;column:blob_key"`
	Value     []byte `gorm:"column:value;not null"`
	Version   int64  `gorm:"column:version;not null"`
	UpdatedAt time.Time
}

func (blobRow) TableName() string { return "kv_blobs" }

// Store is a gorm-backed blob store.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at cfg.Path (":memory:" allowed)
// and migrates the kv_blobs table. The parent directory of a plain file
// path is created if missing.
func Open(cfg config.SQLiteConfig) (*Store, error) {
	if cfg.Path != ":memory:" && !strings.HasPrefix(cfg.Path, "file:") {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir for %s: %w", cfg.Path, err)
		}
	}

	level := logger.Silent
	if cfg.LogMode {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 logger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: get database instance: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases shared across calls.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&blobRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Read returns the blob under key, or domain.ErrNotFound.
func (s *Store) Read(ctx context.Context, key string) (domain.Blob, error) {
	var row blobRow
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).Take(&row).Error
	if err != nil {
		return domain.Blob{}, mapError(err, key)
	}
	return domain.Blob{Value: row.Value, ETag: strconv.FormatInt(row.Version, 10)}, nil
}

// Write inserts (expected == "") or updates the row when its version equals
// expected. A lost race is domain.ErrConflict.
func (s *Store) Write(ctx context.Context, key string, value []byte, expected string) (string, error) {
	db := s.db.WithContext(ctx)
	now := time.Now().UTC()

	if expected == "" {
		row := blobRow{BlobKey: key, Value: value, Version: 1, UpdatedAt: now}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return "", mapError(res.Error, key)
		}
		if res.RowsAffected == 0 {
			return "", fmt.Errorf("key %q: %w", key, domain.ErrConflict)
		}
		return "1", nil
	}

	version, err := strconv.ParseInt(expected, 10, 64)
	if err != nil {
		return "", fmt.Errorf("key %q: etag %q: %w", key, expected, domain.ErrConflict)
	}

	res := db.Model(&blobRow{}).
		Where("blob_key = ? AND version = ?", key, version).
		Updates(map[string]any{
			"value":      value,
			"version":    version + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return "", mapError(res.Error, key)
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrConflict)
	}
	return strconv.FormatInt(version+1, 10), nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapError(err error, key string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("key %q: %w", key, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	return fmt.Errorf("sqlite: key %q: %w", key, err)
}
