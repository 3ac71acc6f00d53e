// Package kvstore implements the blob store on the PostgreSQL kv_blobs
// table. Queries are built with squirrel; writes run in a transaction that
// locks the row and checks its version.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Anusha-2024/Mini-Journal/internal/adapter/postgres"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

const table = "kv_blobs"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store provides blob persistence backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	tx   txRunner
}

// New creates a store over pool. The kv_blobs table must exist
// (see postgres.Migrate).
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, tx: postgres.NewTxManager(pool)}
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

// Read returns the blob under key. Returns domain.ErrNotFound if absent.
func (s *Store) Read(ctx context.Context, key string) (domain.Blob, error) {
	query, args, err := psql.
		Select("value", "version").
		From(table).
		Where(squirrel.Eq{"blob_key": key}).
		ToSql()
	if err != nil {
		return domain.Blob{}, fmt.Errorf("build select: %w", err)
	}

	var (
		value   []byte
		version int64
	)
	row := postgres.QuerierFromCtx(ctx, s.pool).QueryRow(ctx, query, args...)
	if err := row.Scan(&value, &version); err != nil {
		return domain.Blob{}, postgres.MapError(err, key)
	}

	return domain.Blob{Value: value, ETag: formatVersion(version)}, nil
}

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

// Write stores value when the row's version equals expected, or inserts it
// when expected is empty and no row exists. Returns domain.ErrConflict
// otherwise.
func (s *Store) Write(ctx context.Context, key string, value []byte, expected string) (string, error) {
	var next int64

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, s.pool)

		current, found, err := lockVersion(ctx, q, key)
		if err != nil {
			return err
		}

		if !found {
			if expected != "" {
				return fmt.Errorf("blob %q vanished: %w", key, domain.ErrConflict)
			}
			next = 1
			return insert(ctx, q, key, value)
		}

		if formatVersion(current) != expected {
			return fmt.Errorf("blob %q at version %d: %w", key, current, domain.ErrConflict)
		}
		next = current + 1
		return update(ctx, q, key, value, next)
	})
	if err != nil {
		return "", err
	}

	return formatVersion(next), nil
}

func lockVersion(ctx context.Context, q postgres.Querier, key string) (int64, bool, error) {
	query, args, err := psql.
		Select("version").
		From(table).
		Where(squirrel.Eq{"blob_key": key}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build lock: %w", err)
	}

	var version int64
	if err := q.QueryRow(ctx, query, args...).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, postgres.MapError(err, key)
	}
	return version, true, nil
}

func insert(ctx context.Context, q postgres.Querier, key string, value []byte) error {
	query, args, err := psql.
		Insert(table).
		Columns("blob_key", "value", "version").
		Values(key, value, 1).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, key)
	}
	return nil
}

func update(ctx context.Context, q postgres.Querier, key string, value []byte, version int64) error {
	query, args, err := psql.
		Update(table).
		Set("value", value).
		Set("version", version).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"blob_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, key)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Ping checks the pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func formatVersion(v int64) string { return strconv.FormatInt(v, 10) }
