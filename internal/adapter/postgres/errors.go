package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors for the blob under key.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("blob %q: %w", key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("blob %q: %w", key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation: a concurrent insert won
			return fmt.Errorf("blob %q: %w", key, domain.ErrConflict)
		case "40001": // serialization_failure
			return fmt.Errorf("blob %q: %w", key, domain.ErrConflict)
		case "23514": // check_violation
			return fmt.Errorf("blob %q: %w", key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("blob %q: %w", key, err)
}
