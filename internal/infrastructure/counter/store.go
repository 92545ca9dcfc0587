// Package counter provides the PostgreSQL implementation of workspace
// label counters. It implements the core/counter.Store interface.
package counter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shelfmark/internal/core/apperror"
	corecounter "shelfmark/internal/core/counter"
	"shelfmark/internal/core/id"
	"shelfmark/pkg/logger"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reserves label numbers from the workspaces table. Counter calls
// are intentionally executed outside of business transactions: a
// reserved number is consumed even if the caller's transaction later
// rolls back, which leaves a gap instead of risking label reuse.
type Store struct {
	querier Querier

	// maxAttempts bounds retries on transient serialization/deadlock
	// failures before the error surfaces as STORAGE_UNAVAILABLE.
	maxAttempts int
	retryDelay  time.Duration
}

// Ensure compile-time interface compliance.
var _ corecounter.Store = (*Store)(nil)

// New creates a counter store. The querier is typically the shared
// connection pool, not a transaction.
func New(querier Querier) *Store {
	return &Store{
		querier:     querier,
		maxAttempts: 3,
		retryDelay:  25 * time.Millisecond,
	}
}

const reserveSQL = `
	UPDATE workspaces
	SET label_next_number = label_next_number + 1
	WHERE id = $1
	RETURNING label_next_number - 1
`

// ReserveNext atomically claims the current counter value for the
// workspace and advances it by one. Each call returns a distinct number;
// numbers are never handed out twice.
func (s *Store) ReserveNext(ctx context.Context, workspaceID id.ID) (int64, error) {
	var num int64
	err := s.withRetry(ctx, "reserve label number", func() error {
		return s.querier.QueryRow(ctx, reserveSQL, workspaceID).Scan(&num)
	})
	if err != nil {
		return 0, err
	}
	return num, nil
}

const setNextSQL = `
	UPDATE workspaces
	SET label_next_number = GREATEST(label_next_number, $2)
	WHERE id = $1
	RETURNING label_next_number
`

// SetNext raises the counter to value. The counter never moves
// backwards: setting a value at or below the current one is a no-op,
// so already-issued numbers cannot be reissued.
func (s *Store) SetNext(ctx context.Context, workspaceID id.ID, value int64) error {
	if value < 1 {
		return apperror.NewValidation("counter value must be positive")
	}

	var current int64
	return s.withRetry(ctx, "set label number", func() error {
		return s.querier.QueryRow(ctx, setNextSQL, workspaceID, value).Scan(&current)
	})
}

// withRetry runs fn, retrying on transient PostgreSQL failures
// (serialization failure 40001, deadlock 40P01). Missing workspace rows
// map to NOT_FOUND and are never retried.
func (s *Store) withRetry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("workspace", "")
		}
		if !isTransient(err) {
			return apperror.NewDatabase(operation, err)
		}

		lastErr = err
		logger.Warn(ctx, "transient counter failure, retrying",
			"operation", operation,
			"attempt", attempt,
			"error", err,
		)

		if attempt < s.maxAttempts {
			select {
			case <-ctx.Done():
				return apperror.NewUnavailable(operation, ctx.Err())
			case <-time.After(s.retryDelay):
			}
		}
	}
	return apperror.NewUnavailable(operation, lastErr)
}

// isTransient reports whether the error is worth retrying.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return true
	}
	return false
}
