package counter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the workspaces.label_next_number column for a
// single workspace.
type mockQuerier struct {
	mu      sync.Mutex
	next    int64
	known   id.ID
	calls   int
	failFor int    // fail the first N calls
	failErr error  // error to return while failing
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.failFor > 0 {
		m.failFor--
		return &mockRow{err: m.failErr}
	}

	wsID, ok := args[0].(id.ID)
	if !ok || wsID != m.known {
		return &mockRow{err: pgx.ErrNoRows}
	}

	if len(args) == 2 {
		// GREATEST(label_next_number, $2)
		if v := args[1].(int64); v > m.next {
			m.next = v
		}
		return &mockRow{val: m.next}
	}

	reserved := m.next
	m.next++
	return &mockRow{val: reserved}
}

func newMockQuerier(wsID id.ID) *mockQuerier {
	return &mockQuerier{next: 1, known: wsID}
}

func TestReserveNext_Sequential(t *testing.T) {
	wsID := id.New()
	q := newMockQuerier(wsID)
	store := New(q)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := store.ReserveNext(ctx, wsID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReserveNext_UnknownWorkspace(t *testing.T) {
	q := newMockQuerier(id.New())
	store := New(q)

	_, err := store.ReserveNext(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReserveNext_RetriesTransient(t *testing.T) {
	wsID := id.New()
	q := newMockQuerier(wsID)
	q.failFor = 2
	q.failErr = &pgconn.PgError{Code: "40001"}

	store := New(q)
	store.retryDelay = time.Millisecond

	got, err := store.ReserveNext(context.Background(), wsID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
	assert.Equal(t, 3, q.calls)
}

func TestReserveNext_ExhaustedRetriesUnavailable(t *testing.T) {
	wsID := id.New()
	q := newMockQuerier(wsID)
	q.failFor = 10
	q.failErr = &pgconn.PgError{Code: "40P01"}

	store := New(q)
	store.retryDelay = time.Millisecond

	_, err := store.ReserveNext(context.Background(), wsID)
	require.Error(t, err)
	assert.True(t, apperror.IsUnavailable(err))
	assert.Equal(t, store.maxAttempts, q.calls)
}

func TestReserveNext_NonTransientNotRetried(t *testing.T) {
	wsID := id.New()
	q := newMockQuerier(wsID)
	q.failFor = 1
	q.failErr = &pgconn.PgError{Code: "42703"} // undefined_column

	store := New(q)

	_, err := store.ReserveNext(context.Background(), wsID)
	require.Error(t, err)
	assert.Equal(t, 1, q.calls)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDatabase, appErr.Code)
}

func TestSetNext_HighWaterMark(t *testing.T) {
	wsID := id.New()
	q := newMockQuerier(wsID)
	store := New(q)
	ctx := context.Background()

	require.NoError(t, store.SetNext(ctx, wsID, 10))

	got, err := store.ReserveNext(ctx, wsID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)

	// Lowering is a no-op: issued numbers must never come back.
	require.NoError(t, store.SetNext(ctx, wsID, 2))

	got, err = store.ReserveNext(ctx, wsID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got)
}

func TestSetNext_RejectsNonPositive(t *testing.T) {
	store := New(newMockQuerier(id.New()))

	err := store.SetNext(context.Background(), id.New(), 0)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
