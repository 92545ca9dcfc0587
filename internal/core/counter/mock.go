package counter

import (
	"context"
	"sync"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
)

// Mock is an in-memory Store for unit tests. Safe for concurrent use so
// allocation-ordering tests can hammer it from many goroutines.
type Mock struct {
	mu   sync.Mutex
	next map[id.ID]int64

	// ReserveErr, when set, is returned by every ReserveNext call.
	ReserveErr error
}

// NewMock creates a Mock with the given workspaces registered, each
// starting at 1.
func NewMock(workspaceIDs ...id.ID) *Mock {
	m := &Mock{next: make(map[id.ID]int64, len(workspaceIDs))}
	for _, wsID := range workspaceIDs {
		m.next[wsID] = 1
	}
	return m
}

// ReserveNext implements Store.
func (m *Mock) ReserveNext(ctx context.Context, workspaceID id.ID) (int64, error) {
	if m.ReserveErr != nil {
		return 0, m.ReserveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.next[workspaceID]
	if !ok {
		return 0, apperror.NewNotFound("workspace", workspaceID.String())
	}
	m.next[workspaceID] = n + 1
	return n, nil
}

// SetNext implements Store.
func (m *Mock) SetNext(ctx context.Context, workspaceID id.ID, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.next[workspaceID]
	if !ok {
		return apperror.NewNotFound("workspace", workspaceID.String())
	}
	if value > n {
		m.next[workspaceID] = value
	}
	return nil
}

// Next returns the current next number for assertions in tests.
func (m *Mock) Next(workspaceID id.ID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next[workspaceID]
}

// Ensure compile-time interface compliance.
var _ Store = (*Mock)(nil)
