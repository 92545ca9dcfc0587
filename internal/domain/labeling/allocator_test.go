package labeling

import (
	"context"
	"sort"
	"sync"
	"testing"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/counter"
	"shelfmark/internal/core/id"
	"shelfmark/internal/core/label"
)

// schemeSource is a mutable in-memory SchemeSource; guarded by a mutex so
// concurrent tests can swap schemes mid-flight.
type schemeSource struct {
	mu     sync.Mutex
	scheme label.Scheme
}

func (s *schemeSource) LabelScheme(ctx context.Context, workspaceID id.ID) (label.Scheme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheme, nil
}

func (s *schemeSource) set(scheme label.Scheme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme = scheme
}

// guardSet tracks taken labels per call.
type guardSet struct {
	mu    sync.Mutex
	taken map[string]bool
	err   error
}

func newGuardSet(taken ...string) *guardSet {
	g := &guardSet{taken: make(map[string]bool, len(taken))}
	for _, l := range taken {
		g.taken[l] = true
	}
	return g
}

func (g *guardSet) CheckUnique(ctx context.Context, workspaceID id.ID, lbl string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	return !g.taken[lbl], nil
}

func newTestAllocator(wsID id.ID, scheme label.Scheme, guard Guard) (*Allocator, *counter.Mock) {
	counters := counter.NewMock(wsID)
	schemes := &schemeSource{scheme: scheme}
	return NewAllocator(counters, schemes, guard), counters
}

func TestAllocateLabel_Sequential(t *testing.T) {
	ctx := context.Background()
	wsID := id.New()
	scheme := label.Scheme{Format: "ITEM-{n}", Padding: 3, Separator: "-"}
	alloc, counters := newTestAllocator(wsID, scheme, newGuardSet())

	first, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Label != "ITEM-001" || first.Number != 1 {
		t.Errorf("first allocation = %q/%d, want ITEM-001/1", first.Label, first.Number)
	}

	second, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Label != "ITEM-002" || second.Number != 2 {
		t.Errorf("second allocation = %q/%d, want ITEM-002/2", second.Label, second.Number)
	}

	if next := counters.Next(wsID); next != 3 {
		t.Errorf("label_next_number = %d, want 3", next)
	}
}

func TestAllocateLabel_Concurrent(t *testing.T) {
	ctx := context.Background()
	wsID := id.New()
	scheme := label.Scheme{Format: "ITEM-{n}", Padding: 3, Separator: "-"}
	alloc, counters := newTestAllocator(wsID, scheme, newGuardSet())

	const n = 64
	results := make([]Allocation, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = alloc.AllocateLabel(ctx, wsID)
		}(i)
	}
	wg.Wait()

	numbers := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("allocation %d failed: %v", i, errs[i])
		}
		numbers = append(numbers, results[i].Number)
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, num := range numbers {
		if num != int64(i+1) {
			t.Fatalf("numbers not a dense distinct sequence: got %v", numbers)
		}
	}

	if next := counters.Next(wsID); next != n+1 {
		t.Errorf("label_next_number = %d, want %d", next, n+1)
	}
}

func TestAllocateLabel_ConflictConsumesNumber(t *testing.T) {
	ctx := context.Background()
	wsID := id.New()
	scheme := label.Scheme{Format: "ITEM-{n}", Padding: 3, Separator: "-"}
	alloc, counters := newTestAllocator(wsID, scheme, newGuardSet("ITEM-001"))

	_, err := alloc.AllocateLabel(ctx, wsID)
	if !apperror.IsLabelConflict(err) {
		t.Fatalf("expected LabelConflict, got %v", err)
	}

	// The conflicting number stays consumed: no rewind, no reuse.
	if next := counters.Next(wsID); next != 2 {
		t.Errorf("label_next_number = %d, want 2 after conflict", next)
	}

	// A caller that chooses to retry gets the next, higher number.
	got, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got.Label != "ITEM-002" || got.Number != 2 {
		t.Errorf("retry allocation = %q/%d, want ITEM-002/2", got.Label, got.Number)
	}
}

func TestAllocateLabel_SchemeEditAffectsNextAllocation(t *testing.T) {
	ctx := context.Background()
	wsID := id.New()
	counters := counter.NewMock(wsID)
	schemes := &schemeSource{scheme: label.Scheme{Format: "ITEM-{n}", Padding: 3, Separator: "-"}}
	alloc := NewAllocator(counters, schemes, newGuardSet())

	first, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Label != "ITEM-001" {
		t.Errorf("first allocation = %q, want ITEM-001", first.Label)
	}

	// Admin edits the scheme; the very next allocation must pick it up.
	schemes.set(label.Scheme{Format: "BOX-{n}", Padding: 5, Separator: "-"})

	second, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Label != "BOX-00002" {
		t.Errorf("second allocation = %q, want BOX-00002", second.Label)
	}
}

func TestAllocateLabel_OutOfBandHigherLabelDoesNotConflict(t *testing.T) {
	ctx := context.Background()
	wsID := id.New()
	scheme := label.Scheme{Format: "ITEM-{n}", Padding: 3, Separator: "-"}

	// ITEM-002 was assigned manually out of band. The counter is already
	// past it (high-water mark), so allocation proceeds without conflict
	// and without any rewind.
	alloc, counters := newTestAllocator(wsID, scheme, newGuardSet("ITEM-002"))
	if err := counters.SetNext(ctx, wsID, 3); err != nil {
		t.Fatalf("SetNext: %v", err)
	}

	got, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != "ITEM-003" || got.Number != 3 {
		t.Errorf("allocation = %q/%d, want ITEM-003/3", got.Label, got.Number)
	}
}

func TestAllocateLabel_WorkspaceNotFound(t *testing.T) {
	ctx := context.Background()
	scheme := label.Scheme{Format: "ITEM-{n}", Padding: 3, Separator: "-"}
	alloc, _ := newTestAllocator(id.New(), scheme, newGuardSet())

	_, err := alloc.AllocateLabel(ctx, id.New())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestAllocateLabel_ReserveErrorPropagates(t *testing.T) {
	ctx := context.Background()
	wsID := id.New()
	counters := counter.NewMock(wsID)
	counters.ReserveErr = apperror.NewUnavailable("reserve next label number", nil)
	schemes := &schemeSource{scheme: label.DefaultScheme()}
	alloc := NewAllocator(counters, schemes, newGuardSet())

	_, err := alloc.AllocateLabel(ctx, wsID)
	if !apperror.IsUnavailable(err) {
		t.Fatalf("expected Unavailable, got %v", err)
	}

	// A failed reservation attempt consumes nothing.
	counters.ReserveErr = nil
	got, err := alloc.AllocateLabel(ctx, wsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Number != 1 {
		t.Errorf("number = %d, want 1", got.Number)
	}
}
