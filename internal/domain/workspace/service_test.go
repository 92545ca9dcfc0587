package workspace

import (
	"context"
	"sync"
	"testing"

	"shelfmark/internal/core/apperror"
	"shelfmark/internal/core/id"
	"shelfmark/internal/core/label"
	"shelfmark/internal/domain/audit"
)

type memRepo struct {
	mu         sync.Mutex
	workspaces map[id.ID]*Workspace
}

func newMemRepo() *memRepo {
	return &memRepo{workspaces: make(map[id.ID]*Workspace)}
}

func (r *memRepo) Create(ctx context.Context, ws *Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.workspaces {
		if existing.Slug == ws.Slug {
			return apperror.NewDuplicate("workspace", "slug", ws.Slug)
		}
	}
	cp := *ws
	r.workspaces[ws.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, workspaceID id.ID) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[workspaceID]
	if !ok {
		return nil, apperror.NewNotFound("workspace", workspaceID.String())
	}
	cp := *ws
	return &cp, nil
}

func (r *memRepo) GetBySlug(ctx context.Context, slug string) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ws := range r.workspaces {
		if ws.Slug == slug {
			cp := *ws
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("workspace", slug)
}

func (r *memRepo) List(ctx context.Context, filter ListFilter) ([]*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Workspace
	for _, ws := range r.workspaces {
		cp := *ws
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memRepo) Update(ctx context.Context, ws *Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.workspaces[ws.ID]
	if !ok {
		return apperror.NewNotFound("workspace", ws.ID.String())
	}
	cp := *ws
	cp.LabelNextNumber = stored.LabelNextNumber // counter column excluded
	r.workspaces[ws.ID] = &cp
	return nil
}

func (r *memRepo) Delete(ctx context.Context, workspaceID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, workspaceID)
	return nil
}

func (r *memRepo) UpdateLabelScheme(ctx context.Context, workspaceID id.ID, scheme label.Scheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[workspaceID]
	if !ok {
		return apperror.NewNotFound("workspace", workspaceID.String())
	}
	ws.SetLabelScheme(scheme)
	return nil
}

func (r *memRepo) LabelScheme(ctx context.Context, workspaceID id.ID) (label.Scheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[workspaceID]
	if !ok {
		return label.Scheme{}, apperror.NewNotFound("workspace", workspaceID.String())
	}
	return ws.LabelScheme(), nil
}

func TestCreate_DefaultScheme(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), audit.Noop{})

	ws := NewWorkspace("garage", "Garage")
	if err := svc.Create(ctx, ws); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.LabelNextNumber != 1 {
		t.Errorf("label_next_number = %d, want 1", ws.LabelNextNumber)
	}
	if err := ws.LabelScheme().Validate(); err != nil {
		t.Errorf("default scheme invalid: %v", err)
	}
}

func TestCreate_RejectsBadSlug(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), audit.Noop{})

	for _, slug := range []string{"", "ab", "UPPER", "has space", "-leading"} {
		ws := NewWorkspace(slug, "Bad")
		if err := svc.Create(ctx, ws); err == nil {
			t.Errorf("slug %q accepted, want validation error", slug)
		}
	}
}

func TestUpdateLabelScheme_ValidatesBeforePersist(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, audit.Noop{})

	ws := NewWorkspace("garage", "Garage")
	if err := svc.Create(ctx, ws); err != nil {
		t.Fatal(err)
	}

	// Missing placeholder never reaches the repository.
	err := svc.UpdateLabelScheme(ctx, ws.ID, label.Scheme{Format: "NOPLACEHOLDER", Padding: 3, Separator: "-"})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidFormat {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}
	got, _ := svc.LabelScheme(ctx, ws.ID)
	if got != label.DefaultScheme() {
		t.Errorf("scheme changed despite validation failure: %+v", got)
	}

	// A valid edit persists and leaves the counter alone.
	want := label.Scheme{Format: "TOOL-{n}", Padding: 4, Separator: "-"}
	if err := svc.UpdateLabelScheme(ctx, ws.ID, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = svc.LabelScheme(ctx, ws.ID)
	if got != want {
		t.Errorf("scheme = %+v, want %+v", got, want)
	}

	stored, _ := svc.Get(ctx, ws.ID)
	if stored.LabelNextNumber != 1 {
		t.Errorf("label_next_number = %d, want 1 (scheme edit must not touch counter)", stored.LabelNextNumber)
	}
}

func TestUpdate_RejectsMalformedScheme(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, audit.Noop{})

	ws := NewWorkspace("shed", "Shed")
	if err := svc.Create(ctx, ws); err != nil {
		t.Fatal(err)
	}

	// An internal caller smuggling a placeholder-less format onto the
	// entity must be stopped the same way the scheme endpoint is.
	edited := *ws
	edited.LabelFormat = "NOPLACEHOLDER"
	err := svc.Update(ctx, &edited)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidFormat {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}

	stored, _ := svc.Get(ctx, ws.ID)
	if err := stored.LabelScheme().Validate(); err != nil {
		t.Errorf("stored scheme corrupted: %v", err)
	}
}

func TestUpdate_NeverWritesCounter(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, audit.Noop{})

	ws := NewWorkspace("lab", "Lab")
	if err := svc.Create(ctx, ws); err != nil {
		t.Fatal(err)
	}

	edited := *ws
	edited.Name = "Electronics lab"
	edited.LabelNextNumber = 999 // must be ignored
	if err := svc.Update(ctx, &edited); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := svc.Get(ctx, ws.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Electronics lab" {
		t.Errorf("name = %q, want %q", stored.Name, "Electronics lab")
	}
	if stored.LabelNextNumber != 1 {
		t.Errorf("label_next_number = %d, want 1", stored.LabelNextNumber)
	}
}
