package drafts

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/errors"
	"github.com/meridian/starchart/pkg/galaxy"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

func TestFileStoreCreateGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	draft, err := s.Create(ctx, "dense frontier", galaxy.GenerationConfig{TotalSectors: 800})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if draft.ID == uuid.Nil {
		t.Error("Create() returned a nil draft ID")
	}
	if draft.Config.PortDensity == 0 {
		t.Error("Create() should apply config defaults")
	}

	got, err := s.Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "dense frontier" || got.Config.TotalSectors != 800 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestFileStoreNamelessConfigBorrowsDraftName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// A draft's config needs no galaxy name of its own until generation;
	// the draft name stands in for it.
	draft, err := s.Create(ctx, "nightly", galaxy.GenerationConfig{TotalSectors: 400})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if draft.Config.Name != "nightly" {
		t.Errorf("Config.Name = %q, want the draft name", draft.Config.Name)
	}

	// An explicit galaxy name is kept as-is.
	named, err := s.Create(ctx, "weekly", galaxy.GenerationConfig{Name: "Perseus Arm"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if named.Config.Name != "Perseus Arm" {
		t.Errorf("Config.Name = %q, want the explicit galaxy name", named.Config.Name)
	}

	// Update with a nameless config keeps borrowing the draft name.
	updated, err := s.Update(ctx, draft.ID, galaxy.GenerationConfig{TotalSectors: 600})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Config.Name != "nightly" {
		t.Errorf("Config.Name after update = %q, want the draft name", updated.Config.Name)
	}
}

func TestFileStoreCreateValidates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Create(ctx, "", galaxy.GenerationConfig{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Create(empty name) error = %v, want INVALID_INPUT", err)
	}
	if _, err := s.Create(ctx, "bad", galaxy.GenerationConfig{TotalSectors: -1}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Create(bad config) error = %v, want INVALID_CONFIG", err)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), uuid.New())
	if !errors.Is(err, errors.ErrCodeDraftNotFound) {
		t.Errorf("Get() error = %v, want DRAFT_NOT_FOUND", err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Create(ctx, "first", galaxy.GenerationConfig{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Create(ctx, "second", galaxy.GenerationConfig{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// An update moves a draft back to the top of the list.
	if _, err := s.Update(ctx, first.ID, galaxy.GenerationConfig{TotalSectors: 200}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	drafts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("List() returned %d drafts, want 2", len(drafts))
	}
	if drafts[0].Name != "first" {
		t.Errorf("List()[0] = %q, want the most recently updated draft", drafts[0].Name)
	}
}

func TestFileStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	draft, err := s.Create(ctx, "draft", galaxy.GenerationConfig{TotalSectors: 300})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := s.Update(ctx, draft.ID, galaxy.GenerationConfig{TotalSectors: 900})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Config.TotalSectors != 900 {
		t.Errorf("TotalSectors = %d, want 900", updated.Config.TotalSectors)
	}
	if !updated.UpdatedAt.After(draft.CreatedAt) && !updated.UpdatedAt.Equal(draft.CreatedAt) {
		t.Error("Update() should not move UpdatedAt backwards")
	}

	if _, err := s.Update(ctx, uuid.New(), galaxy.GenerationConfig{}); !errors.Is(err, errors.ErrCodeDraftNotFound) {
		t.Errorf("Update(missing) error = %v, want DRAFT_NOT_FOUND", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	draft, err := s.Create(ctx, "doomed", galaxy.GenerationConfig{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, draft.ID); !errors.Is(err, errors.ErrCodeDraftNotFound) {
		t.Errorf("Get() after delete error = %v, want DRAFT_NOT_FOUND", err)
	}

	// Deleting again is a no-op.
	if err := s.Delete(ctx, draft.ID); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}
