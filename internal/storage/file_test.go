package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"blockhold/server/internal/inventory"
)

func TestFileRepositoryRequiresDirectory(t *testing.T) {
	if _, err := NewFileRepository(""); err == nil {
		t.Fatalf("expected an error for an empty directory")
	}
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	inv := inventory.NewStarterInventory()
	if err := repo.Save(ctx, "alice", inv); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, inv) {
		t.Fatalf("loaded inventory differs from the saved one")
	}
}

func TestFileSaveWritesOneDocumentPerPlayer(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if err := repo.Save(ctx, "alice", inventory.NewInventory()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "alice.json")); err != nil {
		t.Fatalf("expected alice.json on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "alice.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected the temp file renamed away, got %v", err)
	}
}

func TestFileLoadUnknownPlayer(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if _, err := repo.Load(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileDelete(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	if err := repo.Save(ctx, "alice", inventory.NewInventory()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a second delete, got %v", err)
	}
}

func TestFileListIgnoresForeignEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	for _, id := range []string{"carol", "alice", "bob"} {
		if err := repo.Save(ctx, id, inventory.NewInventory()); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "backup"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
}
