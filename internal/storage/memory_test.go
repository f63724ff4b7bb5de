package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"blockhold/server/internal/inventory"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
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

func TestMemoryLoadUnknownPlayer(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.Load(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryIsolatesStoredRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	inv := inventory.NewStarterInventory()
	if err := repo.Save(ctx, "alice", inv); err != nil {
		t.Fatalf("save: %v", err)
	}

	// mutate the caller's copy after saving
	inv.Slots[0].Count = 64

	loaded, err := repo.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Slots[0].Count != 1 {
		t.Fatalf("stored record was mutated through the caller's slice")
	}

	// mutate the loaded copy and reload
	loaded.Slots[0].Count = 32
	reloaded, err := repo.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Slots[0].Count != 1 {
		t.Fatalf("stored record was mutated through a loaded copy")
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
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

func TestMemoryListSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, id := range []string{"carol", "alice", "bob"} {
		if err := repo.Save(ctx, id, inventory.NewInventory()); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
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
