package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"blockhold/server/internal/inventory"
)

// FileRepository persists one JSON document per player under a directory.
// Writes go through a temp file and rename so a crash never leaves a
// half-written inventory behind.
type FileRepository struct {
	dir string
	mu  sync.Mutex
}

var _ Repository = (*FileRepository)(nil)

func NewFileRepository(dir string) (*FileRepository, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) Load(ctx context.Context, playerID string) (inventory.Inventory, error) {
	data, err := os.ReadFile(r.path(playerID))
	if err != nil {
		if os.IsNotExist(err) {
			return inventory.Inventory{}, ErrNotFound
		}
		return inventory.Inventory{}, fmt.Errorf("storage: read %s: %w", playerID, err)
	}
	var inv inventory.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return inventory.Inventory{}, fmt.Errorf("storage: decode %s: %w", playerID, err)
	}
	return inv, nil
}

func (r *FileRepository) Save(ctx context.Context, playerID string, inv inventory.Inventory) error {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", playerID, err)
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	tmp := r.path(playerID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", playerID, err)
	}
	if err := os.Rename(tmp, r.path(playerID)); err != nil {
		return fmt.Errorf("storage: commit %s: %w", playerID, err)
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path(playerID)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: delete %s: %w", playerID, err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *FileRepository) path(playerID string) string {
	return filepath.Join(r.dir, playerID+".json")
}
