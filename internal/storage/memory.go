package storage

import (
	"context"
	"sort"
	"sync"

	"blockhold/server/internal/inventory"
)

// MemoryRepository keeps inventories in process memory. Loads and saves
// deep-clone so callers can never mutate the stored record through a
// shared slice.
type MemoryRepository struct {
	mu          sync.RWMutex
	inventories map[string]inventory.Inventory
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{inventories: make(map[string]inventory.Inventory)}
}

func (r *MemoryRepository) Load(ctx context.Context, playerID string) (inventory.Inventory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.inventories[playerID]
	if !ok {
		return inventory.Inventory{}, ErrNotFound
	}
	return inv.Clone(), nil
}

func (r *MemoryRepository) Save(ctx context.Context, playerID string, inv inventory.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inventories[playerID] = inv.Clone()
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inventories[playerID]; !ok {
		return ErrNotFound
	}
	delete(r.inventories, playerID)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.inventories))
	for id := range r.inventories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
