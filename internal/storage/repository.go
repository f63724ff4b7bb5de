// Package storage persists player inventories. The validation engine
// never touches these repositories itself; callers load, validate and
// save, serializing the read-modify-write cycle per player.
package storage

import (
	"context"
	"errors"

	"blockhold/server/internal/inventory"
)

// ErrNotFound reports a player without a stored inventory.
var ErrNotFound = errors.New("storage: inventory not found")

// Repository stores one inventory per player.
type Repository interface {
	Load(ctx context.Context, playerID string) (inventory.Inventory, error)
	Save(ctx context.Context, playerID string, inv inventory.Inventory) error
	Delete(ctx context.Context, playerID string) error
	List(ctx context.Context) ([]string, error)
}
