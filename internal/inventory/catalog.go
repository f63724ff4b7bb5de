package inventory

import (
	"fmt"
	"sort"
	"sync"
)

// ItemClass groups catalog entries by broad role.
type ItemClass string

const (
	ItemClassBlock      ItemClass = "block"
	ItemClassTool       ItemClass = "tool"
	ItemClassWeapon     ItemClass = "weapon"
	ItemClassArmor      ItemClass = "armor"
	ItemClassConsumable ItemClass = "consumable"
	ItemClassMaterial   ItemClass = "material"
)

// ItemDefinition describes one item kind known to the game.
type ItemDefinition struct {
	ID          ItemID    `json:"id"`
	Class       ItemClass `json:"class"`
	Stackable   bool      `json:"stackable"`
	ArmorSlot   string    `json:"armorSlot,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// Catalog stores item definitions keyed by ID. Reads are safe for
// concurrent use; registration normally happens once at startup.
type Catalog struct {
	mu    sync.RWMutex
	items map[ItemID]ItemDefinition
}

// CatalogView is the read-only slice of the catalog the validation engine
// depends on.
type CatalogView interface {
	Lookup(id ItemID) (ItemDefinition, bool)
}

// NewCatalog constructs a catalog seeded with the provided definitions.
func NewCatalog(defs ...ItemDefinition) *Catalog {
	c := &Catalog{items: make(map[ItemID]ItemDefinition, len(defs))}
	for _, def := range defs {
		_ = c.Register(def)
	}
	return c
}

// Register inserts or replaces a definition. The ID must be non-empty and
// armor entries must name a valid slot.
func (c *Catalog) Register(def ItemDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("catalog: definition missing id")
	}
	if def.Class == ItemClassArmor {
		switch def.ArmorSlot {
		case ArmorSlotHelmet, ArmorSlotChestplate, ArmorSlotLeggings, ArmorSlotBoots:
		default:
			return fmt.Errorf("catalog: armor item %q has unknown slot %q", def.ID, def.ArmorSlot)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[ItemID]ItemDefinition)
	}
	c.items[def.ID] = def
	return nil
}

// Lookup returns the definition for an item ID, if registered.
func (c *Catalog) Lookup(id ItemID) (ItemDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.items[id]
	return def, ok
}

// Definitions returns every registered definition sorted by ID.
func (c *Catalog) Definitions() []ItemDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	defs := make([]ItemDefinition, 0, len(c.items))
	for _, def := range c.items {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// DefaultCatalog returns the built-in block-world item set.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultDefinitions()...)
}

func defaultDefinitions() []ItemDefinition {
	return []ItemDefinition{
		{ID: "stone", Class: ItemClassBlock, Stackable: true, Name: "Stone"},
		{ID: "cobblestone", Class: ItemClassBlock, Stackable: true, Name: "Cobblestone"},
		{ID: "dirt", Class: ItemClassBlock, Stackable: true, Name: "Dirt"},
		{ID: "oak_planks", Class: ItemClassBlock, Stackable: true, Name: "Oak Planks"},
		{ID: "torch", Class: ItemClassBlock, Stackable: true, Name: "Torch"},
		{ID: "coal", Class: ItemClassMaterial, Stackable: true, Name: "Coal"},
		{ID: "iron_ingot", Class: ItemClassMaterial, Stackable: true, Name: "Iron Ingot"},
		{ID: "stick", Class: ItemClassMaterial, Stackable: true, Name: "Stick"},
		{ID: "bread", Class: ItemClassConsumable, Stackable: true, Name: "Bread"},
		{ID: "apple", Class: ItemClassConsumable, Stackable: true, Name: "Apple"},
		{ID: "wooden_pickaxe", Class: ItemClassTool, Name: "Wooden Pickaxe"},
		{ID: "stone_pickaxe", Class: ItemClassTool, Name: "Stone Pickaxe"},
		{ID: "iron_pickaxe", Class: ItemClassTool, Name: "Iron Pickaxe"},
		{ID: "iron_shovel", Class: ItemClassTool, Name: "Iron Shovel"},
		{ID: "iron_sword", Class: ItemClassWeapon, Name: "Iron Sword"},
		{ID: "bow", Class: ItemClassWeapon, Name: "Bow"},
		{ID: "shield", Class: ItemClassWeapon, Name: "Shield"},
		{ID: "leather_helmet", Class: ItemClassArmor, ArmorSlot: ArmorSlotHelmet, Name: "Leather Helmet"},
		{ID: "leather_chestplate", Class: ItemClassArmor, ArmorSlot: ArmorSlotChestplate, Name: "Leather Chestplate"},
		{ID: "leather_leggings", Class: ItemClassArmor, ArmorSlot: ArmorSlotLeggings, Name: "Leather Leggings"},
		{ID: "leather_boots", Class: ItemClassArmor, ArmorSlot: ArmorSlotBoots, Name: "Leather Boots"},
		{ID: "iron_helmet", Class: ItemClassArmor, ArmorSlot: ArmorSlotHelmet, Name: "Iron Helmet"},
		{ID: "iron_chestplate", Class: ItemClassArmor, ArmorSlot: ArmorSlotChestplate, Name: "Iron Chestplate"},
		{ID: "iron_leggings", Class: ItemClassArmor, ArmorSlot: ArmorSlotLeggings, Name: "Iron Leggings"},
		{ID: "iron_boots", Class: ItemClassArmor, ArmorSlot: ArmorSlotBoots, Name: "Iron Boots"},
	}
}
