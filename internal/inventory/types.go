package inventory

// ItemID identifies an item kind, e.g. "iron_helmet" or "oak_planks".
type ItemID = string

// Canonical inventory dimensions. Every well-formed player inventory has
// exactly StorageSlots storage positions and HotbarSize hotbar entries.
const (
	StorageSlots = 36
	HotbarSize   = 9

	MinStackCount = 1
	MaxStackCount = 64

	MinEnchantLevel = 1
	MaxEnchantLevel = 5

	MaxDamage = 1000
)

// Enchantment is a single enchantment applied to a stack.
type Enchantment struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// StackMetadata carries the optional per-stack attributes. Durability and
// Damage use pointers so "absent" and "zero" stay distinguishable.
type StackMetadata struct {
	Durability   *float64      `json:"durability,omitempty"`
	Enchantments []Enchantment `json:"enchantments,omitempty"`
	Damage       *int          `json:"damage,omitempty"`
	CustomName   string        `json:"customName,omitempty"`
	Lore         []string      `json:"lore,omitempty"`
}

// ItemStack is a quantity of a single item kind occupying one slot.
// Stacks are treated as immutable values: corrections build a new stack
// rather than editing one in place.
type ItemStack struct {
	ItemID   ItemID         `json:"itemId"`
	Count    int            `json:"count"`
	Metadata *StackMetadata `json:"metadata,omitempty"`
}

// ArmorSlots holds the four worn equipment positions.
type ArmorSlots struct {
	Helmet     *ItemStack `json:"helmet,omitempty"`
	Chestplate *ItemStack `json:"chestplate,omitempty"`
	Leggings   *ItemStack `json:"leggings,omitempty"`
	Boots      *ItemStack `json:"boots,omitempty"`
}

// Inventory is a player's container-backed item collection: 36 storage
// slots, a hotbar of 9 indices into storage, a selected-slot pointer,
// armor, and an offhand stack.
type Inventory struct {
	Slots        []*ItemStack `json:"slots"`
	Hotbar       []int        `json:"hotbar"`
	SelectedSlot int          `json:"selectedSlot"`
	Armor        ArmorSlots   `json:"armor"`
	Offhand      *ItemStack   `json:"offhand,omitempty"`
}
