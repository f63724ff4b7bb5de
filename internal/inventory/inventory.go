package inventory

// OccupiedSlots counts storage slots holding a stack.
func (inv Inventory) OccupiedSlots() int {
	occupied := 0
	for _, stack := range inv.Slots {
		if stack != nil {
			occupied++
		}
	}
	return occupied
}

// EmptySlots counts storage slots holding nothing.
func (inv Inventory) EmptySlots() int {
	return len(inv.Slots) - inv.OccupiedSlots()
}

// UniqueItems counts distinct item kinds across occupied storage slots.
func (inv Inventory) UniqueItems() int {
	seen := make(map[ItemID]struct{})
	for _, stack := range inv.Slots {
		if stack == nil {
			continue
		}
		seen[stack.ItemID] = struct{}{}
	}
	return len(seen)
}

// TotalItems sums the stack counts across occupied storage slots.
func (inv Inventory) TotalItems() int {
	total := 0
	for _, stack := range inv.Slots {
		if stack != nil {
			total += stack.Count
		}
	}
	return total
}

// ArmorPieces returns the four worn slots in canonical order alongside
// their slot names. Empty positions carry a nil stack.
func (inv Inventory) ArmorPieces() []ArmorPiece {
	return []ArmorPiece{
		{Name: ArmorSlotHelmet, Stack: inv.Armor.Helmet},
		{Name: ArmorSlotChestplate, Stack: inv.Armor.Chestplate},
		{Name: ArmorSlotLeggings, Stack: inv.Armor.Leggings},
		{Name: ArmorSlotBoots, Stack: inv.Armor.Boots},
	}
}

// ArmorPiece pairs an armor slot name with its (possibly nil) stack.
type ArmorPiece struct {
	Name  string
	Stack *ItemStack
}

// Armor slot names double as the substring an item id must contain to be
// valid for the slot.
const (
	ArmorSlotHelmet     = "helmet"
	ArmorSlotChestplate = "chestplate"
	ArmorSlotLeggings   = "leggings"
	ArmorSlotBoots      = "boots"
)
