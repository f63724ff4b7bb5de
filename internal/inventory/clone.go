package inventory

// Clone returns a deep copy. Mutating the copy never observes through to
// the original, which keeps dry runs and correction folds safe.
func (inv Inventory) Clone() Inventory {
	cloned := inv
	if inv.Slots != nil {
		cloned.Slots = make([]*ItemStack, len(inv.Slots))
		for i, stack := range inv.Slots {
			cloned.Slots[i] = cloneStack(stack)
		}
	}
	if inv.Hotbar != nil {
		cloned.Hotbar = append([]int(nil), inv.Hotbar...)
	}
	cloned.Armor = ArmorSlots{
		Helmet:     cloneStack(inv.Armor.Helmet),
		Chestplate: cloneStack(inv.Armor.Chestplate),
		Leggings:   cloneStack(inv.Armor.Leggings),
		Boots:      cloneStack(inv.Armor.Boots),
	}
	cloned.Offhand = cloneStack(inv.Offhand)
	return cloned
}

// Clone returns a deep copy of the stack.
func (s *ItemStack) Clone() *ItemStack {
	return cloneStack(s)
}

func cloneStack(s *ItemStack) *ItemStack {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Metadata = cloneMetadata(s.Metadata)
	return &copied
}

func cloneMetadata(m *StackMetadata) *StackMetadata {
	if m == nil {
		return nil
	}
	copied := *m
	if m.Durability != nil {
		value := *m.Durability
		copied.Durability = &value
	}
	if m.Damage != nil {
		value := *m.Damage
		copied.Damage = &value
	}
	if m.Enchantments != nil {
		copied.Enchantments = append([]Enchantment(nil), m.Enchantments...)
	}
	if m.Lore != nil {
		copied.Lore = append([]string(nil), m.Lore...)
	}
	return &copied
}
