package inventory

// NewInventory returns an empty inventory in the canonical shape: 36 nil
// storage slots, hotbar pointing at slots 0-8, selected slot 0.
func NewInventory() Inventory {
	hotbar := make([]int, HotbarSize)
	for i := range hotbar {
		hotbar[i] = i
	}
	return Inventory{
		Slots:  make([]*ItemStack, StorageSlots),
		Hotbar: hotbar,
	}
}

// NewStarterInventory returns the survival loadout handed to new players.
func NewStarterInventory() Inventory {
	inv := NewInventory()
	inv.Slots[0] = &ItemStack{ItemID: "wooden_pickaxe", Count: 1}
	inv.Slots[1] = &ItemStack{ItemID: "iron_sword", Count: 1}
	inv.Slots[2] = &ItemStack{ItemID: "torch", Count: 16}
	inv.Slots[3] = &ItemStack{ItemID: "bread", Count: 8}
	inv.Slots[4] = &ItemStack{ItemID: "oak_planks", Count: 32}
	inv.Armor.Chestplate = &ItemStack{ItemID: "leather_chestplate", Count: 1}
	inv.Offhand = &ItemStack{ItemID: "shield", Count: 1}
	return inv
}
