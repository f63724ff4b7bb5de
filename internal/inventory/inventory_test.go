package inventory

import (
	"reflect"
	"testing"
)

func TestNewInventoryCanonicalShape(t *testing.T) {
	inv := NewInventory()

	if len(inv.Slots) != StorageSlots {
		t.Fatalf("expected %d slots, got %d", StorageSlots, len(inv.Slots))
	}
	if len(inv.Hotbar) != HotbarSize {
		t.Fatalf("expected %d hotbar entries, got %d", HotbarSize, len(inv.Hotbar))
	}
	for i, value := range inv.Hotbar {
		if value != i {
			t.Fatalf("expected hotbar[%d]=%d, got %d", i, i, value)
		}
	}
	if inv.SelectedSlot != 0 {
		t.Fatalf("expected selected slot 0, got %d", inv.SelectedSlot)
	}
	if inv.OccupiedSlots() != 0 {
		t.Fatalf("expected an empty inventory, got %d occupied", inv.OccupiedSlots())
	}
}

func TestStarterInventoryUsesRegisteredItems(t *testing.T) {
	catalog := DefaultCatalog()
	inv := NewStarterInventory()

	for i, stack := range inv.Slots {
		if stack == nil {
			continue
		}
		if _, ok := catalog.Lookup(stack.ItemID); !ok {
			t.Fatalf("slot %d holds unregistered item %q", i, stack.ItemID)
		}
	}
	for _, piece := range inv.ArmorPieces() {
		if piece.Stack == nil {
			continue
		}
		if _, ok := catalog.Lookup(piece.Stack.ItemID); !ok {
			t.Fatalf("%s slot holds unregistered item %q", piece.Name, piece.Stack.ItemID)
		}
	}
	if inv.Offhand == nil {
		t.Fatalf("expected a starter offhand item")
	}
}

func TestCloneIsDeep(t *testing.T) {
	durability := 0.5
	damage := 10
	original := NewInventory()
	original.Slots[0] = &ItemStack{
		ItemID: "iron_sword",
		Count:  1,
		Metadata: &StackMetadata{
			Durability:   &durability,
			Damage:       &damage,
			Enchantments: []Enchantment{{ID: "sharpness", Level: 3}},
			Lore:         []string{"forged in testing"},
		},
	}
	original.Armor.Helmet = &ItemStack{ItemID: "iron_helmet", Count: 1}
	original.Offhand = &ItemStack{ItemID: "shield", Count: 1}

	cloned := original.Clone()
	if !reflect.DeepEqual(cloned, original) {
		t.Fatalf("clone must be structurally equal to the original")
	}

	cloned.Slots[0].Count = 64
	*cloned.Slots[0].Metadata.Durability = 0.1
	cloned.Slots[0].Metadata.Enchantments[0].Level = 5
	cloned.Slots[0].Metadata.Lore[0] = "changed"
	cloned.Hotbar[0] = 35
	cloned.Armor.Helmet.Count = 2
	cloned.Offhand.ItemID = "bow"

	if original.Slots[0].Count != 1 {
		t.Fatalf("mutating the clone changed the original count")
	}
	if *original.Slots[0].Metadata.Durability != 0.5 {
		t.Fatalf("mutating the clone changed the original durability")
	}
	if original.Slots[0].Metadata.Enchantments[0].Level != 3 {
		t.Fatalf("mutating the clone changed the original enchantments")
	}
	if original.Slots[0].Metadata.Lore[0] != "forged in testing" {
		t.Fatalf("mutating the clone changed the original lore")
	}
	if original.Hotbar[0] != 0 {
		t.Fatalf("mutating the clone changed the original hotbar")
	}
	if original.Armor.Helmet.Count != 1 {
		t.Fatalf("mutating the clone changed the original armor")
	}
	if original.Offhand.ItemID != "shield" {
		t.Fatalf("mutating the clone changed the original offhand")
	}
}

func TestCloneNilStack(t *testing.T) {
	var stack *ItemStack
	if stack.Clone() != nil {
		t.Fatalf("cloning a nil stack must yield nil")
	}
}

func TestAccessorCounts(t *testing.T) {
	inv := NewInventory()
	inv.Slots[0] = &ItemStack{ItemID: "stone", Count: 64}
	inv.Slots[1] = &ItemStack{ItemID: "stone", Count: 10}
	inv.Slots[2] = &ItemStack{ItemID: "bread", Count: 8}

	if inv.OccupiedSlots() != 3 {
		t.Fatalf("expected 3 occupied slots, got %d", inv.OccupiedSlots())
	}
	if inv.EmptySlots() != 33 {
		t.Fatalf("expected 33 empty slots, got %d", inv.EmptySlots())
	}
	if inv.UniqueItems() != 2 {
		t.Fatalf("expected 2 unique items, got %d", inv.UniqueItems())
	}
	if inv.TotalItems() != 82 {
		t.Fatalf("expected 82 total items, got %d", inv.TotalItems())
	}
}

func TestArmorPiecesCanonicalOrder(t *testing.T) {
	inv := NewInventory()
	pieces := inv.ArmorPieces()

	want := []string{ArmorSlotHelmet, ArmorSlotChestplate, ArmorSlotLeggings, ArmorSlotBoots}
	if len(pieces) != len(want) {
		t.Fatalf("expected %d pieces, got %d", len(want), len(pieces))
	}
	for i, piece := range pieces {
		if piece.Name != want[i] {
			t.Fatalf("expected piece %d to be %s, got %s", i, want[i], piece.Name)
		}
	}
}
