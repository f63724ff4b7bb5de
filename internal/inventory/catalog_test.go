package inventory

import (
	"sort"
	"testing"
)

func TestRegisterRejectsEmptyID(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Register(ItemDefinition{Name: "Nameless"}); err == nil {
		t.Fatalf("expected an error for a definition without an id")
	}
}

func TestRegisterRejectsUnknownArmorSlot(t *testing.T) {
	catalog := NewCatalog()
	err := catalog.Register(ItemDefinition{
		ID:        "cursed_crown",
		Class:     ItemClassArmor,
		ArmorSlot: "head",
	})
	if err == nil {
		t.Fatalf("expected an error for an unknown armor slot")
	}
}

func TestRegisterReplacesExistingDefinition(t *testing.T) {
	catalog := NewCatalog(ItemDefinition{ID: "stone", Class: ItemClassBlock, Name: "Stone"})
	if err := catalog.Register(ItemDefinition{ID: "stone", Class: ItemClassBlock, Name: "Smooth Stone"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def, ok := catalog.Lookup("stone")
	if !ok {
		t.Fatalf("expected the definition to survive re-registration")
	}
	if def.Name != "Smooth Stone" {
		t.Fatalf("expected the definition replaced, got %q", def.Name)
	}
}

func TestLookupUnknownItem(t *testing.T) {
	catalog := DefaultCatalog()
	if _, ok := catalog.Lookup("mystery_orb"); ok {
		t.Fatalf("expected lookup miss for an unregistered item")
	}
}

func TestDefinitionsSortedByID(t *testing.T) {
	defs := DefaultCatalog().Definitions()
	if len(defs) == 0 {
		t.Fatalf("expected the default catalog to be populated")
	}
	sorted := sort.SliceIsSorted(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	if !sorted {
		t.Fatalf("expected definitions sorted by id")
	}
}

func TestDefaultCatalogArmorEntriesNameTheirSlot(t *testing.T) {
	for _, def := range DefaultCatalog().Definitions() {
		if def.Class != ItemClassArmor {
			continue
		}
		switch def.ArmorSlot {
		case ArmorSlotHelmet, ArmorSlotChestplate, ArmorSlotLeggings, ArmorSlotBoots:
		default:
			t.Fatalf("armor item %q has unexpected slot %q", def.ID, def.ArmorSlot)
		}
	}
}
