package validation

import (
	"strings"

	"blockhold/server/internal/inventory"
)

// Detectors are total, side-effect-free functions over an inventory
// snapshot. Each classifies first and renders second; none of them can
// fail, an invalid inventory simply yields violations.

func classifySlotCount(inv inventory.Inventory) outcome {
	if len(inv.Slots) != inventory.StorageSlots {
		return invalidSlotCount{detected: len(inv.Slots)}
	}
	return outcomeValid{}
}

func detectSlotCount(inv inventory.Inventory) []Violation {
	return renderAll([]outcome{classifySlotCount(inv)})
}

func classifyStackSizes(inv inventory.Inventory) []outcome {
	var outcomes []outcome
	for i, stack := range inv.Slots {
		if stack == nil {
			continue
		}
		if stack.Count < inventory.MinStackCount || stack.Count > inventory.MaxStackCount {
			outcomes = append(outcomes, invalidStackSize{slot: i, count: stack.Count})
		}
	}
	return outcomes
}

func detectStackSizes(inv inventory.Inventory) []Violation {
	return renderAll(classifyStackSizes(inv))
}

func classifyHotbarLength(inv inventory.Inventory) outcome {
	if len(inv.Hotbar) != inventory.HotbarSize {
		return invalidHotbarLength{detected: len(inv.Hotbar)}
	}
	return outcomeValid{}
}

// classifyHotbarDuplicates reports each duplicated storage index once, in
// first-occurrence order.
func classifyHotbarDuplicates(inv inventory.Inventory) outcome {
	seen := make(map[int]int, len(inv.Hotbar))
	var duplicates []int
	for _, value := range inv.Hotbar {
		seen[value]++
		if seen[value] == 2 {
			duplicates = append(duplicates, value)
		}
	}
	if len(duplicates) > 0 {
		return duplicateHotbarSlot{duplicates: duplicates}
	}
	return outcomeValid{}
}

func classifyHotbarBounds(inv inventory.Inventory) outcome {
	var offenders []int
	for _, value := range inv.Hotbar {
		if value < 0 || value >= inventory.StorageSlots {
			offenders = append(offenders, value)
		}
	}
	if len(offenders) > 0 {
		return hotbarSlotOutOfBounds{values: offenders}
	}
	return outcomeValid{}
}

func detectHotbar(inv inventory.Inventory) []Violation {
	return renderAll([]outcome{
		classifyHotbarLength(inv),
		classifyHotbarDuplicates(inv),
		classifyHotbarBounds(inv),
	})
}

func classifySelectedSlot(inv inventory.Inventory) outcome {
	if inv.SelectedSlot < 0 || inv.SelectedSlot >= inventory.HotbarSize {
		return invalidSelectedSlot{detected: inv.SelectedSlot}
	}
	return outcomeValid{}
}

func detectSelectedSlot(inv inventory.Inventory) []Violation {
	return renderAll([]outcome{classifySelectedSlot(inv)})
}

// classifyArmor checks each worn piece: an item is valid for an armor slot
// iff its id contains the slot name as a substring. Equipment swaps are
// never automated.
func classifyArmor(inv inventory.Inventory) []outcome {
	var outcomes []outcome
	for _, piece := range inv.ArmorPieces() {
		if piece.Stack == nil {
			continue
		}
		if !containsSlotName(piece.Stack.ItemID, piece.Name) {
			outcomes = append(outcomes, invalidArmorSlot{slotName: piece.Name, itemID: piece.Stack.ItemID})
		}
	}
	return outcomes
}

func detectArmor(inv inventory.Inventory) []Violation {
	return renderAll(classifyArmor(inv))
}

func classifyMetadata(inv inventory.Inventory) []outcome {
	var outcomes []outcome
	for i, stack := range inv.Slots {
		if stack == nil || stack.Metadata == nil {
			continue
		}
		for _, enchant := range stack.Metadata.Enchantments {
			if enchant.Level < inventory.MinEnchantLevel || enchant.Level > inventory.MaxEnchantLevel {
				outcomes = append(outcomes, invalidEnchantmentLevel{slot: i, enchant: enchant.ID, level: enchant.Level})
			}
		}
		if stack.Metadata.Damage != nil {
			if damage := *stack.Metadata.Damage; damage < 0 || damage > inventory.MaxDamage {
				outcomes = append(outcomes, invalidDamageValue{slot: i, damage: damage})
			}
		}
	}
	return outcomes
}

func detectMetadata(inv inventory.Inventory) []Violation {
	return renderAll(classifyMetadata(inv))
}

func classifyDurability(inv inventory.Inventory) []outcome {
	var outcomes []outcome
	for i, stack := range inv.Slots {
		if stack == nil || stack.Metadata == nil || stack.Metadata.Durability == nil {
			continue
		}
		if value := *stack.Metadata.Durability; value < 0 || value > 1 {
			outcomes = append(outcomes, invalidDurability{slot: i, value: value})
		}
	}
	return outcomes
}

func detectDurability(inv inventory.Inventory) []Violation {
	return renderAll(classifyDurability(inv))
}

func classifyRegistry(inv inventory.Inventory, catalog inventory.CatalogView) []outcome {
	if catalog == nil {
		return nil
	}
	var outcomes []outcome
	for i, stack := range inv.Slots {
		if stack == nil {
			continue
		}
		if _, ok := catalog.Lookup(stack.ItemID); !ok {
			outcomes = append(outcomes, unknownItem{slot: i, itemID: stack.ItemID})
		}
	}
	return outcomes
}

func detectRegistry(inv inventory.Inventory, catalog inventory.CatalogView) []Violation {
	return renderAll(classifyRegistry(inv, catalog))
}

// containsSlotName matches armor items by id substring, e.g. "iron_helmet"
// is valid for the helmet slot.
func containsSlotName(id inventory.ItemID, slotName string) bool {
	return strings.Contains(id, slotName)
}
