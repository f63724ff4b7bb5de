package validation

import (
	"fmt"

	"blockhold/server/internal/inventory"
)

// highUsageRatio is the occupancy fraction above which a HIGH_USAGE
// warning is attached.
const highUsageRatio = 0.9

// assembleResult wraps detector output with derived warnings, correction
// suggestions and the summary.
func assembleResult(inv inventory.Inventory, violations []Violation) ValidationResult {
	if violations == nil {
		violations = []Violation{}
	}
	return ValidationResult{
		IsValid:               len(violations) == 0,
		Violations:            violations,
		Warnings:              deriveWarnings(inv),
		CorrectionSuggestions: buildSuggestions(inv, violations),
		ValidationSummary:     buildSummary(inv, violations),
	}
}

func deriveWarnings(inv inventory.Inventory) []Warning {
	warnings := []Warning{}
	if len(inv.Slots) > 0 {
		ratio := float64(inv.OccupiedSlots()) / float64(len(inv.Slots))
		if ratio > highUsageRatio {
			warnings = append(warnings, Warning{
				Type:        WarningHighUsage,
				Description: fmt.Sprintf("inventory is %.0f%% full; pickups will soon start failing", ratio*100),
				Impact:      ImpactPerformance,
			})
		}
	}
	return warnings
}

// buildSuggestions emits one suggestion per auto-correctable violation.
// Each suggestion carries a single step referencing the violation's first
// affected slot and expected value; the step target names the repair
// domain so the executor can apply it without guessing.
func buildSuggestions(inv inventory.Inventory, violations []Violation) []CorrectionSuggestion {
	suggestions := []CorrectionSuggestion{}
	for _, violation := range violations {
		if !violation.CanAutoCorrect {
			continue
		}
		if suggestion, ok := suggestFor(inv, violation); ok {
			suggestions = append(suggestions, suggestion)
		}
	}
	return suggestions
}

func suggestFor(inv inventory.Inventory, violation Violation) (CorrectionSuggestion, bool) {
	switch violation.Type {
	case ViolationInvalidStackSize:
		slot := firstAffected(violation)
		return CorrectionSuggestion{
			ViolationType: violation.Type,
			Description:   fmt.Sprintf("clamp stack count in slot %d to %v", slot, violation.ExpectedValue),
			Automated:     true,
			Impact:        SuggestionImpactLow,
			Steps: []CorrectionStep{{
				Action:    ActionUpdate,
				Target:    TargetSlot,
				SlotIndex: intPtr(slot),
				NewValue:  violation.ExpectedValue,
				Reason:    violation.Description,
			}},
		}, true

	case ViolationInvalidHotbarLength, ViolationDuplicateHotbarSlot, ViolationHotbarSlotOutOfBounds:
		return CorrectionSuggestion{
			ViolationType: violation.Type,
			Description:   "rebuild the hotbar with distinct in-range storage indices",
			Automated:     true,
			Impact:        SuggestionImpactMedium,
			Steps: []CorrectionStep{{
				Action:   ActionReset,
				Target:   TargetHotbar,
				NewValue: repairedHotbar(inv),
				Reason:   violation.Description,
			}},
		}, true

	case ViolationInvalidSelectedSlot:
		return CorrectionSuggestion{
			ViolationType: violation.Type,
			Description:   fmt.Sprintf("move the selected slot pointer to %v", violation.ExpectedValue),
			Automated:     true,
			Impact:        SuggestionImpactLow,
			Steps: []CorrectionStep{{
				Action:   ActionUpdate,
				Target:   TargetHotbar,
				NewValue: violation.ExpectedValue,
				Reason:   violation.Description,
			}},
		}, true

	case ViolationInvalidEnchantmentLevel, ViolationInvalidDamageValue, ViolationInvalidDurability:
		slot := firstAffected(violation)
		corrected, ok := repairedMetadata(inv, slot)
		if !ok {
			return CorrectionSuggestion{}, false
		}
		return CorrectionSuggestion{
			ViolationType: violation.Type,
			Description:   fmt.Sprintf("clamp metadata values on slot %d into their allowed ranges", slot),
			Automated:     true,
			Impact:        SuggestionImpactLow,
			Steps: []CorrectionStep{{
				Action:    ActionUpdate,
				Target:    TargetMetadata,
				SlotIndex: intPtr(slot),
				NewValue:  corrected,
				Reason:    violation.Description,
			}},
		}, true

	default:
		// auto-correctable kinds are enumerated above; anything else has
		// no automated recipe
		return CorrectionSuggestion{}, false
	}
}

// repairedHotbar derives a 9-entry hotbar from the current one: keeps the
// first occurrence of each in-range index, then fills gaps with the lowest
// unused storage indices.
func repairedHotbar(inv inventory.Inventory) []int {
	repaired := make([]int, 0, inventory.HotbarSize)
	used := make(map[int]bool, inventory.HotbarSize)
	for _, value := range inv.Hotbar {
		if len(repaired) == inventory.HotbarSize {
			break
		}
		if value < 0 || value >= inventory.StorageSlots || used[value] {
			continue
		}
		repaired = append(repaired, value)
		used[value] = true
	}
	for candidate := 0; len(repaired) < inventory.HotbarSize && candidate < inventory.StorageSlots; candidate++ {
		if !used[candidate] {
			repaired = append(repaired, candidate)
			used[candidate] = true
		}
	}
	return repaired
}

// repairedMetadata returns a copy of the slot's metadata with every
// out-of-range value clamped.
func repairedMetadata(inv inventory.Inventory, slot int) (*inventory.StackMetadata, bool) {
	if slot < 0 || slot >= len(inv.Slots) {
		return nil, false
	}
	stack := inv.Slots[slot]
	if stack == nil || stack.Metadata == nil {
		return nil, false
	}
	corrected := stack.Clone().Metadata
	for i, enchant := range corrected.Enchantments {
		corrected.Enchantments[i].Level = clampInt(enchant.Level, inventory.MinEnchantLevel, inventory.MaxEnchantLevel)
	}
	if corrected.Damage != nil {
		clamped := clampInt(*corrected.Damage, 0, inventory.MaxDamage)
		corrected.Damage = &clamped
	}
	if corrected.Durability != nil {
		clamped := clampFloat(*corrected.Durability, 0, 1)
		corrected.Durability = &clamped
	}
	return corrected, true
}

func buildSummary(inv inventory.Inventory, violations []Violation) ValidationSummary {
	actions := make([]string, 0, len(violations))
	for _, violation := range violations {
		actions = append(actions, violation.Description)
	}
	return ValidationSummary{
		TotalSlots:         len(inv.Slots),
		OccupiedSlots:      inv.OccupiedSlots(),
		EmptySlots:         inv.EmptySlots(),
		UniqueItems:        inv.UniqueItems(),
		TotalItems:         inv.TotalItems(),
		HealthScore:        heuristicScore(len(violations)),
		RecommendedActions: actions,
	}
}

// heuristicScore is the cheap monotone penalty used for inline feedback:
// 100 with no violations, minus 10 per violation, floored at 0.
func heuristicScore(violationCount int) int {
	if violationCount == 0 {
		return 100
	}
	return max(0, 100-10*violationCount)
}

func firstAffected(v Violation) int {
	if len(v.AffectedSlots) == 0 {
		return 0
	}
	return v.AffectedSlots[0]
}

func intPtr(v int) *int {
	return &v
}
