package validation

import (
	"context"
	"fmt"
	"sort"

	"blockhold/server/internal/inventory"
	"blockhold/server/logging/integrity"
)

// FunctionalityImpact grades how disruptive an auto-correction run was.
type FunctionalityImpact string

const (
	FunctionalityImpactNone     FunctionalityImpact = "NONE"
	FunctionalityImpactMinor    FunctionalityImpact = "MINOR"
	FunctionalityImpactModerate FunctionalityImpact = "MODERATE"
	FunctionalityImpactMajor    FunctionalityImpact = "MAJOR"
)

// FailedCorrection records a suggestion the executor could not apply.
type FailedCorrection struct {
	Suggestion CorrectionSuggestion `json:"suggestion"`
	Reason     string               `json:"reason"`
}

// ImpactAnalysis summarizes what an auto-correction run touched.
type ImpactAnalysis struct {
	ItemsAffected       int                 `json:"itemsAffected"`
	SlotsModified       []int               `json:"slotsModified"`
	FunctionalityImpact FunctionalityImpact `json:"functionalityImpact"`
}

// CorrectionReport is the outcome of one auto-correction run.
type CorrectionReport struct {
	CorrectedInventory inventory.Inventory    `json:"correctedInventory"`
	AppliedCorrections []CorrectionSuggestion `json:"appliedCorrections"`
	FailedCorrections  []FailedCorrection     `json:"failedCorrections"`
	ImpactAnalysis     ImpactAnalysis         `json:"impactAnalysis"`
}

// AutoCorrectIssues applies suggestions strictly left to right: each
// applied suggestion's output inventory is the input to the next, so two
// corrections touching the same slot compose instead of overwriting each
// other. A failed suggestion is recorded with its reason and processing
// continues. With dryRun the input inventory is returned untouched while
// the report still lists every suggestion a real run would attempt.
func (e *Engine) AutoCorrectIssues(ctx context.Context, inv inventory.Inventory, suggestions []CorrectionSuggestion, dryRun bool) CorrectionReport {
	working := inv.Clone()
	applied := []CorrectionSuggestion{}
	failed := []FailedCorrection{}
	modified := map[int]bool{}
	itemsAffected := 0
	stepsApplied := 0

	for _, suggestion := range suggestions {
		if !suggestion.Automated {
			failed = append(failed, FailedCorrection{
				Suggestion: suggestion,
				Reason:     "suggestion requires operator action",
			})
			continue
		}
		if dryRun {
			applied = append(applied, suggestion)
			continue
		}

		// apply to a scratch copy so a failing step leaves the
		// accumulator untouched
		scratch := working.Clone()
		touched, err := applySuggestion(&scratch, suggestion)
		if err != nil {
			failed = append(failed, FailedCorrection{Suggestion: suggestion, Reason: err.Error()})
			integrity.CorrectionFailed(ctx, e.publisher, sweepFrom(ctx), actorFrom(ctx),
				integrity.CorrectionFailedPayload{
					Description: suggestion.Description,
					Reason:      err.Error(),
				})
			continue
		}
		working = scratch
		applied = append(applied, suggestion)
		stepsApplied += len(suggestion.Steps)
		for _, slot := range touched {
			if !modified[slot] {
				modified[slot] = true
				itemsAffected++
			}
		}
	}

	corrected := working
	if dryRun {
		corrected = inv.Clone()
	}

	report := CorrectionReport{
		CorrectedInventory: corrected,
		AppliedCorrections: applied,
		FailedCorrections:  failed,
		ImpactAnalysis: ImpactAnalysis{
			ItemsAffected:       itemsAffected,
			SlotsModified:       sortedKeys(modified),
			FunctionalityImpact: gradeImpact(len(applied), dryRun),
		},
	}

	integrity.CorrectionsApplied(ctx, e.publisher, sweepFrom(ctx), actorFrom(ctx),
		integrity.CorrectionsAppliedPayload{
			Applied: len(applied),
			Failed:  len(failed),
			DryRun:  dryRun,
		})
	return report
}

// applySuggestion runs the suggestion's steps in order against inv and
// returns the storage slots it touched.
func applySuggestion(inv *inventory.Inventory, suggestion CorrectionSuggestion) ([]int, error) {
	if len(suggestion.Steps) == 0 {
		return nil, fmt.Errorf("suggestion has no correction steps")
	}
	var touched []int
	for _, step := range suggestion.Steps {
		slots, err := applyStep(inv, step)
		if err != nil {
			return nil, err
		}
		touched = append(touched, slots...)
	}
	return touched, nil
}

func applyStep(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	switch {
	case step.Action == ActionUpdate && step.Target == TargetSlot:
		return updateSlotCount(inv, step)
	case step.Action == ActionUpdate && step.Target == TargetMetadata:
		return updateSlotMetadata(inv, step)
	case step.Action == ActionRemove && step.Target == TargetSlot:
		return removeSlot(inv, step)
	case step.Action == ActionRemove && step.Target == TargetMetadata:
		return removeMetadata(inv, step)
	case step.Action == ActionMove && step.Target == TargetSlot:
		return moveSlot(inv, step)
	case step.Action == ActionReset && step.Target == TargetHotbar:
		return resetHotbar(inv, step)
	case step.Action == ActionUpdate && step.Target == TargetHotbar:
		return updateSelectedSlot(inv, step)
	default:
		return nil, fmt.Errorf("unsupported correction step %s/%s", step.Action, step.Target)
	}
}

func updateSlotCount(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	slot, err := requireSlot(inv, step)
	if err != nil {
		return nil, err
	}
	switch value := step.NewValue.(type) {
	case int:
		if value < inventory.MinStackCount || value > inventory.MaxStackCount {
			return nil, fmt.Errorf("slot %d: corrected count %d outside %d-%d",
				slot, value, inventory.MinStackCount, inventory.MaxStackCount)
		}
		stack := inv.Slots[slot].Clone()
		stack.Count = value
		inv.Slots[slot] = stack
	case *inventory.ItemStack:
		inv.Slots[slot] = value.Clone()
	default:
		return nil, fmt.Errorf("slot %d: unsupported slot update value %T", slot, step.NewValue)
	}
	return []int{slot}, nil
}

func updateSlotMetadata(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	slot, err := requireSlot(inv, step)
	if err != nil {
		return nil, err
	}
	metadata, ok := step.NewValue.(*inventory.StackMetadata)
	if !ok {
		return nil, fmt.Errorf("slot %d: unsupported metadata update value %T", slot, step.NewValue)
	}
	stack := inv.Slots[slot].Clone()
	stack.Metadata = metadata
	inv.Slots[slot] = stack.Clone()
	return []int{slot}, nil
}

func removeSlot(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	slot, err := requireSlotIndex(inv, step)
	if err != nil {
		return nil, err
	}
	inv.Slots[slot] = nil
	return []int{slot}, nil
}

func removeMetadata(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	slot, err := requireSlot(inv, step)
	if err != nil {
		return nil, err
	}
	stack := inv.Slots[slot].Clone()
	stack.Metadata = nil
	inv.Slots[slot] = stack
	return []int{slot}, nil
}

func moveSlot(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	from, err := requireSlot(inv, step)
	if err != nil {
		return nil, err
	}
	to, ok := step.NewValue.(int)
	if !ok {
		return nil, fmt.Errorf("slot %d: move needs an integer destination, got %T", from, step.NewValue)
	}
	if to < 0 || to >= len(inv.Slots) {
		return nil, fmt.Errorf("move destination %d out of range", to)
	}
	if inv.Slots[to] != nil {
		return nil, fmt.Errorf("move destination %d is occupied", to)
	}
	inv.Slots[to] = inv.Slots[from]
	inv.Slots[from] = nil
	return []int{from, to}, nil
}

func resetHotbar(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	switch value := step.NewValue.(type) {
	case nil:
		hotbar := make([]int, inventory.HotbarSize)
		for i := range hotbar {
			hotbar[i] = i
		}
		inv.Hotbar = hotbar
	case []int:
		if len(value) != inventory.HotbarSize {
			return nil, fmt.Errorf("hotbar replacement has %d entries, expected %d", len(value), inventory.HotbarSize)
		}
		inv.Hotbar = append([]int(nil), value...)
	default:
		return nil, fmt.Errorf("unsupported hotbar reset value %T", step.NewValue)
	}
	return nil, nil
}

func updateSelectedSlot(inv *inventory.Inventory, step CorrectionStep) ([]int, error) {
	value, ok := step.NewValue.(int)
	if !ok {
		return nil, fmt.Errorf("selected slot update needs an integer, got %T", step.NewValue)
	}
	if value < 0 || value >= inventory.HotbarSize {
		return nil, fmt.Errorf("selected slot %d outside 0-%d", value, inventory.HotbarSize-1)
	}
	inv.SelectedSlot = value
	return nil, nil
}

func requireSlot(inv *inventory.Inventory, step CorrectionStep) (int, error) {
	slot, err := requireSlotIndex(inv, step)
	if err != nil {
		return 0, err
	}
	if inv.Slots[slot] == nil {
		return 0, fmt.Errorf("slot %d is empty", slot)
	}
	return slot, nil
}

func requireSlotIndex(inv *inventory.Inventory, step CorrectionStep) (int, error) {
	if step.SlotIndex == nil {
		return 0, fmt.Errorf("correction step %s/%s is missing a slot index", step.Action, step.Target)
	}
	slot := *step.SlotIndex
	if slot < 0 || slot >= len(inv.Slots) {
		return 0, fmt.Errorf("slot index %d out of range", slot)
	}
	return slot, nil
}

func gradeImpact(applied int, dryRun bool) FunctionalityImpact {
	if dryRun && applied > 0 {
		// nothing actually changed, but grade what a real run would do
		return gradeImpact(applied, false)
	}
	switch {
	case applied == 0:
		return FunctionalityImpactNone
	case applied <= 2:
		return FunctionalityImpactMinor
	case applied <= 5:
		return FunctionalityImpactModerate
	default:
		return FunctionalityImpactMajor
	}
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
