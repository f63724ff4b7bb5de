package validation

import (
	"context"
	"reflect"
	"testing"

	"blockhold/server/internal/inventory"
	"blockhold/server/logging/integrity"
)

func TestDryRunLeavesInventoryUntouched(t *testing.T) {
	engine := NewEngine(inventory.DefaultCatalog(), nil)
	inv := validTestInventory()
	inv.Slots[0] = &inventory.ItemStack{ItemID: "stone", Count: 70}

	result := engine.ValidateInventory(context.Background(), inv, DefaultOptions())
	if len(result.CorrectionSuggestions) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(result.CorrectionSuggestions))
	}

	report := engine.AutoCorrectIssues(context.Background(), inv, result.CorrectionSuggestions, true)

	if !reflect.DeepEqual(report.CorrectedInventory, inv) {
		t.Fatalf("dry run must return a structurally equal inventory")
	}
	if len(report.AppliedCorrections) != 1 {
		t.Fatalf("dry run must still list would-be corrections, got %d", len(report.AppliedCorrections))
	}
	if len(report.FailedCorrections) != 0 {
		t.Fatalf("expected no failures, got %+v", report.FailedCorrections)
	}
	if report.ImpactAnalysis.FunctionalityImpact != FunctionalityImpactMinor {
		t.Fatalf("dry run should grade what a real run would do, got %s", report.ImpactAnalysis.FunctionalityImpact)
	}
}

func TestAutoCorrectClampsStackAndPreservesInput(t *testing.T) {
	engine := NewEngine(inventory.DefaultCatalog(), nil)
	inv := validTestInventory()
	inv.Slots[0] = &inventory.ItemStack{ItemID: "stone", Count: 70}

	result := engine.ValidateInventory(context.Background(), inv, DefaultOptions())
	report := engine.AutoCorrectIssues(context.Background(), inv, result.CorrectionSuggestions, false)

	if report.CorrectedInventory.Slots[0].Count != 64 {
		t.Fatalf("expected corrected count 64, got %d", report.CorrectedInventory.Slots[0].Count)
	}
	if inv.Slots[0].Count != 70 {
		t.Fatalf("input inventory must stay untouched, got count %d", inv.Slots[0].Count)
	}
	if !reflect.DeepEqual(report.ImpactAnalysis.SlotsModified, []int{0}) {
		t.Fatalf("expected slots modified [0], got %v", report.ImpactAnalysis.SlotsModified)
	}
	if report.ImpactAnalysis.ItemsAffected != 1 {
		t.Fatalf("expected 1 item affected, got %d", report.ImpactAnalysis.ItemsAffected)
	}
}

func TestCorrectionsOnSameSlotCompose(t *testing.T) {
	durability := 1.5
	engine := NewEngine(inventory.DefaultCatalog(), nil)
	inv := validTestInventory()
	inv.Slots[2] = &inventory.ItemStack{
		ItemID:   "iron_pickaxe",
		Count:    70,
		Metadata: &inventory.StackMetadata{Durability: &durability},
	}

	result := engine.ValidateInventory(context.Background(), inv, DefaultOptions())
	if len(result.CorrectionSuggestions) != 2 {
		t.Fatalf("expected two suggestions for the same slot, got %d", len(result.CorrectionSuggestions))
	}

	report := engine.AutoCorrectIssues(context.Background(), inv, result.CorrectionSuggestions, false)

	corrected := report.CorrectedInventory.Slots[2]
	if corrected.Count != 64 {
		t.Fatalf("expected the count clamp to survive, got %d", corrected.Count)
	}
	if corrected.Metadata == nil || corrected.Metadata.Durability == nil || *corrected.Metadata.Durability != 1.0 {
		t.Fatalf("expected the durability clamp to survive, got %+v", corrected.Metadata)
	}
	if len(report.AppliedCorrections) != 2 {
		t.Fatalf("expected both corrections applied, got %d", len(report.AppliedCorrections))
	}
	if report.ImpactAnalysis.ItemsAffected != 1 {
		t.Fatalf("the same slot counts once, got %d", report.ImpactAnalysis.ItemsAffected)
	}
}

func TestFailedCorrectionDoesNotStopTheRun(t *testing.T) {
	recorder := &recordingPublisher{}
	engine := NewEngine(inventory.DefaultCatalog(), recorder)
	inv := validTestInventory()
	inv.Slots[0] = &inventory.ItemStack{ItemID: "stone", Count: 70}

	emptySlot := 5
	suggestions := []CorrectionSuggestion{
		{
			ViolationType: ViolationInvalidStackSize,
			Description:   "clamp a stack in an empty slot",
			Automated:     true,
			Impact:        SuggestionImpactLow,
			Steps: []CorrectionStep{{
				Action:    ActionUpdate,
				Target:    TargetSlot,
				SlotIndex: &emptySlot,
				NewValue:  64,
			}},
		},
		{
			ViolationType: ViolationInvalidStackSize,
			Description:   "clamp the overflowing stack",
			Automated:     true,
			Impact:        SuggestionImpactLow,
			Steps: []CorrectionStep{{
				Action:    ActionUpdate,
				Target:    TargetSlot,
				SlotIndex: intPtr(0),
				NewValue:  64,
			}},
		},
	}

	report := engine.AutoCorrectIssues(context.Background(), inv, suggestions, false)

	if len(report.FailedCorrections) != 1 {
		t.Fatalf("expected one failure, got %d", len(report.FailedCorrections))
	}
	if report.FailedCorrections[0].Reason == "" {
		t.Fatalf("failures must carry a reason")
	}
	if len(report.AppliedCorrections) != 1 {
		t.Fatalf("the run must continue past a failure, got %d applied", len(report.AppliedCorrections))
	}
	if report.CorrectedInventory.Slots[0].Count != 64 {
		t.Fatalf("expected the later correction applied, got count %d", report.CorrectedInventory.Slots[0].Count)
	}

	var sawFailed, sawApplied bool
	for _, event := range recorder.Events() {
		switch event.Type {
		case integrity.EventCorrectionFailed:
			sawFailed = true
		case integrity.EventCorrectionsApplied:
			sawApplied = true
		}
	}
	if !sawFailed || !sawApplied {
		t.Fatalf("expected both failure and summary events, failed=%v applied=%v", sawFailed, sawApplied)
	}
}

func TestNonAutomatedSuggestionIsRejected(t *testing.T) {
	engine := NewEngine(inventory.DefaultCatalog(), nil)
	inv := validTestInventory()

	suggestions := []CorrectionSuggestion{{
		ViolationType: ViolationInvalidArmorSlot,
		Description:   "move the chestplate out of the helmet slot",
		Automated:     false,
	}}

	report := engine.AutoCorrectIssues(context.Background(), inv, suggestions, false)
	if len(report.FailedCorrections) != 1 {
		t.Fatalf("expected the manual suggestion rejected, got %+v", report)
	}
	if report.ImpactAnalysis.FunctionalityImpact != FunctionalityImpactNone {
		t.Fatalf("nothing applied means NONE impact, got %s", report.ImpactAnalysis.FunctionalityImpact)
	}
}

func TestHotbarResetAndSelectedSlotSteps(t *testing.T) {
	engine := NewEngine(inventory.DefaultCatalog(), nil)
	inv := validTestInventory()
	inv.Hotbar = []int{0, 0, 2, 3, 4, 5, 6, 7, 40}
	inv.SelectedSlot = 12

	result := engine.ValidateInventory(context.Background(), inv, DefaultOptions())
	report := engine.AutoCorrectIssues(context.Background(), inv, result.CorrectionSuggestions, false)

	corrected := report.CorrectedInventory
	if len(corrected.Hotbar) != inventory.HotbarSize {
		t.Fatalf("expected a full hotbar after repair, got %d entries", len(corrected.Hotbar))
	}
	seen := make(map[int]bool)
	for _, value := range corrected.Hotbar {
		if value < 0 || value >= inventory.StorageSlots || seen[value] {
			t.Fatalf("repaired hotbar is still invalid: %v", corrected.Hotbar)
		}
		seen[value] = true
	}
	if corrected.SelectedSlot < 0 || corrected.SelectedSlot >= inventory.HotbarSize {
		t.Fatalf("expected selected slot repaired, got %d", corrected.SelectedSlot)
	}
}

func TestMoveStepRejectsOccupiedDestination(t *testing.T) {
	inv := validTestInventory()
	step := CorrectionStep{
		Action:    ActionMove,
		Target:    TargetSlot,
		SlotIndex: intPtr(0),
		NewValue:  1,
	}
	if _, err := applyStep(&inv, step); err == nil {
		t.Fatalf("expected move into an occupied slot to fail")
	}

	step.NewValue = 10
	if _, err := applyStep(&inv, step); err != nil {
		t.Fatalf("expected move into an empty slot to succeed, got %v", err)
	}
	if inv.Slots[0] != nil || inv.Slots[10] == nil {
		t.Fatalf("move did not relocate the stack")
	}
}

func TestImpactGrading(t *testing.T) {
	for _, tc := range []struct {
		applied int
		want    FunctionalityImpact
	}{
		{0, FunctionalityImpactNone},
		{1, FunctionalityImpactMinor},
		{2, FunctionalityImpactMinor},
		{3, FunctionalityImpactModerate},
		{5, FunctionalityImpactModerate},
		{6, FunctionalityImpactMajor},
	} {
		if got := gradeImpact(tc.applied, false); got != tc.want {
			t.Fatalf("applied=%d: expected %s, got %s", tc.applied, tc.want, got)
		}
	}
}
