package validation

import (
	"math"
	"testing"

	"blockhold/server/internal/inventory"
)

func TestHealthyInventoryScoresFull(t *testing.T) {
	report := CalculateHealthScore(inventory.NewStarterInventory())

	if report.Score != 100 {
		t.Fatalf("expected score 100, got %d", report.Score)
	}
	if len(report.Factors) != 4 {
		t.Fatalf("expected four factors, got %d", len(report.Factors))
	}
	for _, factor := range report.Factors {
		if factor.Score != 100 {
			t.Fatalf("factor %s: expected 100, got %d", factor.Name, factor.Score)
		}
	}
	if len(report.Suggestions) != 0 {
		t.Fatalf("a perfect score needs no suggestions, got %v", report.Suggestions)
	}
}

func TestFactorWeightsSumToOne(t *testing.T) {
	report := CalculateHealthScore(inventory.NewInventory())
	total := 0.0
	for _, factor := range report.Factors {
		total += factor.Weight
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Fatalf("expected weights to sum to 1.0, got %g", total)
	}
}

func TestBrokenStructureZeroesTheStructureFactor(t *testing.T) {
	inv := inventory.NewStarterInventory()
	inv.Slots = inv.Slots[:35]

	report := CalculateHealthScore(inv)

	if report.Score != 70 {
		t.Fatalf("expected weighted score 70 with a broken structure, got %d", report.Score)
	}
	if factorScore(t, report, FactorStructureIntegrity) != 0 {
		t.Fatalf("expected structure factor 0")
	}
	if len(report.Suggestions) == 0 {
		t.Fatalf("expected improvement suggestions below the threshold")
	}
}

func TestConsistencyIsFractionOfCleanStacks(t *testing.T) {
	inv := inventory.NewInventory()
	inv.Slots[0] = &inventory.ItemStack{ItemID: "stone", Count: 64}
	inv.Slots[1] = &inventory.ItemStack{ItemID: "stone", Count: 99}

	report := CalculateHealthScore(inv)
	if got := factorScore(t, report, FactorDataConsistency); got != 50 {
		t.Fatalf("expected consistency 50 with 1 of 2 stacks clean, got %d", got)
	}
}

func TestFragmentationLowersOptimization(t *testing.T) {
	inv := inventory.NewInventory()
	inv.Slots[0] = &inventory.ItemStack{ItemID: "stone", Count: 10}
	inv.Slots[1] = &inventory.ItemStack{ItemID: "stone", Count: 10}
	inv.Slots[2] = &inventory.ItemStack{ItemID: "stone", Count: 10}

	report := CalculateHealthScore(inv)
	if got := factorScore(t, report, FactorOptimizationLevel); got != 80 {
		t.Fatalf("expected optimization 80 with three partial stone stacks, got %d", got)
	}
}

func TestFullStacksDoNotCountAsFragmentation(t *testing.T) {
	inv := inventory.NewInventory()
	inv.Slots[0] = &inventory.ItemStack{ItemID: "stone", Count: 64}
	inv.Slots[1] = &inventory.ItemStack{ItemID: "stone", Count: 64}
	inv.Slots[2] = &inventory.ItemStack{ItemID: "stone", Count: 10}

	report := CalculateHealthScore(inv)
	if got := factorScore(t, report, FactorOptimizationLevel); got != 100 {
		t.Fatalf("expected optimization 100 with a single partial stack, got %d", got)
	}
}

func TestHotbarDuplicatesLowerUsability(t *testing.T) {
	inv := inventory.NewInventory()
	inv.Hotbar = []int{0, 0, 2, 3, 4, 5, 6, 7, 8}

	report := CalculateHealthScore(inv)
	if got := factorScore(t, report, FactorUsability); got != 93 {
		t.Fatalf("expected usability 93 with one duplicate binding, got %d", got)
	}
}

func TestEngineDelegatesToStandaloneScore(t *testing.T) {
	engine := NewEngine(inventory.DefaultCatalog(), nil)
	inv := inventory.NewStarterInventory()

	fromEngine := engine.CalculateHealthScore(inv)
	standalone := CalculateHealthScore(inv)

	if fromEngine.Score != standalone.Score {
		t.Fatalf("engine score %d differs from standalone %d", fromEngine.Score, standalone.Score)
	}
}

func factorScore(t *testing.T, report HealthReport, name string) int {
	t.Helper()
	for _, factor := range report.Factors {
		if factor.Name == name {
			return factor.Score
		}
	}
	t.Fatalf("factor %s missing from report", name)
	return 0
}
