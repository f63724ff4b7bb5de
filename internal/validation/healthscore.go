package validation

import (
	"math"

	"blockhold/server/internal/inventory"
)

// Factor names and weights for the monitoring-oriented health score. This
// is deliberately a separate API from the summary heuristic: the summary
// answers "how bad is this result", the health score trends inventory
// quality over time.
const (
	FactorStructureIntegrity = "structureIntegrity"
	FactorDataConsistency    = "dataConsistency"
	FactorOptimizationLevel  = "optimizationLevel"
	FactorUsability          = "usability"

	weightStructure    = 0.30
	weightConsistency  = 0.20
	weightOptimization = 0.20
	weightUsability    = 0.30

	improvementThreshold = 80
)

// FactorScore is one weighted component of the health score.
type FactorScore struct {
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
}

// HealthReport is the weighted multi-factor score with its breakdown.
type HealthReport struct {
	Score       int           `json:"score"`
	Factors     []FactorScore `json:"factors"`
	Suggestions []string      `json:"suggestions"`
}

// CalculateHealthScore computes the four factor scores and their weighted
// sum, rounded to the nearest integer. Improvement suggestions are
// attached when the total falls below 80.
func (e *Engine) CalculateHealthScore(inv inventory.Inventory) HealthReport {
	return CalculateHealthScore(inv)
}

// CalculateHealthScore is the standalone form; it needs no engine state.
func CalculateHealthScore(inv inventory.Inventory) HealthReport {
	factors := []FactorScore{
		{Name: FactorStructureIntegrity, Score: scoreStructure(inv), Weight: weightStructure},
		{Name: FactorDataConsistency, Score: scoreConsistency(inv), Weight: weightConsistency},
		{Name: FactorOptimizationLevel, Score: scoreOptimization(inv), Weight: weightOptimization},
		{Name: FactorUsability, Score: scoreUsability(inv), Weight: weightUsability},
	}

	weighted := 0.0
	for _, factor := range factors {
		weighted += float64(factor.Score) * factor.Weight
	}
	total := int(math.Round(weighted))

	return HealthReport{
		Score:       total,
		Factors:     factors,
		Suggestions: improvementSuggestions(total, factors),
	}
}

// scoreStructure is all-or-nothing: the slot count invariant either holds
// or the inventory is structurally broken.
func scoreStructure(inv inventory.Inventory) int {
	if len(inv.Slots) == inventory.StorageSlots {
		return 100
	}
	return 0
}

// scoreConsistency is the fraction of occupied slots whose count and
// metadata values sit inside their allowed ranges.
func scoreConsistency(inv inventory.Inventory) int {
	occupied := 0
	consistent := 0
	for _, stack := range inv.Slots {
		if stack == nil {
			continue
		}
		occupied++
		if stackConsistent(stack) {
			consistent++
		}
	}
	if occupied == 0 {
		return 100
	}
	return clampInt(int(math.Round(float64(consistent)/float64(occupied)*100)), 0, 100)
}

func stackConsistent(stack *inventory.ItemStack) bool {
	if stack.Count < inventory.MinStackCount || stack.Count > inventory.MaxStackCount {
		return false
	}
	if stack.Metadata == nil {
		return true
	}
	for _, enchant := range stack.Metadata.Enchantments {
		if enchant.Level < inventory.MinEnchantLevel || enchant.Level > inventory.MaxEnchantLevel {
			return false
		}
	}
	if stack.Metadata.Damage != nil {
		if *stack.Metadata.Damage < 0 || *stack.Metadata.Damage > inventory.MaxDamage {
			return false
		}
	}
	if stack.Metadata.Durability != nil {
		if *stack.Metadata.Durability < 0 || *stack.Metadata.Durability > 1 {
			return false
		}
	}
	return true
}

// scoreOptimization penalizes fragmentation: multiple partial stacks of
// the same item that could be merged.
func scoreOptimization(inv inventory.Inventory) int {
	partials := make(map[inventory.ItemID]int)
	for _, stack := range inv.Slots {
		if stack == nil {
			continue
		}
		if stack.Count > 0 && stack.Count < inventory.MaxStackCount {
			partials[stack.ItemID]++
		}
	}
	penalty := 0
	for _, count := range partials {
		if count > 1 {
			penalty += (count - 1) * 10
		}
	}
	return clampInt(100-penalty, 0, 100)
}

// scoreUsability rewards a reachable hotbar: distinct in-range bindings, a
// valid selected slot, and headroom below the high-usage threshold.
func scoreUsability(inv inventory.Inventory) int {
	validBindings := 0
	seen := make(map[int]bool, len(inv.Hotbar))
	for _, value := range inv.Hotbar {
		if value >= 0 && value < inventory.StorageSlots && !seen[value] {
			validBindings++
		}
		seen[value] = true
	}
	score := int(math.Round(float64(validBindings) / float64(inventory.HotbarSize) * 60))
	if len(inv.Hotbar) != inventory.HotbarSize {
		score = min(score, 30)
	}
	if inv.SelectedSlot >= 0 && inv.SelectedSlot < inventory.HotbarSize {
		score += 20
	}
	if len(inv.Slots) == 0 || float64(inv.OccupiedSlots())/float64(max(len(inv.Slots), 1)) <= highUsageRatio {
		score += 20
	}
	return clampInt(score, 0, 100)
}

func improvementSuggestions(total int, factors []FactorScore) []string {
	if total >= improvementThreshold {
		return []string{}
	}
	suggestions := []string{}
	for _, factor := range factors {
		switch factor.Name {
		case FactorStructureIntegrity:
			if factor.Score < 100 {
				suggestions = append(suggestions, "restore the canonical 36-slot storage layout")
			}
		case FactorDataConsistency:
			if factor.Score < 100 {
				suggestions = append(suggestions, "repair out-of-range stack counts and metadata values")
			}
		case FactorOptimizationLevel:
			if factor.Score < improvementThreshold {
				suggestions = append(suggestions, "merge partial stacks of the same item")
			}
		case FactorUsability:
			if factor.Score < improvementThreshold {
				suggestions = append(suggestions, "rebind the hotbar and selected slot to reachable storage")
			}
		}
	}
	return suggestions
}
