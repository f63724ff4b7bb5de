package validation

import (
	"fmt"
	"sort"
	"strings"

	"blockhold/server/internal/inventory"
)

// Each rule first classifies into a closed outcome value, then the outcome
// is rendered into zero or one Violation. The outcome interface is sealed:
// adding a failure shape means adding a case to renderOutcome, and the
// panic default makes a forgotten case impossible to miss.
type outcome interface {
	isOutcome()
}

type outcomeValid struct{}

type invalidSlotCount struct {
	detected int
}

type invalidStackSize struct {
	slot  int
	count int
}

type invalidHotbarLength struct {
	detected int
}

type duplicateHotbarSlot struct {
	duplicates []int
}

type hotbarSlotOutOfBounds struct {
	values []int
}

type invalidSelectedSlot struct {
	detected int
}

type invalidArmorSlot struct {
	slotName string
	itemID   inventory.ItemID
}

type invalidEnchantmentLevel struct {
	slot    int
	enchant string
	level   int
}

type invalidDamageValue struct {
	slot   int
	damage int
}

type invalidDurability struct {
	slot  int
	value float64
}

type unknownItem struct {
	slot   int
	itemID inventory.ItemID
}

func (outcomeValid) isOutcome()            {}
func (invalidSlotCount) isOutcome()        {}
func (invalidStackSize) isOutcome()        {}
func (invalidHotbarLength) isOutcome()     {}
func (duplicateHotbarSlot) isOutcome()     {}
func (hotbarSlotOutOfBounds) isOutcome()   {}
func (invalidSelectedSlot) isOutcome()     {}
func (invalidArmorSlot) isOutcome()        {}
func (invalidEnchantmentLevel) isOutcome() {}
func (invalidDamageValue) isOutcome()      {}
func (invalidDurability) isOutcome()       {}
func (unknownItem) isOutcome()             {}

// renderOutcome converts an outcome into its violation. The second return
// is false only for the valid case.
func renderOutcome(o outcome) (Violation, bool) {
	switch v := o.(type) {
	case outcomeValid:
		return Violation{}, false

	case invalidSlotCount:
		return Violation{
			Type:           ViolationInvalidSlotCount,
			Severity:       SeverityCritical,
			Description:    fmt.Sprintf("inventory has %d storage slots, expected %d", v.detected, inventory.StorageSlots),
			AffectedSlots:  []int{},
			DetectedValue:  v.detected,
			ExpectedValue:  inventory.StorageSlots,
			CanAutoCorrect: false,
		}, true

	case invalidStackSize:
		return Violation{
			Type:     ViolationInvalidStackSize,
			Severity: SeverityError,
			Description: fmt.Sprintf("slot %d holds a stack of %d, allowed range is %d-%d",
				v.slot, v.count, inventory.MinStackCount, inventory.MaxStackCount),
			AffectedSlots:  []int{v.slot},
			DetectedValue:  v.count,
			ExpectedValue:  clampInt(v.count, inventory.MinStackCount, inventory.MaxStackCount),
			CanAutoCorrect: true,
		}, true

	case invalidHotbarLength:
		return Violation{
			Type:           ViolationInvalidHotbarLength,
			Severity:       SeverityError,
			Description:    fmt.Sprintf("hotbar has %d entries, expected %d", v.detected, inventory.HotbarSize),
			AffectedSlots:  []int{},
			DetectedValue:  v.detected,
			ExpectedValue:  inventory.HotbarSize,
			CanAutoCorrect: true,
		}, true

	case duplicateHotbarSlot:
		return Violation{
			Type:           ViolationDuplicateHotbarSlot,
			Severity:       SeverityError,
			Description:    fmt.Sprintf("hotbar references storage slots more than once: %s", formatInts(v.duplicates)),
			AffectedSlots:  append([]int(nil), v.duplicates...),
			DetectedValue:  append([]int(nil), v.duplicates...),
			CanAutoCorrect: true,
		}, true

	case hotbarSlotOutOfBounds:
		return Violation{
			Type:     ViolationHotbarSlotOutOfBounds,
			Severity: SeverityError,
			Description: fmt.Sprintf("hotbar references storage slots outside 0-%d: %s",
				inventory.StorageSlots-1, formatInts(v.values)),
			AffectedSlots:  append([]int(nil), v.values...),
			DetectedValue:  append([]int(nil), v.values...),
			CanAutoCorrect: true,
		}, true

	case invalidSelectedSlot:
		return Violation{
			Type:     ViolationInvalidSelectedSlot,
			Severity: SeverityError,
			Description: fmt.Sprintf("selected hotbar slot is %d, allowed range is 0-%d",
				v.detected, inventory.HotbarSize-1),
			AffectedSlots:  []int{},
			DetectedValue:  v.detected,
			ExpectedValue:  clampInt(v.detected, 0, inventory.HotbarSize-1),
			CanAutoCorrect: true,
		}, true

	case invalidArmorSlot:
		return Violation{
			Type:           ViolationInvalidArmorSlot,
			Severity:       SeverityError,
			Description:    fmt.Sprintf("item %q does not belong in the %s slot", v.itemID, v.slotName),
			AffectedSlots:  []int{},
			DetectedValue:  v.itemID,
			ExpectedValue:  v.slotName,
			CanAutoCorrect: false,
		}, true

	case invalidEnchantmentLevel:
		return Violation{
			Type:     ViolationInvalidEnchantmentLevel,
			Severity: SeverityWarning,
			Description: fmt.Sprintf("slot %d enchantment %q has level %d, allowed range is %d-%d",
				v.slot, v.enchant, v.level, inventory.MinEnchantLevel, inventory.MaxEnchantLevel),
			AffectedSlots:  []int{v.slot},
			DetectedValue:  v.level,
			ExpectedValue:  clampInt(v.level, inventory.MinEnchantLevel, inventory.MaxEnchantLevel),
			CanAutoCorrect: true,
		}, true

	case invalidDamageValue:
		return Violation{
			Type:     ViolationInvalidDamageValue,
			Severity: SeverityWarning,
			Description: fmt.Sprintf("slot %d has damage %d, allowed range is 0-%d",
				v.slot, v.damage, inventory.MaxDamage),
			AffectedSlots:  []int{v.slot},
			DetectedValue:  v.damage,
			ExpectedValue:  clampInt(v.damage, 0, inventory.MaxDamage),
			CanAutoCorrect: true,
		}, true

	case invalidDurability:
		return Violation{
			Type:           ViolationInvalidDurability,
			Severity:       SeverityError,
			Description:    fmt.Sprintf("slot %d has durability %g, allowed range is 0-1", v.slot, v.value),
			AffectedSlots:  []int{v.slot},
			DetectedValue:  v.value,
			ExpectedValue:  clampFloat(v.value, 0, 1),
			CanAutoCorrect: true,
		}, true

	case unknownItem:
		return Violation{
			Type:           ViolationUnknownItem,
			Severity:       SeverityWarning,
			Description:    fmt.Sprintf("slot %d holds unregistered item %q", v.slot, v.itemID),
			AffectedSlots:  []int{v.slot},
			DetectedValue:  v.itemID,
			CanAutoCorrect: false,
		}, true

	default:
		panic(fmt.Sprintf("validation: unhandled outcome %T", o))
	}
}

func renderAll(outcomes []outcome) []Violation {
	violations := make([]Violation, 0, len(outcomes))
	for _, o := range outcomes {
		if violation, ok := renderOutcome(o); ok {
			violations = append(violations, violation)
		}
	}
	return violations
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatInts(values []int) string {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
