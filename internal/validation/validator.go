package validation

import (
	"context"
	"errors"
	"fmt"

	"blockhold/server/internal/inventory"
	"blockhold/server/logging"
	"blockhold/server/logging/integrity"
)

// ErrInvalidSlotIndex rejects single-slot validation calls with an index
// outside the canonical storage range. This is a caller-contract violation,
// not a data-quality finding, so it surfaces as an error rather than a
// Violation.
var ErrInvalidSlotIndex = errors.New("validation: slot index out of range")

// Validator is the capability set consumed by sweeps, admin tooling and
// pre-save hooks. Callers inject a concrete provider explicitly; there is
// no registry lookup.
type Validator interface {
	ValidateInventory(ctx context.Context, inv inventory.Inventory, opts ValidationOptions) ValidationResult
	ValidateSlot(ctx context.Context, inv inventory.Inventory, slotIndex int) ([]Violation, error)
	AutoCorrectIssues(ctx context.Context, inv inventory.Inventory, suggestions []CorrectionSuggestion, dryRun bool) CorrectionReport
	CalculateHealthScore(inv inventory.Inventory) HealthReport
}

// Engine is the stateless validation provider. Every operation is a pure
// function of its input; the publisher only mirrors results into the event
// pipeline and never influences them.
type Engine struct {
	catalog   inventory.CatalogView
	publisher logging.Publisher
}

var _ Validator = (*Engine)(nil)

// NewEngine constructs an engine. catalog may be nil, which disables the
// item-registry detector; publisher may be nil to silence events.
func NewEngine(catalog inventory.CatalogView, publisher logging.Publisher) *Engine {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Engine{catalog: catalog, publisher: publisher}
}

// ValidateInventory runs the enabled detectors in declaration order and
// assembles the full result. Detector output order is stable and
// deterministic; nothing is re-sorted.
func (e *Engine) ValidateInventory(ctx context.Context, inv inventory.Inventory, opts ValidationOptions) ValidationResult {
	violations := e.runDetectors(inv, opts)
	result := assembleResult(inv, violations)

	integrity.ValidationCompleted(ctx, e.publisher, sweepFrom(ctx), actorFrom(ctx),
		integrity.ValidationCompletedPayload{
			Valid:       result.IsValid,
			Violations:  len(result.Violations),
			Warnings:    len(result.Warnings),
			HealthScore: result.ValidationSummary.HealthScore,
		})
	return result
}

func (e *Engine) runDetectors(inv inventory.Inventory, opts ValidationOptions) []Violation {
	violations := detectSlotCount(inv)
	violations = append(violations, detectStackSizes(inv)...)
	if opts.VerifyHotbarIntegrity {
		violations = append(violations, detectHotbar(inv)...)
		violations = append(violations, detectSelectedSlot(inv)...)
	}
	if opts.ValidateArmorSlots {
		violations = append(violations, detectArmor(inv)...)
	}
	if opts.metadataEnabled() {
		violations = append(violations, detectMetadata(inv)...)
	}
	if opts.durabilityEnabled() {
		violations = append(violations, detectDurability(inv)...)
	}
	if opts.registryEnabled() {
		violations = append(violations, detectRegistry(inv, e.catalog)...)
	}
	return violations
}

// ValidateSlot inspects a single storage slot. The index is checked before
// any detector runs.
func (e *Engine) ValidateSlot(ctx context.Context, inv inventory.Inventory, slotIndex int) ([]Violation, error) {
	if slotIndex < 0 || slotIndex >= inventory.StorageSlots {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlotIndex, slotIndex)
	}

	var violations []Violation
	if slotIndex < len(inv.Slots) {
		all := detectStackSizes(inv)
		all = append(all, detectMetadata(inv)...)
		all = append(all, detectDurability(inv)...)
		all = append(all, detectRegistry(inv, e.catalog)...)
		for _, violation := range all {
			if slotAffected(violation, slotIndex) {
				violations = append(violations, violation)
			}
		}
	}
	return violations, nil
}

func slotAffected(v Violation, slotIndex int) bool {
	for _, slot := range v.AffectedSlots {
		if slot == slotIndex {
			return true
		}
	}
	return false
}

type contextKey string

const (
	contextKeySweep contextKey = "integrity.sweep"
	contextKeyActor contextKey = "integrity.actor"
)

// WithSweep tags a context with the sweep sequence so published events can
// be grouped per sweep.
func WithSweep(ctx context.Context, sweep uint64) context.Context {
	return context.WithValue(ctx, contextKeySweep, sweep)
}

// WithActor tags a context with the player whose inventory is being
// processed.
func WithActor(ctx context.Context, actor logging.EntityRef) context.Context {
	return context.WithValue(ctx, contextKeyActor, actor)
}

func sweepFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	if sweep, ok := ctx.Value(contextKeySweep).(uint64); ok {
		return sweep
	}
	return 0
}

func actorFrom(ctx context.Context) logging.EntityRef {
	if ctx == nil {
		return logging.EntityRef{Kind: logging.EntityKindUnknown}
	}
	if actor, ok := ctx.Value(contextKeyActor).(logging.EntityRef); ok {
		return actor
	}
	return logging.EntityRef{Kind: logging.EntityKindUnknown}
}
