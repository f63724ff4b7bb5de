// Package integrity publishes structured events for the inventory
// validation pipeline.
package integrity

import (
	"context"

	"blockhold/server/logging"
)

const (
	// EventValidationCompleted is emitted after a full inventory validation.
	EventValidationCompleted logging.EventType = "integrity.validation_completed"
	// EventCorrectionsApplied is emitted after an auto-correction run.
	EventCorrectionsApplied logging.EventType = "integrity.corrections_applied"
	// EventCorrectionFailed is emitted for each suggestion that could not be applied.
	EventCorrectionFailed logging.EventType = "integrity.correction_failed"
	// EventSweepCompleted is emitted when a repository-wide sweep finishes.
	EventSweepCompleted logging.EventType = "integrity.sweep_completed"
)

// ValidationCompletedPayload summarizes one validation pass.
type ValidationCompletedPayload struct {
	Valid       bool `json:"valid"`
	Violations  int  `json:"violations"`
	Warnings    int  `json:"warnings"`
	HealthScore int  `json:"healthScore"`
}

// CorrectionsAppliedPayload summarizes an auto-correction run.
type CorrectionsAppliedPayload struct {
	Applied int  `json:"applied"`
	Failed  int  `json:"failed"`
	DryRun  bool `json:"dryRun,omitempty"`
}

// CorrectionFailedPayload describes a single rejected suggestion.
type CorrectionFailedPayload struct {
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// SweepCompletedPayload summarizes a repository sweep.
type SweepCompletedPayload struct {
	Inventories int   `json:"inventories"`
	Violations  int   `json:"violations"`
	Corrected   int   `json:"corrected"`
	DurationMs  int64 `json:"durationMs"`
}

// ValidationCompleted publishes the result summary of one validation pass.
func ValidationCompleted(ctx context.Context, pub logging.Publisher, sweep uint64, actor logging.EntityRef, payload ValidationCompletedPayload) {
	if pub == nil {
		return
	}
	severity := logging.SeverityInfo
	if !payload.Valid {
		severity = logging.SeverityWarn
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventValidationCompleted,
		Sweep:    sweep,
		Actor:    actor,
		Severity: severity,
		Category: logging.CategoryIntegrity,
		Payload:  payload,
	})
}

// CorrectionsApplied publishes the outcome of an auto-correction run.
func CorrectionsApplied(ctx context.Context, pub logging.Publisher, sweep uint64, actor logging.EntityRef, payload CorrectionsAppliedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCorrectionsApplied,
		Sweep:    sweep,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryIntegrity,
		Payload:  payload,
	})
}

// CorrectionFailed publishes one rejected suggestion.
func CorrectionFailed(ctx context.Context, pub logging.Publisher, sweep uint64, actor logging.EntityRef, payload CorrectionFailedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCorrectionFailed,
		Sweep:    sweep,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryIntegrity,
		Payload:  payload,
	})
}

// SweepCompleted publishes the aggregate result of a repository sweep.
func SweepCompleted(ctx context.Context, pub logging.Publisher, sweep uint64, payload SweepCompletedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSweepCompleted,
		Sweep:    sweep,
		Actor:    logging.EntityRef{ID: "sweeper", Kind: logging.EntityKindSweep},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryIntegrity,
		Payload:  payload,
	})
}
