// Package sweep runs periodic integrity passes over every stored
// inventory and streams the results to admin tooling.
package sweep

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"blockhold/server/internal/storage"
	"blockhold/server/internal/telemetry"
	"blockhold/server/internal/validation"
	"blockhold/server/logging"
	"blockhold/server/logging/integrity"
)

// Config tunes one sweeper instance.
type Config struct {
	Interval    time.Duration
	Options     validation.ValidationOptions
	AutoCorrect bool
	DryRun      bool
}

// Sweeper validates every inventory in the repository on a fixed
// interval. The read-modify-write cycle per player happens inside one
// sweep iteration, which is the serialization the engine's contract asks
// the caller for.
type Sweeper struct {
	cfg       Config
	repo      storage.Repository
	validator validation.Validator
	publisher logging.Publisher
	counters  *telemetry.Counters
	hub       *Hub
	logger    telemetry.Logger
	sequence  atomic.Uint64
}

func NewSweeper(cfg Config, repo storage.Repository, validator validation.Validator, publisher logging.Publisher, counters *telemetry.Counters, hub *Hub, logger telemetry.Logger) *Sweeper {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	if counters == nil {
		counters = telemetry.NewCounters()
	}
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Sweeper{
		cfg:       cfg,
		repo:      repo,
		validator: validator,
		publisher: publisher,
		counters:  counters,
		hub:       hub,
		logger:    logger,
	}
}

// Run sweeps until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Printf("sweep failed: %v", err)
			}
		}
	}
}

// SweepOnce validates every stored inventory, optionally auto-corrects
// and saves, then broadcasts and returns the aggregate report.
func (s *Sweeper) SweepOnce(ctx context.Context) (Report, error) {
	started := time.Now()
	sequence := s.sequence.Add(1)
	sweepCtx := validation.WithSweep(ctx, sequence)

	ids, err := s.repo.List(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Type:     reportMessageType,
		Sequence: sequence,
		Players:  make([]PlayerReport, 0, len(ids)),
	}
	healthTotal := 0

	for _, playerID := range ids {
		player, err := s.sweepPlayer(sweepCtx, playerID)
		if err != nil {
			s.logger.Printf("sweep skipping %s: %v", playerID, err)
			continue
		}
		report.Players = append(report.Players, player)
		report.Violations += player.Violations
		report.CorrectionsApplied += player.CorrectionsApplied
		report.CorrectionsFailed += player.CorrectionsFailed
		healthTotal += player.HealthScore
	}

	report.Inventories = len(report.Players)
	if report.Inventories > 0 {
		report.AggregateHealth = int(math.Round(float64(healthTotal) / float64(report.Inventories)))
	}
	report.DurationMs = time.Since(started).Milliseconds()
	report.ServerTime = time.Now().UnixMilli()

	s.counters.RecordSweep(time.Since(started), report.Inventories)
	s.counters.RecordViolations(report.Violations)
	s.counters.RecordCorrections(report.CorrectionsApplied, report.CorrectionsFailed)
	s.counters.RecordAggregateHealth(report.AggregateHealth)

	integrity.SweepCompleted(sweepCtx, s.publisher, sequence, integrity.SweepCompletedPayload{
		Inventories: report.Inventories,
		Violations:  report.Violations,
		Corrected:   report.CorrectionsApplied,
		DurationMs:  report.DurationMs,
	})

	if s.hub != nil {
		s.hub.Broadcast(report)
	}
	return report, nil
}

func (s *Sweeper) sweepPlayer(ctx context.Context, playerID string) (PlayerReport, error) {
	playerCtx := validation.WithActor(ctx, logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer})

	inv, err := s.repo.Load(ctx, playerID)
	if err != nil {
		return PlayerReport{}, err
	}

	result := s.validator.ValidateInventory(playerCtx, inv, s.cfg.Options)
	player := PlayerReport{
		PlayerID:   playerID,
		IsValid:    result.IsValid,
		Violations: len(result.Violations),
		Warnings:   len(result.Warnings),
	}

	scored := inv
	if s.cfg.AutoCorrect && len(result.CorrectionSuggestions) > 0 {
		automated := filterAutomated(result.CorrectionSuggestions)
		correction := s.validator.AutoCorrectIssues(playerCtx, inv, automated, s.cfg.DryRun)
		player.CorrectionsApplied = len(correction.AppliedCorrections)
		player.CorrectionsFailed = len(correction.FailedCorrections)
		if !s.cfg.DryRun && len(correction.AppliedCorrections) > 0 {
			if err := s.repo.Save(ctx, playerID, correction.CorrectedInventory); err != nil {
				return PlayerReport{}, err
			}
			scored = correction.CorrectedInventory
		}
	}

	player.HealthScore = s.validator.CalculateHealthScore(scored).Score
	return player, nil
}

func filterAutomated(suggestions []validation.CorrectionSuggestion) []validation.CorrectionSuggestion {
	automated := make([]validation.CorrectionSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if suggestion.Automated {
			automated = append(automated, suggestion)
		}
	}
	return automated
}
