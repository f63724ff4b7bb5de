// Package telemetry tracks integrity pipeline counters for the
// diagnostics endpoint.
package telemetry

import (
	"sync/atomic"
	"time"
)

type Counters struct {
	sweepsTotal         atomic.Uint64
	inventoriesChecked  atomic.Uint64
	violationsDetected  atomic.Uint64
	correctionsApplied  atomic.Uint64
	correctionsFailed   atomic.Uint64
	lastSweepDuration   atomic.Int64
	lastAggregateHealth atomic.Int64
}

type Snapshot struct {
	SweepsTotal         uint64 `json:"sweepsTotal"`
	InventoriesChecked  uint64 `json:"inventoriesChecked"`
	ViolationsDetected  uint64 `json:"violationsDetected"`
	CorrectionsApplied  uint64 `json:"correctionsApplied"`
	CorrectionsFailed   uint64 `json:"correctionsFailed"`
	LastSweepDurationMs int64  `json:"lastSweepDurationMs"`
	LastAggregateHealth int64  `json:"lastAggregateHealth"`
}

func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) RecordSweep(duration time.Duration, inventories int) {
	c.sweepsTotal.Add(1)
	if inventories > 0 {
		c.inventoriesChecked.Add(uint64(inventories))
	}
	millis := duration.Milliseconds()
	if millis < 0 {
		millis = 0
	}
	c.lastSweepDuration.Store(millis)
}

func (c *Counters) RecordViolations(count int) {
	if count > 0 {
		c.violationsDetected.Add(uint64(count))
	}
}

func (c *Counters) RecordCorrections(applied, failed int) {
	if applied > 0 {
		c.correctionsApplied.Add(uint64(applied))
	}
	if failed > 0 {
		c.correctionsFailed.Add(uint64(failed))
	}
}

func (c *Counters) RecordAggregateHealth(score int) {
	c.lastAggregateHealth.Store(int64(score))
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		SweepsTotal:         c.sweepsTotal.Load(),
		InventoriesChecked:  c.inventoriesChecked.Load(),
		ViolationsDetected:  c.violationsDetected.Load(),
		CorrectionsApplied:  c.correctionsApplied.Load(),
		CorrectionsFailed:   c.correctionsFailed.Load(),
		LastSweepDurationMs: c.lastSweepDuration.Load(),
		LastAggregateHealth: c.lastAggregateHealth.Load(),
	}
}
