// Package net assembles the admin HTTP surface.
package net

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"blockhold/server/internal/inventory"
	"blockhold/server/internal/storage"
	"blockhold/server/internal/sweep"
	"blockhold/server/internal/telemetry"
	"blockhold/server/internal/validation"
	"blockhold/server/logging"
)

// HandlerConfig carries the collaborators the HTTP surface exposes.
type HandlerConfig struct {
	Repository storage.Repository
	Validator  validation.Validator
	Options    validation.ValidationOptions
	Counters   *telemetry.Counters
	Hub        *sweep.Hub
	Sweeper    *sweep.Sweeper
	Router     *logging.Router
	Logger     telemetry.Logger
}

// NewHandler builds the admin mux: health, diagnostics, per-player
// validation/correction/score, manual sweep trigger and the websocket
// report stream.
func NewHandler(cfg HandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		payload := struct {
			Status      string             `json:"status"`
			ServerTime  int64              `json:"serverTime"`
			Telemetry   telemetry.Snapshot `json:"telemetry"`
			Subscribers int                `json:"subscribers"`
			Logging     any                `json:"logging,omitempty"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
		}
		if cfg.Counters != nil {
			payload.Telemetry = cfg.Counters.Snapshot()
		}
		if cfg.Hub != nil {
			payload.Subscribers = cfg.Hub.SubscriberCount()
		}
		if cfg.Router != nil {
			payload.Logging = cfg.Router.Stats()
		}
		writeJSON(w, http.StatusOK, payload)
	})

	mux.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		inv, playerID, ok := loadPlayer(w, r, cfg)
		if !ok {
			return
		}
		ctx := validation.WithActor(r.Context(), logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer})
		writeJSON(w, http.StatusOK, cfg.Validator.ValidateInventory(ctx, inv, cfg.Options))
	})

	mux.HandleFunc("/correct", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		inv, playerID, ok := loadPlayer(w, r, cfg)
		if !ok {
			return
		}
		dryRun := false
		if raw := r.URL.Query().Get("dryRun"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				http.Error(w, "invalid dryRun", http.StatusBadRequest)
				return
			}
			dryRun = parsed
		}

		ctx := validation.WithActor(r.Context(), logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer})
		result := cfg.Validator.ValidateInventory(ctx, inv, cfg.Options)
		report := cfg.Validator.AutoCorrectIssues(ctx, inv, result.CorrectionSuggestions, dryRun)
		if !dryRun && len(report.AppliedCorrections) > 0 {
			if err := cfg.Repository.Save(r.Context(), playerID, report.CorrectedInventory); err != nil {
				logger.Printf("failed to save corrected inventory for %s: %v", playerID, err)
				http.Error(w, "failed to persist corrections", http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, http.StatusOK, report)
	})

	mux.HandleFunc("/score", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		inv, _, ok := loadPlayer(w, r, cfg)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, cfg.Validator.CalculateHealthScore(inv))
	})

	mux.HandleFunc("/sweep", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if cfg.Sweeper == nil {
			http.Error(w, "sweeper disabled", http.StatusServiceUnavailable)
			return
		}
		report, err := cfg.Sweeper.SweepOnce(r.Context())
		if err != nil {
			logger.Printf("manual sweep failed: %v", err)
			http.Error(w, "sweep failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	if cfg.Hub != nil {
		mux.HandleFunc("/ws", cfg.Hub.ServeWS)
	}

	return mux
}

func loadPlayer(w http.ResponseWriter, r *http.Request, cfg HandlerConfig) (inventory.Inventory, string, bool) {
	playerID := r.URL.Query().Get("player")
	if playerID == "" {
		http.Error(w, "missing player", http.StatusBadRequest)
		return inventory.Inventory{}, "", false
	}
	loaded, err := cfg.Repository.Load(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "unknown player", http.StatusNotFound)
			return inventory.Inventory{}, "", false
		}
		http.Error(w, "failed to load inventory", http.StatusInternalServerError)
		return inventory.Inventory{}, "", false
	}
	return loaded, playerID, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
