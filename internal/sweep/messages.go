package sweep

// PlayerReport is the per-inventory slice of a sweep report.
type PlayerReport struct {
	PlayerID           string `json:"playerId"`
	IsValid            bool   `json:"isValid"`
	Violations         int    `json:"violations"`
	Warnings           int    `json:"warnings"`
	CorrectionsApplied int    `json:"correctionsApplied"`
	CorrectionsFailed  int    `json:"correctionsFailed"`
	HealthScore        int    `json:"healthScore"`
}

// Report is broadcast to admin subscribers after every sweep and returned
// by the manual sweep endpoint.
type Report struct {
	Type               string         `json:"type"`
	Sequence           uint64         `json:"sequence"`
	ServerTime         int64          `json:"serverTime"`
	DurationMs         int64          `json:"durationMs"`
	Inventories        int            `json:"inventories"`
	Violations         int            `json:"violations"`
	CorrectionsApplied int            `json:"correctionsApplied"`
	CorrectionsFailed  int            `json:"correctionsFailed"`
	AggregateHealth    int            `json:"aggregateHealth"`
	Players            []PlayerReport `json:"players"`
}

const reportMessageType = "sweep_report"
