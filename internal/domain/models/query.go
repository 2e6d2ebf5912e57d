package models

import "time"

// DefaultQuery substitutes for an empty request query.
const DefaultQuery = "Give me a market update"

// ProcessRequest is the orchestrator's inbound request body.
type ProcessRequest struct {
	Query string `json:"query" validate:"max=2000"`
}

// FinalResponse is the terminal artifact returned to the caller. AudioBase64
// is nil when speech synthesis failed or was unavailable; audio is best
// effort and never required for a successful response.
type FinalResponse struct {
	Narrative   string  `json:"narrative"`
	AudioBase64 *string `json:"audio_base64"`
}

// ReconciledBundle is the input to prompt assembly: the partial results of
// the fan-out batch, reconciled per ticker.
type ReconciledBundle struct {
	Query          string
	ValidTickers   []string
	MissingTickers []string
	Market         MarketData
	News           NewsData
	Chunks         []Chunk
	Analysis       AnalysisData
	Confident      bool
}

// RequestAudit is the best-effort event published after each request.
type RequestAudit struct {
	RequestID      string    `json:"request_id"`
	Query          string    `json:"query"`
	Tickers        []string  `json:"tickers"`
	ValidTickers   []string  `json:"valid_tickers"`
	MissingTickers []string  `json:"missing_tickers"`
	Outcome        string    `json:"outcome"` // ok | apology | error
	DurationMS     int64     `json:"duration_ms"`
	Timestamp      time.Time `json:"timestamp"`
}
