package model

import "time"

// Fetch outcome constants recorded in the journal.
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeStatusError    = "status_error"
	OutcomeDecodeError    = "decode_error"
)

// FetchRecord is one journal row describing a resolved activation.
// Only the outcome is recorded; fetched items are never stored.
type FetchRecord struct {
	ID           string    `json:"id" db:"id"`
	ActivationID string    `json:"activation_id" db:"activation_id"`
	Endpoint     string    `json:"endpoint" db:"endpoint"`
	Outcome      string    `json:"outcome" db:"outcome"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ItemCount    int       `json:"item_count" db:"item_count"`
	Error        string    `json:"error" db:"error"`
	StartedAt    time.Time `json:"started_at" db:"started_at"`
	FinishedAt   time.Time `json:"finished_at" db:"finished_at"`
}

// Duration returns how long the activation took to resolve.
func (r FetchRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed reports whether the record describes a failed fetch.
func (r FetchRecord) Failed() bool {
	return r.Outcome != OutcomeSuccess
}
