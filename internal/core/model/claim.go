package model

import "time"

// ClaimStatus is only ever changed by consensus aggregation, never by
// ingestion.
type ClaimStatus string

const (
	StatusOpen     ClaimStatus = "OPEN"
	StatusVerified ClaimStatus = "VERIFIED"
	StatusRefuted  ClaimStatus = "REFUTED"
	StatusMixed    ClaimStatus = "MIXED"
)

// Claim is the deduplicated, long-lived unit of verification. Exactly one
// Claim exists per canonical key; many ExtractedUnits across many jobs may
// point at it.
type Claim struct {
	ID           string      `json:"id"`
	CanonicalKey string      `json:"canonical_key"`
	Text         string      `json:"text"` // first observed surface form
	Scope        string      `json:"scope,omitempty"`
	Timeframe    string      `json:"timeframe,omitempty"`
	Status       ClaimStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
