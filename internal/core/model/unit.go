package model

// UnitKind labels what a segmented span of citizen text asserts.
type UnitKind string

const (
	KindClaim      UnitKind = "claim"
	KindOpinion    UnitKind = "opinion"
	KindPolicy     UnitKind = "policy"
	KindQuestion   UnitKind = "question"
	KindPrediction UnitKind = "prediction"
)

// TriageLevel routes a unit toward expedited review.
type TriageLevel string

const (
	TriageNone      TriageLevel = "none"
	TriageWatchlist TriageLevel = "watchlist"
)

// Span holds byte offsets into the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ExtractedUnit is one segmented span of a submission. Units are created once
// per ingestion and never mutated afterwards; an edited submission produces a
// fresh set of units.
type ExtractedUnit struct {
	ID           string      `json:"id"`
	Text         string      `json:"text"`
	Span         Span        `json:"span"`
	Kind         UnitKind    `json:"kind"`
	Confidence   float64     `json:"confidence"`
	Scope        string      `json:"scope,omitempty"`
	Timeframe    string      `json:"timeframe,omitempty"`
	CanonicalKey string      `json:"canonical_key,omitempty"`
	ClaimID      string      `json:"claim_id,omitempty"`
	Triage       TriageLevel `json:"triage"`
}
