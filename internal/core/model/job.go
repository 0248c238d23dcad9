package model

import "time"

// JobStatus is monotonic: PENDING -> RUNNING -> COMPLETED|FAILED. The store
// enforces this; call sites never write status directly.
type JobStatus string

const (
	JobPending   JobStatus = "PENDING"
	JobRunning   JobStatus = "RUNNING"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
)

// FactcheckJob is one verification run over the claims extracted from one
// submission.
type FactcheckJob struct {
	JobID          string    `json:"job_id"`
	ContributionID string    `json:"contribution_id"`
	Text           string    `json:"text"`
	Language       string    `json:"language,omitempty"`
	Topic          string    `json:"topic,omitempty"`
	Scope          string    `json:"scope,omitempty"`
	Timeframe      string    `json:"timeframe,omitempty"`
	Status         JobStatus `json:"status"`
	TokensUsed     int       `json:"tokens_used"`
	DurationMs     int64     `json:"duration_ms"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClaimResult pairs one extracted unit with the canonical claim it resolved
// to and the verification outcome, in extraction order. Non-claim units carry
// neither runs nor consensus.
type ClaimResult struct {
	Unit      ExtractedUnit `json:"unit"`
	Claim     *Claim        `json:"claim,omitempty"`
	Runs      []ProviderRun `json:"provider_runs,omitempty"`
	Consensus *Consensus    `json:"consensus,omitempty"`
}
