// Package store owns the shared state of the pipeline: canonical claims and
// job records. Backends must apply claim upserts atomically per canonical key
// and enforce the job state machine centrally, so concurrent workers cannot
// lose updates or regress a job.
package store

import (
	"context"
	"errors"

	"github.com/civiclab/veritas/internal/core/model"
)

var (
	// ErrNotFound is the typed miss for unknown claims and jobs.
	ErrNotFound = errors.New("not found")

	// ErrIllegalTransition rejects any backward or skipping job transition.
	ErrIllegalTransition = errors.New("illegal job transition")
)

// ClaimStore persists canonical claims keyed by canonical key.
type ClaimStore interface {
	// Upsert creates the claim on first observation and bumps updated_at on
	// every later one. created_at and status are fixed at insert; status only
	// changes through SetStatus. Must be atomic per key.
	Upsert(ctx context.Context, key, text, scope, timeframe string) (model.Claim, error)

	// SetStatus applies a consensus-driven status change.
	SetStatus(ctx context.Context, key string, status model.ClaimStatus) error

	Get(ctx context.Context, key string) (model.Claim, error)
}

// JobStore persists job records and their result snapshots.
type JobStore interface {
	// Create inserts a PENDING job, or refreshes the submission fields of an
	// existing job that is still PENDING. Jobs past PENDING are immutable
	// history; re-enqueueing the same contribution returns them unchanged.
	Create(ctx context.Context, job model.FactcheckJob) (model.FactcheckJob, error)

	Get(ctx context.Context, jobID string) (model.FactcheckJob, error)

	// Transition moves the job along PENDING -> RUNNING -> COMPLETED|FAILED
	// and returns the updated record. Any other move is ErrIllegalTransition.
	Transition(ctx context.Context, jobID string, to model.JobStatus) (model.FactcheckJob, error)

	SetError(ctx context.Context, jobID, msg string) error

	SetMetrics(ctx context.Context, jobID string, tokensUsed int, durationMs int64) error

	// SaveResults replaces the job's result snapshot in one write, so readers
	// always see a coherent state.
	SaveResults(ctx context.Context, jobID string, results []model.ClaimResult) error

	Results(ctx context.Context, jobID string) ([]model.ClaimResult, error)
}

// transitionFrom lists the states a job may be in when moving to the given
// target.
func transitionFrom(to model.JobStatus) []model.JobStatus {
	switch to {
	case model.JobRunning:
		return []model.JobStatus{model.JobPending}
	case model.JobCompleted, model.JobFailed:
		return []model.JobStatus{model.JobRunning}
	default:
		return nil
	}
}
