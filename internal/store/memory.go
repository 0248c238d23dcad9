package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/civiclab/veritas/internal/core/model"
)

// MemoryClaimStore keeps canonical claims in a mutex-guarded map. Used in
// tests and single-process deployments.
type MemoryClaimStore struct {
	mu     sync.RWMutex
	claims map[string]model.Claim

	// Clock is swappable for tests.
	Clock func() time.Time
}

func NewMemoryClaimStore() *MemoryClaimStore {
	return &MemoryClaimStore{
		claims: make(map[string]model.Claim),
		Clock:  time.Now,
	}
}

func (s *MemoryClaimStore) Upsert(ctx context.Context, key, text, scope, timeframe string) (model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock().UTC()
	if c, ok := s.claims[key]; ok {
		c.UpdatedAt = now
		s.claims[key] = c
		return c, nil
	}

	c := model.Claim{
		ID:           uuid.New().String(),
		CanonicalKey: key,
		Text:         text,
		Scope:        scope,
		Timeframe:    timeframe,
		Status:       model.StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.claims[key] = c
	return c, nil
}

func (s *MemoryClaimStore) SetStatus(ctx context.Context, key string, status model.ClaimStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.claims[key]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = s.Clock().UTC()
	s.claims[key] = c
	return nil
}

func (s *MemoryClaimStore) Get(ctx context.Context, key string) (model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.claims[key]
	if !ok {
		return model.Claim{}, ErrNotFound
	}
	return c, nil
}

// MemoryJobStore keeps job records and their result snapshots in memory.
type MemoryJobStore struct {
	mu      sync.RWMutex
	jobs    map[string]model.FactcheckJob
	results map[string][]model.ClaimResult

	Clock func() time.Time
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{
		jobs:    make(map[string]model.FactcheckJob),
		results: make(map[string][]model.ClaimResult),
		Clock:   time.Now,
	}
}

func (s *MemoryJobStore) Create(ctx context.Context, job model.FactcheckJob) (model.FactcheckJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock().UTC()
	if existing, ok := s.jobs[job.JobID]; ok {
		if existing.Status != model.JobPending {
			return existing, nil
		}
		existing.Text = job.Text
		existing.Language = job.Language
		existing.Topic = job.Topic
		existing.Scope = job.Scope
		existing.Timeframe = job.Timeframe
		existing.UpdatedAt = now
		s.jobs[job.JobID] = existing
		return existing, nil
	}

	job.Status = model.JobPending
	job.CreatedAt = now
	job.UpdatedAt = now
	s.jobs[job.JobID] = job
	return job, nil
}

func (s *MemoryJobStore) Get(ctx context.Context, jobID string) (model.FactcheckJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return model.FactcheckJob{}, ErrNotFound
	}
	return j, nil
}

func (s *MemoryJobStore) Transition(ctx context.Context, jobID string, to model.JobStatus) (model.FactcheckJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return model.FactcheckJob{}, ErrNotFound
	}
	if !slices.Contains(transitionFrom(to), j.Status) {
		return model.FactcheckJob{}, ErrIllegalTransition
	}
	j.Status = to
	j.UpdatedAt = s.Clock().UTC()
	s.jobs[jobID] = j
	return j, nil
}

func (s *MemoryJobStore) SetError(ctx context.Context, jobID, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	j.Error = msg
	j.UpdatedAt = s.Clock().UTC()
	s.jobs[jobID] = j
	return nil
}

func (s *MemoryJobStore) SetMetrics(ctx context.Context, jobID string, tokensUsed int, durationMs int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	j.TokensUsed = tokensUsed
	j.DurationMs = durationMs
	j.UpdatedAt = s.Clock().UTC()
	s.jobs[jobID] = j
	return nil
}

func (s *MemoryJobStore) SaveResults(ctx context.Context, jobID string, results []model.ClaimResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; !ok {
		return ErrNotFound
	}
	s.results[jobID] = slices.Clone(results)
	return nil
}

func (s *MemoryJobStore) Results(ctx context.Context, jobID string) ([]model.ClaimResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.jobs[jobID]; !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(s.results[jobID]), nil
}
