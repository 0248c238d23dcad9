package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/civiclab/veritas/internal/core/model"
)

// Memgraph backs both stores with a bolt-speaking graph database. Result
// snapshots are stored as a single JSON property, so a snapshot write is one
// atomic SET and readers never see a torn state.
type Memgraph struct {
	driver neo4j.DriverWithContext
}

func NewMemgraph(uri, username, password string) (*Memgraph, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}
	log.Println("Connected to Memgraph")
	return &Memgraph{driver: driver}, nil
}

func (m *Memgraph) Close(ctx context.Context) error {
	return m.driver.Close(ctx)
}

// BuildIndices creates the lookup indices; existing indices are tolerated.
func (m *Memgraph) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Claim(canonical_key);",
		"CREATE INDEX ON :Job(job_id);",
	}
	for _, q := range queries {
		if _, err := m.execute(ctx, q, nil); err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
	return nil
}

func (m *Memgraph) execute(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, m.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result, nil
}

// ClaimStore returns the claim-facing view of this connection.
func (m *Memgraph) ClaimStore() *MemgraphClaimStore { return &MemgraphClaimStore{m: m} }

// JobStore returns the job-facing view of this connection.
func (m *Memgraph) JobStore() *MemgraphJobStore { return &MemgraphJobStore{m: m} }

// MemgraphClaimStore implements ClaimStore on a shared Memgraph connection.
type MemgraphClaimStore struct {
	m *Memgraph
}

func (s *MemgraphClaimStore) Upsert(ctx context.Context, key, text, scope, timeframe string) (model.Claim, error) {
	result, err := s.m.execute(ctx, upsertClaimQuery, map[string]any{
		"key":       key,
		"id":        uuid.New().String(),
		"text":      text,
		"scope":     scope,
		"timeframe": timeframe,
		"now":       time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return model.Claim{}, err
	}
	if len(result.Records) == 0 {
		return model.Claim{}, fmt.Errorf("claim upsert returned no record")
	}
	return claimFromRecord(key, result.Records[0]), nil
}

func (s *MemgraphClaimStore) SetStatus(ctx context.Context, key string, status model.ClaimStatus) error {
	result, err := s.m.execute(ctx, setClaimStatusQuery, map[string]any{
		"key":    key,
		"status": string(status),
		"now":    time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MemgraphClaimStore) Get(ctx context.Context, key string) (model.Claim, error) {
	result, err := s.m.execute(ctx, getClaimQuery, map[string]any{"key": key})
	if err != nil {
		return model.Claim{}, err
	}
	if len(result.Records) == 0 {
		return model.Claim{}, ErrNotFound
	}
	return claimFromRecord(key, result.Records[0]), nil
}

// MemgraphJobStore implements JobStore on a shared Memgraph connection.
type MemgraphJobStore struct {
	m *Memgraph
}

func (s *MemgraphJobStore) Create(ctx context.Context, job model.FactcheckJob) (model.FactcheckJob, error) {
	result, err := s.m.execute(ctx, createJobQuery, map[string]any{
		"job_id":          job.JobID,
		"contribution_id": job.ContributionID,
		"text":            job.Text,
		"language":        job.Language,
		"topic":           job.Topic,
		"scope":           job.Scope,
		"timeframe":       job.Timeframe,
		"now":             time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return model.FactcheckJob{}, err
	}
	if len(result.Records) == 0 {
		return model.FactcheckJob{}, fmt.Errorf("job create returned no record")
	}
	return jobFromRecord(result.Records[0]), nil
}

func (s *MemgraphJobStore) Get(ctx context.Context, jobID string) (model.FactcheckJob, error) {
	result, err := s.m.execute(ctx, getJobQuery, map[string]any{"job_id": jobID})
	if err != nil {
		return model.FactcheckJob{}, err
	}
	if len(result.Records) == 0 {
		return model.FactcheckJob{}, ErrNotFound
	}
	return jobFromRecord(result.Records[0]), nil
}

func (s *MemgraphJobStore) Transition(ctx context.Context, jobID string, to model.JobStatus) (model.FactcheckJob, error) {
	allowed := make([]any, 0, 2)
	for _, from := range transitionFrom(to) {
		allowed = append(allowed, string(from))
	}

	result, err := s.m.execute(ctx, transitionJobQuery, map[string]any{
		"job_id":  jobID,
		"to":      string(to),
		"allowed": allowed,
		"now":     time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return model.FactcheckJob{}, err
	}
	if len(result.Records) == 0 {
		if _, err := s.Get(ctx, jobID); err != nil {
			return model.FactcheckJob{}, err
		}
		return model.FactcheckJob{}, ErrIllegalTransition
	}
	return jobFromRecord(result.Records[0]), nil
}

func (s *MemgraphJobStore) SetError(ctx context.Context, jobID, msg string) error {
	return s.setJobField(ctx, setJobErrorQuery, map[string]any{
		"job_id": jobID,
		"error":  msg,
		"now":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *MemgraphJobStore) SetMetrics(ctx context.Context, jobID string, tokensUsed int, durationMs int64) error {
	return s.setJobField(ctx, setJobMetricsQuery, map[string]any{
		"job_id":      jobID,
		"tokens_used": tokensUsed,
		"duration_ms": durationMs,
		"now":         time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *MemgraphJobStore) SaveResults(ctx context.Context, jobID string, results []model.ClaimResult) error {
	blob, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return s.setJobField(ctx, saveResultsQuery, map[string]any{
		"job_id":  jobID,
		"results": string(blob),
	})
}

func (s *MemgraphJobStore) Results(ctx context.Context, jobID string) ([]model.ClaimResult, error) {
	result, err := s.m.execute(ctx, getResultsQuery, map[string]any{"job_id": jobID})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, ErrNotFound
	}
	blob := recordString(result.Records[0], "results")
	if blob == "" {
		return nil, nil
	}
	var results []model.ClaimResult
	if err := json.Unmarshal([]byte(blob), &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return results, nil
}

func (s *MemgraphJobStore) setJobField(ctx context.Context, query string, params map[string]any) error {
	result, err := s.m.execute(ctx, query, params)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func claimFromRecord(key string, rec *db.Record) model.Claim {
	return model.Claim{
		ID:           recordString(rec, "id"),
		CanonicalKey: key,
		Text:         recordString(rec, "text"),
		Scope:        recordString(rec, "scope"),
		Timeframe:    recordString(rec, "timeframe"),
		Status:       model.ClaimStatus(recordString(rec, "status")),
		CreatedAt:    recordTime(rec, "created_at"),
		UpdatedAt:    recordTime(rec, "updated_at"),
	}
}

func jobFromRecord(rec *db.Record) model.FactcheckJob {
	return model.FactcheckJob{
		JobID:          recordString(rec, "job_id"),
		ContributionID: recordString(rec, "contribution_id"),
		Text:           recordString(rec, "text"),
		Language:       recordString(rec, "language"),
		Topic:          recordString(rec, "topic"),
		Scope:          recordString(rec, "scope"),
		Timeframe:      recordString(rec, "timeframe"),
		Status:         model.JobStatus(recordString(rec, "status")),
		TokensUsed:     int(recordInt(rec, "tokens_used")),
		DurationMs:     recordInt(rec, "duration_ms"),
		Error:          recordString(rec, "error"),
		CreatedAt:      recordTime(rec, "created_at"),
		UpdatedAt:      recordTime(rec, "updated_at"),
	}
}

func recordString(rec *db.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordInt(rec *db.Record, key string) int64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	n, _ := v.(int64)
	return n
}

func recordTime(rec *db.Record, key string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, recordString(rec, key))
	if err != nil {
		return time.Time{}
	}
	return t
}
