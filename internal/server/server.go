package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/civiclab/veritas/internal/config"
	"github.com/civiclab/veritas/internal/core/model"
	"github.com/civiclab/veritas/internal/core/pipeline"
	"github.com/civiclab/veritas/internal/core/splitter"
	"github.com/civiclab/veritas/internal/core/triage"
	"github.com/civiclab/veritas/internal/provider"
	"github.com/civiclab/veritas/internal/queue"
	"github.com/civiclab/veritas/internal/store"
	"github.com/civiclab/veritas/internal/worker"
)

const minSubmissionLen = 20

// jobNamespace makes job IDs deterministic per contribution, which is what
// keeps enqueueing idempotent.
var jobNamespace = uuid.MustParse("9c5f1b52-7a0e-4c5d-9b6e-3f8a2d4c1e07")

// Server holds the write entry point and the read model of the pipeline.
type Server struct {
	Jobs  store.JobStore
	Queue queue.Queue
	Pool  *worker.Pool
}

// NewServer assembles the whole pipeline from configuration, with env vars
// overriding the file for deploy-time knobs.
func NewServer(cfg *config.Config) (*Server, error) {
	applyEnvOverrides(cfg)
	ctx := context.Background()

	var claimStore store.ClaimStore
	var jobStore store.JobStore
	switch cfg.Store.Backend {
	case "memgraph":
		m, err := store.NewMemgraph(cfg.Store.Memgraph.URI, cfg.Store.Memgraph.User, cfg.Store.Memgraph.Password)
		if err != nil {
			return nil, err
		}
		if err := m.BuildIndices(ctx); err != nil {
			return nil, err
		}
		claimStore = m.ClaimStore()
		jobStore = m.JobStore()
	default:
		claimStore = store.NewMemoryClaimStore()
		jobStore = store.NewMemoryJobStore()
	}

	var q queue.Queue
	switch cfg.Queue.Backend {
	case "redis":
		q = queue.NewRedis(cfg.Queue.Redis.Addr, cfg.Queue.Redis.Password, cfg.Queue.Redis.DB)
	default:
		q = queue.NewMemory(0)
	}

	providers, err := provider.FromConfigs(ctx, cfg.Providers)
	if err != nil {
		return nil, err
	}

	breaker := splitter.NewBreaker(time.Duration(cfg.Splitter.CooldownMs) * time.Millisecond)
	adapter := splitter.New(splitter.Config{
		Mode:              cfg.Splitter.Mode,
		URL:               cfg.Splitter.URL,
		Token:             cfg.Splitter.Token,
		Timeout:           time.Duration(cfg.Splitter.TimeoutMs) * time.Millisecond,
		LongFormThreshold: cfg.Splitter.LongFormThreshold,
		CacheTTL:          time.Duration(cfg.Splitter.CacheTTLMs) * time.Millisecond,
	}, breaker)

	patterns := cfg.Triage.HotTopics
	if len(patterns) == 0 {
		patterns = triage.DefaultPatterns()
	}
	triager, err := triage.New(patterns)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.Verify.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Verify.RatePerSecond), cfg.Verify.Burst)
	}

	pl := pipeline.New(adapter, triager, claimStore)
	orch := worker.NewOrchestrator(providers,
		time.Duration(cfg.Verify.ProviderTimeoutMs)*time.Millisecond,
		cfg.Verify.Fanout, limiter)
	pool := worker.NewPool(q, jobStore, claimStore, pl, orch, cfg.Verify.Workers)

	return &Server{
		Jobs:  jobStore,
		Queue: q,
		Pool:  pool,
	}, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("SPLITTER_MODE"); v != "" {
		cfg.Splitter.Mode = v
	}
	if v := os.Getenv("SPLITTER_URL"); v != "" {
		cfg.Splitter.URL = v
	}
	if v := os.Getenv("SPLITTER_TOKEN"); v != "" {
		cfg.Splitter.Token = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Queue.Backend = "redis"
		cfg.Queue.Redis.Addr = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Store.Backend = "memgraph"
		cfg.Store.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Store.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Store.Memgraph.Password = v
	}
	for i := range cfg.Providers {
		p := &cfg.Providers[i]
		if p.APIKey != "" {
			continue
		}
		switch strings.ToLower(p.Type) {
		case "openai":
			p.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			p.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "gemini":
			p.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is canceled, then drains in-flight requests
// and waits for the workers. Once it returns the process holds no goroutines.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.Pool.Start(ctx)

	httpSrv := &http.Server{Addr: addr, Handler: s.SetupRouter()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Pool.Wait()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server: shutdown: %v", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server: %v", err)
	}

	s.Pool.Wait()
	return nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/factcheck/jobs", s.EnqueueJob)
	r.GET("/factcheck/jobs/:jobId", s.JobStatus)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type enqueueRequest struct {
	ContributionID string `json:"contribution_id"`
	Text           string `json:"text"`
	Language       string `json:"language"`
	Topic          string `json:"topic"`
	Scope          string `json:"scope"`
	Timeframe      string `json:"timeframe"`
	Priority       string `json:"priority"`
}

// EnqueueJob is the only write entry point into the pipeline. Input errors
// are rejected here synchronously; nothing malformed reaches the queue.
func (s *Server) EnqueueJob(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if len(strings.TrimSpace(req.Text)) < minSubmissionLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text too short"})
		return
	}
	switch req.Priority {
	case "", "normal", "high":
		// Accepted for forward compatibility; the queue runs a single lane.
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown priority"})
		return
	}

	contributionID := req.ContributionID
	if contributionID == "" {
		contributionID = uuid.New().String()
	}

	job := model.FactcheckJob{
		JobID:          JobIDFor(contributionID),
		ContributionID: contributionID,
		Text:           req.Text,
		Language:       req.Language,
		Topic:          req.Topic,
		Scope:          req.Scope,
		Timeframe:      req.Timeframe,
	}

	stored, err := s.Jobs.Create(c.Request.Context(), job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	if err := s.Queue.Enqueue(c.Request.Context(), stored.JobID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": stored.JobID})
}

// JobIDFor derives the stable job ID for a contribution, so re-submissions
// update the same job instead of duplicating it.
func JobIDFor(contributionID string) string {
	return uuid.NewSHA1(jobNamespace, []byte(contributionID)).String()
}

type jobView struct {
	JobID      string    `json:"job_id"`
	Status     string    `json:"status"`
	TokensUsed int       `json:"tokens_used"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type claimView struct {
	ID           string              `json:"id"`
	Text         string              `json:"text"`
	Kind         model.UnitKind      `json:"kind"`
	Confidence   float64             `json:"confidence"`
	CanonicalKey string              `json:"canonical_key,omitempty"`
	Triage       model.TriageLevel   `json:"triage"`
	Status       model.ClaimStatus   `json:"status,omitempty"`
	Consensus    *model.Consensus    `json:"consensus,omitempty"`
	Evidences    []model.Evidence    `json:"evidences"`
	ProviderRuns []model.ProviderRun `json:"provider_runs"`
}

// JobStatus serves the last persisted snapshot; it never waits on in-flight
// provider calls. Unknown IDs are a structured 404, not an exception.
func (s *Server) JobStatus(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := s.Jobs.Get(c.Request.Context(), jobID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		return
	}

	results, err := s.Jobs.Results(c.Request.Context(), jobID)
	if err != nil && err != store.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results"})
		return
	}

	claims := make([]claimView, 0, len(results))
	for _, r := range results {
		view := claimView{
			ID:           r.Unit.ID,
			Text:         r.Unit.Text,
			Kind:         r.Unit.Kind,
			Confidence:   r.Unit.Confidence,
			CanonicalKey: r.Unit.CanonicalKey,
			Triage:       r.Unit.Triage,
			Consensus:    r.Consensus,
			Evidences:    []model.Evidence{},
			ProviderRuns: r.Runs,
		}
		if r.Claim != nil {
			view.Status = r.Claim.Status
		}
		for _, run := range r.Runs {
			view.Evidences = append(view.Evidences, run.Evidence...)
		}
		claims = append(claims, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"job": jobView{
			JobID:      job.JobID,
			Status:     string(job.Status),
			TokensUsed: job.TokensUsed,
			DurationMs: job.DurationMs,
			Error:      job.Error,
			CreatedAt:  job.CreatedAt,
			UpdatedAt:  job.UpdatedAt,
		},
		"claims": claims,
	})
}
