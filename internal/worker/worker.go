// Package worker drives verification jobs from the queue to completion.
package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/civiclab/veritas/internal/core/consensus"
	"github.com/civiclab/veritas/internal/core/model"
	"github.com/civiclab/veritas/internal/core/pipeline"
	"github.com/civiclab/veritas/internal/provider"
	"github.com/civiclab/veritas/internal/queue"
	"github.com/civiclab/veritas/internal/store"
)

// Pool pulls job IDs off the queue with a fixed number of goroutines. Jobs
// are independent; there is no ordering across them. Within a job, claims
// run in extraction order and snapshots are persisted after every claim, so
// a crash mid-job leaves re-runnable state rather than a corrupt one.
type Pool struct {
	queue        queue.Queue
	jobs         store.JobStore
	claims       store.ClaimStore
	pipeline     *pipeline.Pipeline
	orchestrator *Orchestrator
	workers      int
	wg           sync.WaitGroup
}

func NewPool(q queue.Queue, jobs store.JobStore, claims store.ClaimStore, pl *pipeline.Pipeline, orch *Orchestrator, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		queue:        q,
		jobs:         jobs,
		claims:       claims,
		pipeline:     pl,
		orchestrator: orch,
		workers:      workers,
	}
}

// Start launches the workers; they stop when ctx is canceled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		jobID, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("worker: dequeue failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		p.process(ctx, jobID)
	}
}

func (p *Pool) process(ctx context.Context, jobID string) {
	job, err := p.jobs.Transition(ctx, jobID, model.JobRunning)
	if errors.Is(err, store.ErrIllegalTransition) {
		// At-least-once queue delivered a duplicate; the first delivery owns
		// the job.
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("worker: job %s not in store, dropping", jobID)
		return
	}
	if err != nil {
		log.Printf("worker: failed to start job %s: %v", jobID, err)
		return
	}

	start := time.Now()

	results, err := p.pipeline.Ingest(ctx, pipeline.Input{
		Text:      job.Text,
		Language:  job.Language,
		Scope:     job.Scope,
		Timeframe: job.Timeframe,
	})
	if err != nil {
		p.fail(ctx, jobID, err)
		return
	}
	if err := p.jobs.SaveResults(ctx, jobID, results); err != nil {
		p.fail(ctx, jobID, err)
		return
	}

	tokens := 0
	for i := range results {
		r := &results[i]
		if r.Unit.Kind != model.KindClaim {
			continue
		}

		runs := p.orchestrator.Verify(ctx, provider.Request{
			Text:      r.Unit.Text,
			Scope:     r.Unit.Scope,
			Timeframe: r.Unit.Timeframe,
		})
		r.Runs = runs
		for _, run := range runs {
			tokens += run.TokensUsed
		}

		c := consensus.Reduce(runs)
		r.Consensus = &c

		if status, ok := consensus.StatusFor(c.Verdict); ok {
			if err := p.claims.SetStatus(ctx, r.Unit.CanonicalKey, status); err != nil {
				p.fail(ctx, jobID, err)
				return
			}
			if r.Claim != nil {
				r.Claim.Status = status
			}
		}

		// Partial progress after every claim.
		if err := p.jobs.SaveResults(ctx, jobID, results); err != nil {
			p.fail(ctx, jobID, err)
			return
		}
	}

	if err := p.jobs.SetMetrics(ctx, jobID, tokens, time.Since(start).Milliseconds()); err != nil {
		log.Printf("worker: failed to record metrics for job %s: %v", jobID, err)
	}
	if _, err := p.jobs.Transition(ctx, jobID, model.JobCompleted); err != nil {
		log.Printf("worker: failed to complete job %s: %v", jobID, err)
	}
}

func (p *Pool) fail(ctx context.Context, jobID string, cause error) {
	log.Printf("worker: job %s failed: %v", jobID, cause)
	if err := p.jobs.SetError(ctx, jobID, cause.Error()); err != nil {
		log.Printf("worker: failed to record error for job %s: %v", jobID, err)
	}
	if _, err := p.jobs.Transition(ctx, jobID, model.JobFailed); err != nil {
		log.Printf("worker: failed to mark job %s failed: %v", jobID, err)
	}
}
