package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/civiclab/veritas/internal/core/model"
	"github.com/civiclab/veritas/internal/provider"
)

// Orchestrator fans one claim out to every configured provider. Provider
// failures never escape: they come back as errored runs for the consensus
// stage to discount.
type Orchestrator struct {
	providers []provider.Provider
	timeout   time.Duration
	fanout    int
	limiter   *rate.Limiter
}

// NewOrchestrator bounds concurrent provider calls at fanout and rate-limits
// them globally to cap provider API load.
func NewOrchestrator(providers []provider.Provider, timeout time.Duration, fanout int, limiter *rate.Limiter) *Orchestrator {
	if fanout <= 0 {
		fanout = 1
	}
	return &Orchestrator{
		providers: providers,
		timeout:   timeout,
		fanout:    fanout,
		limiter:   limiter,
	}
}

// Verify returns one run per provider, indexed in configuration order
// regardless of completion order.
func (o *Orchestrator) Verify(ctx context.Context, req provider.Request) []model.ProviderRun {
	runs := make([]model.ProviderRun, len(o.providers))

	g := new(errgroup.Group)
	g.SetLimit(o.fanout)
	for i, p := range o.providers {
		i, p := i, p
		g.Go(func() error {
			runs[i] = o.runOne(ctx, p, req)
			return nil
		})
	}
	_ = g.Wait()

	return runs
}

func (o *Orchestrator) runOne(ctx context.Context, p provider.Provider, req provider.Request) (run model.ProviderRun) {
	run.Provider = p.Name()

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			run.Error = err.Error()
			return run
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		run.LatencyMs = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			run.Error = fmt.Sprintf("provider panic: %v", r)
		}
	}()

	resp, err := p.Verify(callCtx, req)
	if err != nil {
		run.Error = err.Error()
		return run
	}

	run.Verdict = resp.Verdict
	run.Confidence = resp.Confidence
	run.Evidence = resp.Evidence
	run.TokensUsed = resp.TokensUsed
	return run
}
