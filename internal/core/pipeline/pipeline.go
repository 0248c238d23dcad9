// Package pipeline runs the synchronous half of ingestion: segmentation,
// classification, canonicalization, triage and claim persistence. Everything
// here is restartable; the async half (verification) belongs to the worker.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/civiclab/veritas/internal/core/canonical"
	"github.com/civiclab/veritas/internal/core/classify"
	"github.com/civiclab/veritas/internal/core/model"
	"github.com/civiclab/veritas/internal/core/splitter"
	"github.com/civiclab/veritas/internal/core/triage"
	"github.com/civiclab/veritas/internal/store"
)

type Pipeline struct {
	splitter *splitter.Adapter
	triager  *triage.Triager
	claims   store.ClaimStore
}

func New(split *splitter.Adapter, triager *triage.Triager, claims store.ClaimStore) *Pipeline {
	return &Pipeline{
		splitter: split,
		triager:  triager,
		claims:   claims,
	}
}

// Input is one submission to decompose.
type Input struct {
	Text      string
	Language  string
	Scope     string
	Timeframe string
}

// Ingest decomposes the submission into units and upserts a canonical claim
// for every claim-kind unit. Only storage failures abort; they are the one
// unrecoverable error in this path.
func (p *Pipeline) Ingest(ctx context.Context, in Input) ([]model.ClaimResult, error) {
	segments := p.splitter.Split(ctx, in.Text, in.Language)

	results := make([]model.ClaimResult, 0, len(segments))
	for _, seg := range segments {
		label := classify.Classify(seg.Text)

		unit := model.ExtractedUnit{
			ID:         uuid.New().String(),
			Text:       seg.Text,
			Span:       model.Span{Start: seg.Start, End: seg.End},
			Kind:       label.Kind,
			Confidence: label.Confidence,
			Scope:      in.Scope,
			Timeframe:  in.Timeframe,
		}

		result := model.ClaimResult{}
		if unit.Kind == model.KindClaim {
			key := canonical.Key(unit.Text, in.Scope, in.Timeframe)
			claim, err := p.claims.Upsert(ctx, key, unit.Text, in.Scope, in.Timeframe)
			if err != nil {
				return nil, fmt.Errorf("failed to upsert claim: %w", err)
			}
			unit.CanonicalKey = key
			unit.ClaimID = claim.ID
			result.Claim = &claim
		}

		unit.Triage = p.triager.Assess(unit)
		result.Unit = unit
		results = append(results, result)
	}

	return results, nil
}
