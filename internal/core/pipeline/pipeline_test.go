package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/civiclab/veritas/internal/core/model"
	"github.com/civiclab/veritas/internal/core/splitter"
	"github.com/civiclab/veritas/internal/core/triage"
	"github.com/civiclab/veritas/internal/store"
)

func newTestPipeline(t *testing.T, claims store.ClaimStore) *Pipeline {
	adapter := splitter.New(splitter.Config{Mode: splitter.ModeInternal}, splitter.NewBreaker(time.Second))
	triager, err := triage.New(triage.DefaultPatterns())
	assert.NoError(t, err)
	return New(adapter, triager, claims)
}

// TestIngestMixedSubmission runs a typical contribution end to end through
// segmentation, classification, canonicalization and triage.
func TestIngestMixedSubmission(t *testing.T) {
	claims := store.NewMemoryClaimStore()
	p := newTestPipeline(t, claims)

	results, err := p.Ingest(context.Background(), Input{
		Text:      "Die Mieten in Berlin sind um 8% gestiegen. Das ist ungerecht. Der Senat sollte den Mietendeckel wieder einführen.",
		Language:  "de",
		Scope:     "berlin",
		Timeframe: "2024",
	})

	assert.NoError(t, err)
	assert.Len(t, results, 3)

	claim := results[0]
	assert.Equal(t, model.KindClaim, claim.Unit.Kind)
	assert.NotEmpty(t, claim.Unit.CanonicalKey)
	assert.NotNil(t, claim.Claim)
	assert.Equal(t, model.StatusOpen, claim.Claim.Status)
	assert.Equal(t, model.TriageWatchlist, claim.Unit.Triage)

	opinion := results[1]
	assert.Equal(t, model.KindOpinion, opinion.Unit.Kind)
	assert.Empty(t, opinion.Unit.CanonicalKey)
	assert.Nil(t, opinion.Claim)
	assert.Equal(t, model.TriageNone, opinion.Unit.Triage)

	policy := results[2]
	assert.Equal(t, model.KindPolicy, policy.Unit.Kind)
	assert.Nil(t, policy.Claim)
	// "Mietendeckel" is a hot topic.
	assert.Equal(t, model.TriageWatchlist, policy.Unit.Triage)
}

// TestIngestClaimOpinionQuestion covers the claim/opinion/question mix: the
// question keeps its kind even though it carries a normative marker, and only
// the claim resolves to a canonical record.
func TestIngestClaimOpinionQuestion(t *testing.T) {
	claims := store.NewMemoryClaimStore()
	p := newTestPipeline(t, claims)

	results, err := p.Ingest(context.Background(), Input{
		Text:     "Die Mietpreise in Berlin stiegen 2024 um 8%. Das ist ungerecht. Sollten wir einen Mietendeckel einführen?",
		Language: "de",
	})

	assert.NoError(t, err)
	assert.Len(t, results, 3)

	assert.Equal(t, model.KindClaim, results[0].Unit.Kind)
	assert.GreaterOrEqual(t, results[0].Unit.Confidence, 0.7)
	assert.NotEmpty(t, results[0].Unit.CanonicalKey)
	assert.NotNil(t, results[0].Claim)

	assert.Equal(t, model.KindOpinion, results[1].Unit.Kind)

	assert.Equal(t, model.KindQuestion, results[2].Unit.Kind)
	assert.Empty(t, results[2].Unit.CanonicalKey)
	assert.Nil(t, results[2].Claim)
}

// TestIngestDeduplicatesAcrossSubmissions: the same claim in two submissions
// resolves to one canonical record.
func TestIngestDeduplicatesAcrossSubmissions(t *testing.T) {
	claims := store.NewMemoryClaimStore()
	p := newTestPipeline(t, claims)
	ctx := context.Background()

	first, err := p.Ingest(ctx, Input{Text: "Berlin 2024: Mieten stiegen um 8%.", Scope: "berlin", Timeframe: "2024"})
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := p.Ingest(ctx, Input{Text: "Die Mieten stiegen um 8 % in Berlin 2024.", Scope: "berlin", Timeframe: "2024"})
	assert.NoError(t, err)
	assert.Len(t, second, 1)

	assert.Equal(t, first[0].Unit.CanonicalKey, second[0].Unit.CanonicalKey)
	assert.Equal(t, first[0].Claim.ID, second[0].Claim.ID)
}

func TestIngestUnitsCarrySpans(t *testing.T) {
	claims := store.NewMemoryClaimStore()
	p := newTestPipeline(t, claims)

	text := "Die Mieten in Berlin sind um 8% gestiegen. Das ist wirklich ungerecht."
	results, err := p.Ingest(context.Background(), Input{Text: text})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, r.Unit.Text, text[r.Unit.Span.Start:r.Unit.Span.End])
		assert.NotEmpty(t, r.Unit.ID)
	}
}

func TestIngestEmptyText(t *testing.T) {
	p := newTestPipeline(t, store.NewMemoryClaimStore())

	results, err := p.Ingest(context.Background(), Input{Text: "   "})

	assert.NoError(t, err)
	assert.Empty(t, results)
}
