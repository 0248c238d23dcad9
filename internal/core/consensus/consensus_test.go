package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civiclab/veritas/internal/core/model"
)

func TestReduceMajority(t *testing.T) {
	c := Reduce([]model.ProviderRun{
		{Provider: "openai", Verdict: model.VerdictLikelyTrue, Confidence: 0.9},
		{Provider: "claude", Verdict: model.VerdictLikelyTrue, Confidence: 0.7},
		{Provider: "gemini", Verdict: model.VerdictLikelyFalse, Confidence: 0.6},
	})

	assert.Equal(t, model.VerdictLikelyTrue, c.Verdict)
	assert.InDelta(t, 0.8, c.Confidence, 1e-9)
	assert.Equal(t, []string{"gemini"}, c.Dissent)
}

func TestReduceUnanimous(t *testing.T) {
	c := Reduce([]model.ProviderRun{
		{Provider: "openai", Verdict: model.VerdictLikelyFalse, Confidence: 0.8},
		{Provider: "claude", Verdict: model.VerdictLikelyFalse, Confidence: 0.6},
	})

	assert.Equal(t, model.VerdictLikelyFalse, c.Verdict)
	assert.InDelta(t, 0.7, c.Confidence, 1e-9)
	assert.Empty(t, c.Dissent)
}

// TestReduceTie: a tie between verdicts resolves to MIXED, and since no run
// voted MIXED every provider lands in dissent with confidence zero.
func TestReduceTie(t *testing.T) {
	c := Reduce([]model.ProviderRun{
		{Provider: "openai", Verdict: model.VerdictLikelyTrue, Confidence: 0.9},
		{Provider: "claude", Verdict: model.VerdictLikelyFalse, Confidence: 0.9},
	})

	assert.Equal(t, model.VerdictMixed, c.Verdict)
	assert.Zero(t, c.Confidence)
	assert.ElementsMatch(t, []string{"openai", "claude"}, c.Dissent)
}

// TestReduceErroredRunsExcluded: errored runs neither vote nor dilute the
// confidence mean.
func TestReduceErroredRunsExcluded(t *testing.T) {
	c := Reduce([]model.ProviderRun{
		{Provider: "openai", Verdict: model.VerdictLikelyTrue, Confidence: 0.9},
		{Provider: "claude", Error: "timeout"},
		{Provider: "gemini", Error: "rate limited"},
	})

	assert.Equal(t, model.VerdictLikelyTrue, c.Verdict)
	assert.InDelta(t, 0.9, c.Confidence, 1e-9)
	assert.Empty(t, c.Dissent)
}

// TestReduceAllErrored: every provider failing is a reported outcome, not a
// job failure.
func TestReduceAllErrored(t *testing.T) {
	c := Reduce([]model.ProviderRun{
		{Provider: "openai", Error: "timeout"},
		{Provider: "claude", Error: "timeout"},
	})

	assert.Equal(t, model.VerdictUncertain, c.Verdict)
	assert.Zero(t, c.Confidence)
	assert.Empty(t, c.Dissent)
}

func TestReduceEmpty(t *testing.T) {
	c := Reduce(nil)

	assert.Equal(t, model.VerdictUncertain, c.Verdict)
	assert.Zero(t, c.Confidence)
}

func TestStatusFor(t *testing.T) {
	status, ok := StatusFor(model.VerdictLikelyTrue)
	assert.True(t, ok)
	assert.Equal(t, model.StatusVerified, status)

	status, ok = StatusFor(model.VerdictLikelyFalse)
	assert.True(t, ok)
	assert.Equal(t, model.StatusRefuted, status)

	status, ok = StatusFor(model.VerdictMixed)
	assert.True(t, ok)
	assert.Equal(t, model.StatusMixed, status)

	_, ok = StatusFor(model.VerdictUncertain)
	assert.False(t, ok)
}
