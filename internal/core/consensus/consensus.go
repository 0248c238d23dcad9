// Package consensus reduces independent provider verdicts on one claim to a
// single outcome.
package consensus

import (
	"github.com/civiclab/veritas/internal/core/model"
)

// Reduce computes the majority verdict among non-errored runs. Ties break
// toward MIXED, confidence is the mean over the runs agreeing with the
// winner, and dissent names every provider that voted differently. When all
// providers errored the result is UNCERTAIN at confidence zero; that is a
// reported outcome, not a failure.
func Reduce(runs []model.ProviderRun) model.Consensus {
	votes := make(map[model.Verdict]int)
	for _, r := range runs {
		if r.Errored() {
			continue
		}
		votes[r.Verdict]++
	}

	if len(votes) == 0 {
		return model.Consensus{Verdict: model.VerdictUncertain, Confidence: 0}
	}

	winner, tied := majority(votes)
	if tied {
		winner = model.VerdictMixed
	}

	var sum float64
	var agreeing int
	var dissent []string
	for _, r := range runs {
		if r.Errored() {
			continue
		}
		if r.Verdict == winner {
			sum += r.Confidence
			agreeing++
		} else {
			dissent = append(dissent, r.Provider)
		}
	}

	c := model.Consensus{Verdict: winner, Dissent: dissent}
	if agreeing > 0 {
		c.Confidence = sum / float64(agreeing)
	}
	return c
}

func majority(votes map[model.Verdict]int) (model.Verdict, bool) {
	var winner model.Verdict
	best := -1
	tied := false
	// Deterministic scan order so a tie is detected regardless of map order.
	for _, v := range []model.Verdict{model.VerdictLikelyTrue, model.VerdictLikelyFalse, model.VerdictMixed, model.VerdictUncertain} {
		n, ok := votes[v]
		if !ok {
			continue
		}
		switch {
		case n > best:
			winner, best, tied = v, n, false
		case n == best:
			tied = true
		}
	}
	return winner, tied
}

// StatusFor maps a consensus verdict to the canonical claim status. The
// second return is false when the claim should stay untouched (OPEN stays
// whatever it already was).
func StatusFor(v model.Verdict) (model.ClaimStatus, bool) {
	switch v {
	case model.VerdictLikelyTrue:
		return model.StatusVerified, true
	case model.VerdictLikelyFalse:
		return model.StatusRefuted, true
	case model.VerdictMixed:
		return model.StatusMixed, true
	default:
		return model.StatusOpen, false
	}
}
