package triage

import (
	"fmt"
	"regexp"

	"github.com/civiclab/veritas/internal/core/model"
)

const watchlistConfidence = 0.7

// Triager flags units for expedited review. Pure and synchronous; the
// hot-topic patterns come from configuration.
type Triager struct {
	patterns []*regexp.Regexp
}

// DefaultPatterns covers the topics the newsroom watches by default.
func DefaultPatterns() []string {
	return []string{
		`(?i)\b(miete|mieten|mietpreis|mietendeckel|wohnung|wohnraum|rent|housing)`,
		`(?i)\b(wahl|wahlen|abstimmung|election|ballot|voting)`,
		`(?i)\b(gesundheit|krankenkasse|krankenhaus|impf|health|hospital|vaccine)`,
	}
}

// New compiles the configured hot-topic patterns.
func New(patterns []string) (*Triager, error) {
	t := &Triager{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid hot-topic pattern %q: %w", p, err)
		}
		t.patterns = append(t.patterns, re)
	}
	return t, nil
}

// Assess marks a unit watchlist when it is a confident claim or touches a hot
// topic.
func (t *Triager) Assess(u model.ExtractedUnit) model.TriageLevel {
	if u.Kind == model.KindClaim && u.Confidence >= watchlistConfidence {
		return model.TriageWatchlist
	}
	for _, re := range t.patterns {
		if re.MatchString(u.Text) {
			return model.TriageWatchlist
		}
	}
	return model.TriageNone
}
