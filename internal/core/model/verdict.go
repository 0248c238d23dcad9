package model

// Verdict is a single provider's (or the consensus) judgement of a claim.
type Verdict string

const (
	VerdictLikelyTrue  Verdict = "LIKELY_TRUE"
	VerdictLikelyFalse Verdict = "LIKELY_FALSE"
	VerdictMixed       Verdict = "MIXED"
	VerdictUncertain   Verdict = "UNCERTAIN"
)

// Evidence is a citation supporting a provider's verdict.
type Evidence struct {
	Source string `json:"source"`
	Quote  string `json:"quote"`
	URL    string `json:"url,omitempty"`
}

// ProviderRun records one provider's attempt at one claim. An errored run has
// Error set and no verdict; it is excluded from majority voting.
type ProviderRun struct {
	Provider   string     `json:"provider"`
	Verdict    Verdict    `json:"verdict,omitempty"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence,omitempty"`
	LatencyMs  int64      `json:"latency_ms"`
	TokensUsed int        `json:"tokens_used,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Errored reports whether the run failed before producing a verdict.
func (r ProviderRun) Errored() bool {
	return r.Error != ""
}

// Consensus reduces a claim's provider runs to one verdict. Dissent names the
// providers that voted against the majority.
type Consensus struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence float64  `json:"confidence"`
	Dissent    []string `json:"dissent,omitempty"`
}
