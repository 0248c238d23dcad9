package provider

import "fmt"

// buildPrompt instructs the engine to answer with nothing but the verdict
// JSON. Providers that still wrap it in prose are handled by the boundary
// parser.
func buildPrompt(req Request) string {
	scope := req.Scope
	if scope == "" {
		scope = "global"
	}
	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = "any"
	}

	return fmt.Sprintf(`You are a fact-verification engine. Assess the following claim strictly on verifiable evidence.

Claim: %s
Scope: %s
Timeframe: %s

Rules:
1. Judge only the claim as stated, within the given scope and timeframe.
2. If evidence is insufficient or conflicting, say so via the verdict - never guess.
3. Cite concrete sources; do not invent citations.

Respond with ONLY a JSON object in exactly this shape:
{"verdict": "LIKELY_TRUE" | "LIKELY_FALSE" | "MIXED" | "UNCERTAIN", "confidence": 0.0, "evidence": [{"source": "", "quote": "", "url": ""}]}`,
		req.Text, scope, timeframe)
}
