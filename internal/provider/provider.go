// Package provider adapts external verification engines. Every adapter
// parses and validates the provider's JSON at this boundary; nothing loose
// crosses into the pipeline.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/civiclab/veritas/internal/core/common"
	"github.com/civiclab/veritas/internal/core/model"
)

// Request carries one claim to a provider.
type Request struct {
	Text      string
	Scope     string
	Timeframe string
}

// Response is a validated provider verdict.
type Response struct {
	Verdict    model.Verdict
	Confidence float64
	Evidence   []model.Evidence
	TokensUsed int
}

// Provider is one verification engine invoked per claim.
type Provider interface {
	Name() string
	Verify(ctx context.Context, req Request) (*Response, error)
}

type verdictPayload struct {
	Verdict    string           `json:"verdict"`
	Confidence float64          `json:"confidence"`
	Evidence   []model.Evidence `json:"evidence"`
}

// parseResponse validates the raw completion text into a Response. A verdict
// outside the known set is this call's failure, not a silent UNCERTAIN.
func parseResponse(raw string) (*Response, error) {
	payload, err := common.ParseJSON[verdictPayload](raw)
	if err != nil {
		return nil, err
	}

	verdict, err := parseVerdict(payload.Verdict)
	if err != nil {
		return nil, err
	}

	conf := payload.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}

	return &Response{
		Verdict:    verdict,
		Confidence: conf,
		Evidence:   payload.Evidence,
	}, nil
}

func parseVerdict(s string) (model.Verdict, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch model.Verdict(normalized) {
	case model.VerdictLikelyTrue, model.VerdictLikelyFalse, model.VerdictMixed, model.VerdictUncertain:
		return model.Verdict(normalized), nil
	default:
		return "", fmt.Errorf("unknown verdict %q", s)
	}
}
