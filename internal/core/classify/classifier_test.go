package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civiclab/veritas/internal/core/model"
)

func TestClassifyClaim(t *testing.T) {
	r := Classify("Die Mieten in Berlin sind um 8% gestiegen")

	assert.Equal(t, model.KindClaim, r.Kind)
	// number + copula on the claim base score
	assert.InDelta(t, 0.8, r.Confidence, 1e-9)
}

func TestClassifyOpinion(t *testing.T) {
	r := Classify("Das ist ungerecht.")

	assert.Equal(t, model.KindOpinion, r.Kind)
	assert.InDelta(t, 0.7, r.Confidence, 1e-9)
}

func TestClassifyPolicy(t *testing.T) {
	r := Classify("Der Senat sollte den Mietendeckel wieder einführen.")

	assert.Equal(t, model.KindPolicy, r.Kind)
	assert.InDelta(t, 0.8, r.Confidence, 1e-9)
}

func TestClassifyQuestion(t *testing.T) {
	r := Classify("Sind die Mieten wirklich um 8% gestiegen?")

	assert.Equal(t, model.KindQuestion, r.Kind)
	assert.InDelta(t, 0.9, r.Confidence, 1e-9)
}

func TestClassifyPrediction(t *testing.T) {
	r := Classify("Die Mieten werden weiter steigen")

	assert.Equal(t, model.KindPrediction, r.Kind)
	assert.InDelta(t, 0.6, r.Confidence, 1e-9)
}

// TestClassifyQuestionWinsOverEverything: the question rule fires first even
// when the text carries normative and numeric markers.
func TestClassifyQuestionWinsOverEverything(t *testing.T) {
	r := Classify("Sollte die Stadt 500 neue Wohnungen bauen?")

	assert.Equal(t, model.KindQuestion, r.Kind)
}

// TestClassifyPolicyWinsOverClaim: normative language beats the factual
// markers, so a number inside a demand stays policy.
func TestClassifyPolicyWinsOverClaim(t *testing.T) {
	r := Classify("Die Stadt muss 500 neue Wohnungen bauen")

	assert.Equal(t, model.KindPolicy, r.Kind)
}

// TestClassifyFutureWithNumberIsClaim: "wird" alone is not enough once the
// sentence carries a checkable figure.
func TestClassifyFutureWithNumberIsClaim(t *testing.T) {
	r := Classify("Die Miete wird 2025 um 12% steigen")

	assert.Equal(t, model.KindClaim, r.Kind)
}

func TestClassifyEvidenceMarkers(t *testing.T) {
	r := Classify("Laut Studie stiegen die Mieten deutlich")

	assert.Equal(t, model.KindClaim, r.Kind)
	// evidence marker only
	assert.InDelta(t, 0.6, r.Confidence, 1e-9)
}

func TestClassifyEnglishMarkers(t *testing.T) {
	assert.Equal(t, model.KindPolicy, Classify("The city must build more housing").Kind)
	assert.Equal(t, model.KindClaim, Classify("Rents increased by 8% according to the report").Kind)
	assert.Equal(t, model.KindOpinion, Classify("I think this whole debate misses the point").Kind)
}

func TestClassifyConfidenceCapped(t *testing.T) {
	r := Classify("Laut offizieller Statistik sind die Mieten 2024 um 8% gestiegen")

	assert.Equal(t, model.KindClaim, r.Kind)
	assert.LessOrEqual(t, r.Confidence, 1.0)
}
