package classify

import (
	"regexp"
	"strings"

	"github.com/civiclab/veritas/internal/core/model"
)

// Result labels one segment. The rule order below is the tie-break: the first
// matching rule wins, so a normative sentence with a number is policy, not
// claim, and anything ending in '?' is a question no matter what else it
// contains.
type Result struct {
	Kind       model.UnitKind `json:"kind"`
	Confidence float64        `json:"confidence"`
}

// Marker tables are bilingual (de/en); matching is word-bounded and
// case-insensitive.
var (
	normativeRe = wordRe("soll", "sollte", "sollten", "muss", "müssen", "darf",
		"verbot", "verboten", "erlaubt", "pflicht", "vorschrift",
		"should", "must", "ought", "ban", "banned", "forbidden", "mandatory")

	futureRe = wordRe("wird", "werden")

	evidenceRe = wordRe("laut", "studie", "studien", "statistik", "offiziell",
		"bericht", "according", "study", "studies", "statistics", "officially", "report")

	copulaRe = wordRe("ist", "sind", "war", "waren", "hat", "haben", "hatte",
		"is", "are", "was", "were", "has", "have", "had")

	numberRe = regexp.MustCompile(`\d`)

	opinionRe = regexp.MustCompile(`(?i)\b(ich finde|ich glaube|ich denke|meiner meinung|meines erachtens|` +
		`i think|i believe|i feel|in my opinion|` +
		`ungerecht|unfair|gerecht|schlimm|furchtbar|skandalös|toll|großartig|` +
		`unjust|outrageous|terrible|wonderful|disgraceful)\b`)
)

func wordRe(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

// Classify applies the ordered rule table to one segment. Fully deterministic,
// no model involved.
func Classify(text string) Result {
	if strings.HasSuffix(strings.TrimSpace(text), "?") {
		return Result{Kind: model.KindQuestion, Confidence: 0.9}
	}

	if normativeRe.MatchString(text) {
		return Result{Kind: model.KindPolicy, Confidence: 0.8}
	}

	hasNumber := numberRe.MatchString(text)
	hasEvidence := evidenceRe.MatchString(text)
	hasCopula := copulaRe.MatchString(text)

	if futureRe.MatchString(text) && !hasNumber && !hasEvidence {
		return Result{Kind: model.KindPrediction, Confidence: 0.6}
	}

	if (hasNumber || hasEvidence || hasCopula) && !opinionRe.MatchString(text) {
		conf := 0.4
		if hasNumber {
			conf += 0.3
		}
		if hasEvidence {
			conf += 0.2
		}
		if hasCopula {
			conf += 0.1
		}
		if conf > 1.0 {
			conf = 1.0
		}
		return Result{Kind: model.KindClaim, Confidence: conf}
	}

	return Result{Kind: model.KindOpinion, Confidence: 0.7}
}
