// Package canonical computes the stable content-address identifying
// semantically equivalent claims. The key is a durable on-disk contract:
// downstream consumers (editorial review, evidence graph) key off it, so the
// normalization below must never change incompatibly.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	defaultScope     = "global"
	defaultTimeframe = "any"
)

// Filler words carry no claim content in either language. Dropping them (and
// sorting the remaining tokens) makes the key invariant under word order and
// phrasing like "Mieten stiegen in Berlin" vs "Berlin: Mieten stiegen".
// Coordinating conjunctions are deliberately not in the table: "Mieten und
// Löhne stiegen" and "Mieten oder Löhne stiegen" are different claims.
var stopwords = map[string]bool{
	"der": true, "die": true, "das": true, "den": true, "dem": true, "des": true,
	"ein": true, "eine": true, "einen": true, "einem": true, "einer": true,
	"in": true, "im": true, "an": true, "am": true, "auf": true, "um": true,
	"für": true, "von": true, "mit": true, "zu": true, "bei": true, "aus": true,
	"the": true, "a": true, "of": true, "to": true, "on": true, "at": true,
	"for": true, "with": true, "by": true, "from": true,
}

// Key returns the canonical SHA-256 hex digest for a claim. Two claims with
// the same content, scope and timeframe produce the same key regardless of
// case, punctuation, Unicode form, whitespace or word order.
func Key(text, scope, timeframe string) string {
	payload := qualifier(scope, defaultScope) + "|" +
		qualifier(timeframe, defaultTimeframe) + "|" +
		Normalize(text)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Normalize reduces claim text to its content tokens: NFKC, lowercase,
// punctuation stripped to spaces, stopwords dropped, tokens sorted.
func Normalize(text string) string {
	t := strings.ToLower(norm.NFKC.String(text))

	var b strings.Builder
	for _, r := range t {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		if !stopwords[tok] {
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func qualifier(v, fallback string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return fallback
	}
	return v
}
