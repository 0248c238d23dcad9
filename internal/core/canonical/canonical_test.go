package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKeyEquivalentPhrasings: case, punctuation, word order and stopwords must
// not change the key.
func TestKeyEquivalentPhrasings(t *testing.T) {
	a := Key("Berlin 2024: Mieten stiegen um 8%.", "", "")
	b := Key("mieten stiegen um 8 % in berlin 2024", "", "")

	assert.Equal(t, a, b)
}

func TestKeyDeterministic(t *testing.T) {
	text := "Die Mieten in Berlin sind um 8% gestiegen"

	first := Key(text, "berlin", "2024")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Key(text, "berlin", "2024"))
	}
}

func TestKeyIsHexDigest(t *testing.T) {
	k := Key("Die Mieten sind gestiegen", "", "")

	assert.Len(t, k, 64)
	assert.Regexp(t, "^[0-9a-f]+$", k)
}

// TestKeyScopeAndTimeframeQualify: the same text under different qualifiers is
// a different claim.
func TestKeyScopeAndTimeframeQualify(t *testing.T) {
	base := Key("Die Mieten stiegen um 8%", "", "")

	assert.NotEqual(t, base, Key("Die Mieten stiegen um 8%", "berlin", ""))
	assert.NotEqual(t, base, Key("Die Mieten stiegen um 8%", "", "2024"))
}

// TestKeyQualifierDefaults: empty scope and timeframe normalize to their
// defaults, so "" and the explicit default collide on purpose.
func TestKeyQualifierDefaults(t *testing.T) {
	assert.Equal(t,
		Key("Die Mieten stiegen", "", ""),
		Key("Die Mieten stiegen", "Global", " any "))
}

func TestKeyDifferentContent(t *testing.T) {
	assert.NotEqual(t,
		Key("Die Mieten stiegen um 8%", "", ""),
		Key("Die Mieten stiegen um 9%", "", ""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "2024 8 berlin mieten stiegen", Normalize("Berlin 2024: Mieten stiegen um 8%."))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("der die das in im"))
}

// TestKeyKeepsConjunctions: "und" and "oder" are content, not filler; a joint
// claim and an alternative claim must not collide on one key.
func TestKeyKeepsConjunctions(t *testing.T) {
	assert.NotEqual(t,
		Key("Mieten und Löhne stiegen", "", ""),
		Key("Mieten oder Löhne stiegen", "", ""))
	assert.NotEqual(t,
		Normalize("Mieten und Löhne stiegen"),
		Normalize("Mieten Löhne stiegen"))
}

// TestNormalizeUnicodeForm: NFKC folds compatibility characters before
// hashing, so a full-width digit equals its ASCII form.
func TestNormalizeUnicodeForm(t *testing.T) {
	assert.Equal(t, Normalize("Miete stieg um 8"), Normalize("Miete stieg um ８"))
}
