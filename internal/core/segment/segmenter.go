package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment is one candidate span of the source text. Kind and confidence are
// assigned later by the classifier.
type Segment struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

const (
	minSentenceLen = 15
	minClauseLen   = 12
)

var (
	paragraphSep  = regexp.MustCompile(`\n[ \t]*\n+`)
	conjunctionRe = regexp.MustCompile(`(?i)\s(und|oder|sowie|jedoch|doch|and|but|or|however)\s`)
)

// Split segments raw text into candidate clauses: blank-line paragraphs,
// sentence boundaries on final punctuation followed by whitespace and an
// uppercase letter (or end of input), coordinated clauses split only when
// every resulting part stays readable. Pure and deterministic; the language
// hint is reserved for the remote splitter, local marker tables are
// bilingual.
func Split(text, lang string) []Segment {
	_ = lang

	var out []Segment
	seen := make(map[string]bool)

	for _, p := range paragraphs(text) {
		for _, s := range sentences(text, p) {
			if utf8.RuneCountInString(s.Text) < minSentenceLen {
				continue
			}
			for _, c := range clauses(s) {
				key := strings.ToLower(c.Text)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, c)
			}
		}
	}

	return out
}

func paragraphs(text string) []Segment {
	var parts []Segment
	start := 0
	for _, sep := range paragraphSep.FindAllStringIndex(text, -1) {
		parts = append(parts, trim(text, start, sep[0]))
		start = sep[1]
	}
	parts = append(parts, trim(text, start, len(text)))

	var out []Segment
	for _, p := range parts {
		if p.Text != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentences scans one paragraph for sentence-final punctuation. A terminator
// only closes a sentence when followed by whitespace and an uppercase letter,
// or by the end of the paragraph; this keeps decimals and abbreviations
// intact.
func sentences(text string, p Segment) []Segment {
	var out []Segment
	start := p.Start
	i := p.Start
	for i < p.End {
		r, width := utf8.DecodeRuneInString(text[i:p.End])
		i += width
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i >= p.End || boundaryFollows(text, i, p.End) {
			s := trim(text, start, i)
			if s.Text != "" {
				out = append(out, s)
			}
			start = i
		}
	}
	if start < p.End {
		s := trim(text, start, p.End)
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}

func boundaryFollows(text string, i, end int) bool {
	sawSpace := false
	for i < end {
		r, width := utf8.DecodeRuneInString(text[i:end])
		if unicode.IsSpace(r) {
			sawSpace = true
			i += width
			continue
		}
		return sawSpace && unicode.IsUpper(r)
	}
	return false
}

// clauses splits a sentence at coordinating conjunctions, but only when every
// resulting sub-clause is at least minClauseLen runes; otherwise the sentence
// stays whole so short coordinated clauses are not shredded.
func clauses(s Segment) []Segment {
	matches := conjunctionRe.FindAllStringIndex(s.Text, -1)
	if len(matches) == 0 {
		return []Segment{s}
	}

	var parts []Segment
	start := 0
	for _, m := range matches {
		parts = append(parts, trim(s.Text, start, m[0]))
		start = m[1]
	}
	parts = append(parts, trim(s.Text, start, len(s.Text)))

	for _, p := range parts {
		if utf8.RuneCountInString(p.Text) < minClauseLen {
			return []Segment{s}
		}
	}

	for i := range parts {
		parts[i].Start += s.Start
		parts[i].End += s.Start
	}
	return parts
}

func trim(text string, start, end int) Segment {
	for start < end {
		r, width := utf8.DecodeRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += width
	}
	for end > start {
		r, width := utf8.DecodeLastRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= width
	}
	return Segment{Text: text[start:end], Start: start, End: end}
}
