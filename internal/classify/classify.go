// Package classify maps recovered statement text to the institutional format
// that produced it.
package classify

import (
	"sort"
	"strings"

	"investco/internal/domain"
)

// Signature identifies one vendor format. A signature matches when any of
// its token groups has every token present in the text, case-insensitively.
// Priority is explicit so that ordering is a tested property instead of a
// side effect of list position: lower numbers are checked first, and narrow
// signatures carry lower numbers than generic ones.
type Signature struct {
	Tag      domain.FormatTag
	Priority int
	AnyOf    [][]string
}

func (s Signature) matches(lower string) bool {
	for _, group := range s.AnyOf {
		all := true
		for _, token := range group {
			if !strings.Contains(lower, token) {
				all = false
				break
			}
		}
		if all && len(group) > 0 {
			return true
		}
	}
	return false
}

// DefaultSignatures returns the supported vendor signatures. Jackson sits
// last because its "contract number" token appears on other vendors' pages
// too.
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Tag:      domain.FormatValic,
			Priority: 10,
			AnyOf:    [][]string{{"corebridge"}, {"valic"}},
		},
		{
			Tag:      domain.FormatTIAA,
			Priority: 20,
			AnyOf:    [][]string{{"tiaa"}, {"cref"}},
		},
		{
			Tag:      domain.FormatEmpower,
			Priority: 30,
			AnyOf:    [][]string{{"empower"}},
		},
		{
			Tag:      domain.FormatSchwab,
			Priority: 40,
			AnyOf:    [][]string{{"charles schwab"}, {"schwab"}},
		},
		{
			Tag:      domain.FormatJackson,
			Priority: 50,
			AnyOf:    [][]string{{"jackson national"}, {"jackson"}, {"contract number"}},
		},
	}
}

// Classifier checks signatures in priority order.
type Classifier struct {
	signatures []Signature
}

// NewClassifier sorts the given signatures by priority. Equal priorities keep
// their given order.
func NewClassifier(signatures []Signature) *Classifier {
	sorted := make([]Signature, len(signatures))
	copy(sorted, signatures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Classifier{signatures: sorted}
}

// NewDefaultClassifier builds a Classifier over DefaultSignatures.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultSignatures())
}

// Classify returns the first matching format tag, or FormatUnknown when no
// signature matches. Unknown is not an error: extraction still runs with the
// default rule set and validation reports what it could not find.
func (c *Classifier) Classify(text string) domain.FormatTag {
	lower := strings.ToLower(text)
	for _, sig := range c.signatures {
		if sig.matches(lower) {
			return sig.Tag
		}
	}
	return domain.FormatUnknown
}

// Signatures exposes the resolved check order.
func (c *Classifier) Signatures() []Signature {
	out := make([]Signature, len(c.signatures))
	copy(out, c.signatures)
	return out
}
