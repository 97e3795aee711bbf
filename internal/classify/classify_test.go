package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"investco/internal/domain"
)

func TestClassifyKnownFormats(t *testing.T) {
	c := NewDefaultClassifier()

	cases := []struct {
		name string
		text string
		want domain.FormatTag
	}{
		{"valic legacy name", "VALIC Retirement Services annuity statement", domain.FormatValic},
		{"valic corebridge rebrand", "Corebridge Financial quarterly statement", domain.FormatValic},
		{"tiaa", "TIAA Traditional Annuity account summary", domain.FormatTIAA},
		{"cref alone", "CREF Stock Account period summary", domain.FormatTIAA},
		{"empower", "Empower Retirement plan statement", domain.FormatEmpower},
		{"schwab", "Charles Schwab & Co. brokerage statement", domain.FormatSchwab},
		{"jackson by name", "Jackson National Life Insurance Company", domain.FormatJackson},
		{"jackson by contract number", "Your Contract Number: 12345678", domain.FormatJackson},
		{"case insensitive", "empower RETIREMENT", domain.FormatEmpower},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.text))
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	c := NewDefaultClassifier()
	assert.Equal(t, domain.FormatUnknown, c.Classify("Generic Bank monthly summary"))
	assert.Equal(t, domain.FormatUnknown, c.Classify(""))
}

// Narrow vendor signatures must win over Jackson's generic "contract number"
// token when both appear on the same page.
func TestClassifySpecificBeatsGeneric(t *testing.T) {
	c := NewDefaultClassifier()
	text := "TIAA annuity statement. Contract Number: ABC-123"
	assert.Equal(t, domain.FormatTIAA, c.Classify(text))

	text = "Corebridge Financial. Contract Number: XYZ-999"
	assert.Equal(t, domain.FormatValic, c.Classify(text))
}

func TestSignaturePriorityOrdering(t *testing.T) {
	c := NewDefaultClassifier()
	sigs := c.Signatures()
	for i := 1; i < len(sigs); i++ {
		assert.LessOrEqual(t, sigs[i-1].Priority, sigs[i].Priority,
			"signatures must be checked in ascending priority order")
	}
	// Jackson must be checked last.
	assert.Equal(t, domain.FormatJackson, sigs[len(sigs)-1].Tag)
}

func TestNewClassifierSortsByPriority(t *testing.T) {
	c := NewClassifier([]Signature{
		{Tag: domain.FormatJackson, Priority: 50, AnyOf: [][]string{{"jackson"}}},
		{Tag: domain.FormatTIAA, Priority: 20, AnyOf: [][]string{{"tiaa"}}},
	})
	sigs := c.Signatures()
	assert.Equal(t, domain.FormatTIAA, sigs[0].Tag)
	assert.Equal(t, domain.FormatJackson, sigs[1].Tag)
}
