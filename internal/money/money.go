// Package money parses currency amounts and statement dates out of raw
// document text.
package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a matched currency string into a decimal. It accepts
// leading dollar signs, thousands separators, a leading minus sign, and
// accountant-style parentheses for negatives: "(1,234.56)" == -1234.56.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("money.ParseAmount: empty input")
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money.ParseAmount: %q: %w", raw, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// dateLayouts is ordered most specific first so that unambiguous layouts win
// before the short numeric forms.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"01-02-2006",
}

// ParseDate converts a matched date string into a time.Time, trying the
// formats statements actually print.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("money.ParseDate: empty input")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("money.ParseDate: unrecognized date %q", raw)
}
