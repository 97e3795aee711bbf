// Package extract pulls period financial fields out of recovered statement
// text. Each supported format carries its own ordered rule set; all formats
// share one extraction engine and one output shape.
package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"investco/internal/domain"
	"investco/internal/money"
)

// amountPat matches a currency amount with optional dollar sign, thousands
// separators, and sign.
const amountPat = `-?\$?\s?-?[0-9][0-9,]*(?:\.[0-9]{1,2})?`

// datePat matches the date shapes statements print: "March 31, 2024",
// "03/31/2024", "2024-03-31".
const datePat = `(?:[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})`

// PatternRule is one attempt at a field. Pattern's first capture group holds
// the value text. Negate flips the sign of the captured amount, used by the
// parenthesized variant of signed fields. Last selects the final occurrence
// instead of the first, for running totals printed after itemized rows.
type PatternRule struct {
	Pattern *regexp.Regexp
	Negate  bool
	Last    bool
}

// FieldRule is the prioritized rule list for a single field. Rules run in
// order and the first rule that matches and parses wins. ZeroDefault marks
// fields the format is known never to report: absence becomes a zero amount
// instead of a missing field.
type FieldRule struct {
	Name        string
	Kind        domain.FieldKind
	Rules       []PatternRule
	ZeroDefault bool
}

// apply runs the rule list against text and reports whether any rule
// produced a value.
func (f FieldRule) apply(text string) (domain.FieldValue, bool) {
	for _, rule := range f.Rules {
		matches := rule.Pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		m := matches[0]
		if rule.Last {
			m = matches[len(matches)-1]
		}
		if len(m) < 2 {
			continue
		}
		raw := m[1]

		switch f.Kind {
		case domain.FieldAmount:
			amt, err := money.ParseAmount(raw)
			if err != nil {
				continue
			}
			if rule.Negate {
				amt = amt.Neg()
			}
			return domain.FieldValue{Kind: domain.FieldAmount, Amount: amt, Raw: m[0]}, true
		case domain.FieldDate:
			d, err := money.ParseDate(raw)
			if err != nil {
				continue
			}
			return domain.FieldValue{Kind: domain.FieldDate, Date: d, Raw: m[0]}, true
		default:
			return domain.FieldValue{Kind: domain.FieldText, Text: raw, Raw: m[0]}, true
		}
	}

	if f.ZeroDefault && f.Kind == domain.FieldAmount {
		return domain.FieldValue{Kind: domain.FieldAmount, Amount: decimal.Zero}, true
	}
	return domain.FieldValue{}, false
}

// RuleExtractor runs a format's rule set over recovered text. An optional
// post step derives composite fields that no single pattern can produce.
type RuleExtractor struct {
	format domain.FormatTag
	fields []FieldRule
	post   func(text string, m domain.FieldMap)
}

func NewRuleExtractor(format domain.FormatTag, fields []FieldRule) *RuleExtractor {
	return &RuleExtractor{format: format, fields: fields}
}

// WithPost sets the composite-field step, run after all field rules.
func (e *RuleExtractor) WithPost(post func(text string, m domain.FieldMap)) *RuleExtractor {
	e.post = post
	return e
}

func (e *RuleExtractor) Format() domain.FormatTag { return e.format }

func (e *RuleExtractor) Family() domain.StatementFamily { return e.format.Family() }

// Extract applies every field rule. Fields no rule matched are simply absent
// from the result; the validator decides whether that matters.
func (e *RuleExtractor) Extract(text string) domain.FieldMap {
	out := make(domain.FieldMap, len(e.fields))
	for _, f := range e.fields {
		if v, ok := f.apply(text); ok {
			out[f.Name] = v
		}
	}
	if e.post != nil {
		e.post(text, out)
	}
	return out
}

// amountRules builds the standard signed-amount rule pair for a labeled
// field: a plain form and a parenthesized form whose magnitude is negated.
func amountRules(labelPat string) []PatternRule {
	plain := regexp.MustCompile(`(?i)` + labelPat + `[:\s.]*(` + amountPat + `)`)
	paren := regexp.MustCompile(`(?i)` + labelPat + `[:\s.]*\((` + amountPat + `)\)`)
	return []PatternRule{
		{Pattern: paren, Negate: true},
		{Pattern: plain},
	}
}

// lastAmountRules is amountRules with last-occurrence selection, for totals
// that repeat per line item before the final figure.
func lastAmountRules(labelPat string) []PatternRule {
	rules := amountRules(labelPat)
	for i := range rules {
		rules[i].Last = true
	}
	return rules
}

func dateRules(labelPat string) []PatternRule {
	return []PatternRule{
		{Pattern: regexp.MustCompile(`(?i)` + labelPat + `[:\s]*(` + datePat + `)`)},
	}
}

func textRules(pattern string) []PatternRule {
	return []PatternRule{
		{Pattern: regexp.MustCompile(pattern)},
	}
}
