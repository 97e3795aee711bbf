package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"investco/internal/domain"
	"investco/internal/money"
)

var (
	tiaaGainsLossParen = regexp.MustCompile(`(?i)Gains/Loss\s+\(\$\s*([0-9][0-9,]*\.[0-9]{2})\)`)
	tiaaGainsLossPlain = regexp.MustCompile(`(?i)Gains/Loss\s+\$\s*([0-9][0-9,]*\.[0-9]{2})`)
	tiaaInterest       = regexp.MustCompile(`(?i)TIAA\s+Interest\s+\$\s*([0-9][0-9,]*\.[0-9]{2})`)
)

// NewTIAAExtractor builds the rule set for TIAA annuity statements. TIAA
// never reports withdrawals or tax withholding on this layout, so both
// default to zero, and the net change is the sum of the Gains/Loss and TIAA
// Interest lines rather than a single printed figure.
func NewTIAAExtractor() *RuleExtractor {
	fields := []FieldRule{
		{
			Name:  domain.FieldNamePeriodStart,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)(` + datePat + `)\s+to\s+` + datePat),
		},
		{
			Name:  domain.FieldNamePeriodEnd,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)` + datePat + `\s+to\s+(` + datePat + `)`),
		},
		{
			Name:  domain.FieldNameStatementDate,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)` + datePat + `\s+to\s+(` + datePat + `)`),
		},
		{
			Name:  domain.FieldNamePolicyNumber,
			Kind:  domain.FieldText,
			Rules: textRules(`([CU]\d{6}-\d)`),
		},
		{
			Name:  domain.FieldNameBeginningValue,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Beginning\s+balance`),
		},
		{
			// First occurrence: the label repeats in per-fund sections.
			Name:  domain.FieldNameEndingValue,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Ending\s+balance`),
		},
		{
			Name:        domain.FieldNamePremiums,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Other\s+Credits`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameWithdrawals,
			Kind:        domain.FieldAmount,
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameTaxWithholding,
			Kind:        domain.FieldAmount,
			ZeroDefault: true,
		},
	}

	return NewRuleExtractor(domain.FormatTIAA, fields).WithPost(tiaaNetChange)
}

// tiaaNetChange sums the Gains/Loss line (parenthesized form negated) with
// the TIAA Interest line into the net_change field.
func tiaaNetChange(text string, m domain.FieldMap) {
	net := decimal.Zero
	raw := ""

	if match := tiaaGainsLossParen.FindStringSubmatch(text); match != nil {
		if amt, err := money.ParseAmount(match[1]); err == nil {
			net = net.Sub(amt)
			raw = match[0]
		}
	} else if match := tiaaGainsLossPlain.FindStringSubmatch(text); match != nil {
		if amt, err := money.ParseAmount(match[1]); err == nil {
			net = net.Add(amt)
			raw = match[0]
		}
	}

	if match := tiaaInterest.FindStringSubmatch(text); match != nil {
		if amt, err := money.ParseAmount(match[1]); err == nil {
			net = net.Add(amt)
			if raw != "" {
				raw += " + "
			}
			raw += match[0]
		}
	}

	m[domain.FieldNameNetChange] = domain.FieldValue{
		Kind:   domain.FieldAmount,
		Amount: net,
		Raw:    raw,
	}
}
