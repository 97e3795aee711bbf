package extract

import "investco/internal/domain"

// NewValicExtractor builds the rule set for VALIC (Corebridge) annuity
// statements. Employer contributions map onto the premiums field; the layout
// has no withdrawal or tax lines, so both default to zero.
func NewValicExtractor() *RuleExtractor {
	fields := []FieldRule{
		{
			Name:  domain.FieldNamePeriodStart,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)(` + datePat + `)\s*-\s*` + datePat),
		},
		{
			Name:  domain.FieldNamePeriodEnd,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)` + datePat + `\s*-\s*(` + datePat + `)`),
		},
		{
			Name:  domain.FieldNameStatementDate,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)` + datePat + `\s*-\s*(` + datePat + `)`),
		},
		{
			Name:  domain.FieldNamePolicyNumber,
			Kind:  domain.FieldText,
			Rules: textRules(`(?i)Account\s+Number:\s*(\d+)`),
		},
		{
			Name:  domain.FieldNameBeginningValue,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Beginning\s+Value`),
		},
		{
			Name:  domain.FieldNameEndingValue,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Ending\s+Value`),
		},
		{
			Name:        domain.FieldNamePremiums,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Employer\s+contributions`),
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
		{
			Name:  domain.FieldNameNetChange,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Net\s+change\s+in\s+value`),
		},
	}
	return NewRuleExtractor(domain.FormatValic, fields)
}
