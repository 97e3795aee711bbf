package extract

import "investco/internal/domain"

// NewJacksonExtractor builds the rule set for Jackson National annuity
// statements. Jackson prints every activity total, so none of its fields
// default to zero: a missing field means the page did not parse.
func NewJacksonExtractor() *RuleExtractor {
	fields := []FieldRule{
		{
			Name: domain.FieldNamePeriodStart,
			Kind: domain.FieldDate,
			Rules: append(
				dateRules(`For\s+the\s+period\s+of`),
				dateRules(`Beginning\s+Value\s+on`)...,
			),
		},
		{
			Name: domain.FieldNamePeriodEnd,
			Kind: domain.FieldDate,
			Rules: append(
				dateRules(`For\s+the\s+period\s+of\s+`+datePat+`\s+to`),
				dateRules(`Ending\s+Value\s+on`)...,
			),
		},
		{
			Name: domain.FieldNameStatementDate,
			Kind: domain.FieldDate,
			Rules: append(
				dateRules(`Ending\s+Value\s+on`),
				dateRules(`For\s+the\s+period\s+of\s+`+datePat+`\s+to`)...,
			),
		},
		{
			Name: domain.FieldNamePolicyNumber,
			Kind: domain.FieldText,
			Rules: append(
				textRules(`(?i)Contract\s+Number[:\s]+(\d+)`),
				textRules(`(?i)Policy\s+Number[:\s]+(\d+)`)...,
			),
		},
		{
			Name: domain.FieldNameBeginningValue,
			Kind: domain.FieldAmount,
			Rules: append(
				amountRules(`Beginning\s+Value\s+on\s+`+datePat),
				amountRules(`Beginning\s+Value`)...,
			),
		},
		{
			Name: domain.FieldNameEndingValue,
			Kind: domain.FieldAmount,
			Rules: append(
				amountRules(`Ending\s+Value\s+on\s+`+datePat),
				amountRules(`Ending\s+Value`)...,
			),
		},
		{
			Name:  domain.FieldNamePremiums,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Total\s+Premium`),
		},
		{
			Name:  domain.FieldNameWithdrawals,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Total\s+Withdrawals`),
		},
		{
			// Jackson statements spell this both "Withheld" and "Witheld".
			Name:  domain.FieldNameTaxWithholding,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Total\s+Tax\s+With[h]?eld`),
		},
		{
			Name:  domain.FieldNameNetChange,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Net\s+Change`),
		},
		{
			Name:  domain.FieldNameRemainingGuaranteedBalance,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Remaining\s+Guaranteed\s+Withdrawal\s+Balance`),
		},
		{
			Name:  domain.FieldNameDeathBenefit,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Death\s+Benefit\s+Value`),
		},
	}
	return NewRuleExtractor(domain.FormatJackson, fields)
}
