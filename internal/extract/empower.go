package extract

import "investco/internal/domain"

// NewEmpowerExtractor builds the rule set for Empower retirement-plan
// statements. The layout always prints contribution and gain/loss lines but
// only shows fees, loans, and withdrawals in periods that had them, so those
// default to zero.
func NewEmpowerExtractor() *RuleExtractor {
	fields := []FieldRule{
		{
			Name:  domain.FieldNamePeriodStart,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)(` + datePat + `)\s*(?:-|to|through)\s*` + datePat),
		},
		{
			Name:  domain.FieldNamePeriodEnd,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)` + datePat + `\s*(?:-|to|through)\s*(` + datePat + `)`),
		},
		{
			Name:  domain.FieldNameStatementDate,
			Kind:  domain.FieldDate,
			Rules: textRules(`(?i)` + datePat + `\s*(?:-|to|through)\s*(` + datePat + `)`),
		},
		{
			Name:  domain.FieldNameAccountNumber,
			Kind:  domain.FieldText,
			Rules: textRules(`(?i)(?:Plan|Account)\s+Number[:\s]+([A-Z0-9-]+)`),
		},
		{
			Name: domain.FieldNameBeginningValue,
			Kind: domain.FieldAmount,
			Rules: append(
				amountRules(`Beginning\s+Balance`),
				amountRules(`Opening\s+Balance`)...,
			),
		},
		{
			Name: domain.FieldNameEndingValue,
			Kind: domain.FieldAmount,
			Rules: append(
				amountRules(`Ending\s+Balance`),
				amountRules(`Closing\s+Balance`)...,
			),
		},
		{
			Name:  domain.FieldNameEmployeeContributions,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Employee\s+Contributions`),
		},
		{
			Name:  domain.FieldNameEmployerContributions,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Employer\s+Contributions`),
		},
		{
			Name: domain.FieldNameInvestmentGainLoss,
			Kind: domain.FieldAmount,
			Rules: append(
				amountRules(`Investment\s+Gain/?Loss`),
				amountRules(`Change\s+in\s+Investment\s+Value`)...,
			),
		},
		{
			Name:        domain.FieldNameWithdrawals,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Withdrawals`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameFees,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`(?:Plan\s+Administrative\s+)?Fees`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameLoanPayments,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Loan\s+Payments`),
			ZeroDefault: true,
		},
		{
			Name:  domain.FieldNameVestedBalance,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Vested\s+Balance`),
		},
	}
	return NewRuleExtractor(domain.FormatEmpower, fields)
}
