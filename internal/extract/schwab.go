package extract

import "investco/internal/domain"

// NewSchwabExtractor builds the rule set for Charles Schwab brokerage
// statements. Account-value totals repeat per section before the summary
// figure, so both balances select the last occurrence. Activity lines only
// print in periods that had the activity and default to zero.
func NewSchwabExtractor() *RuleExtractor {
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
			Rules: textRules(`(?i)Account\s+Number[:\s]+([0-9-]+)`),
		},
		{
			Name:  domain.FieldNameBeginningValue,
			Kind:  domain.FieldAmount,
			Rules: lastAmountRules(`Beginning\s+Account\s+Value`),
		},
		{
			Name:  domain.FieldNameEndingValue,
			Kind:  domain.FieldAmount,
			Rules: lastAmountRules(`Ending\s+Account\s+Value`),
		},
		{
			Name:        domain.FieldNameDeposits,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`(?:Total\s+)?Deposits`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameWithdrawals,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`(?:Total\s+)?Withdrawals`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameDividends,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Dividends(?:\s+and\s+Distributions)?`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameInterest,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Interest(?:\s+Earned)?`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameCapitalGains,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Capital\s+Gains`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameMarketChange,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Change\s+in\s+(?:Market\s+)?Value`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameFees,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`(?:Total\s+)?Fees(?:\s+and\s+Charges)?`),
			ZeroDefault: true,
		},
		{
			Name:        domain.FieldNameOtherActivity,
			Kind:        domain.FieldAmount,
			Rules:       amountRules(`Other\s+Activity`),
			ZeroDefault: true,
		},
		{
			Name:  domain.FieldNameMoneyMarket,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Money\s+Market\s+Funds?`),
		},
		{
			Name:  domain.FieldNameEquities,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Equities`),
		},
		{
			Name:  domain.FieldNameFixedIncome,
			Kind:  domain.FieldAmount,
			Rules: amountRules(`Fixed\s+Income`),
		},
	}
	return NewRuleExtractor(domain.FormatSchwab, fields)
}
