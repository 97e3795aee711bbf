package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldKind identifies how a FieldValue should be interpreted.
type FieldKind string

const (
	FieldAmount FieldKind = "amount"
	FieldDate   FieldKind = "date"
	FieldText   FieldKind = "text"
)

// FieldValue is a single extracted field along with the raw matched text it
// was parsed from.
type FieldValue struct {
	Kind   FieldKind       `json:"kind"`
	Amount decimal.Decimal `json:"amount,omitempty"`
	Date   time.Time       `json:"date,omitempty"`
	Text   string          `json:"text,omitempty"`
	Raw    string          `json:"raw"`
}

// FieldMap is the per-field output of a statement extractor, keyed by
// canonical field name.
type FieldMap map[string]FieldValue

// Amount returns the named amount field, or zero when absent. Consumers that
// need presence use the second return.
func (m FieldMap) Amount(name string) (decimal.Decimal, bool) {
	v, ok := m[name]
	if !ok || v.Kind != FieldAmount {
		return decimal.Zero, false
	}
	return v.Amount, true
}

// AmountOrZero returns the named amount field, defaulting absent fields to
// zero.
func (m FieldMap) AmountOrZero(name string) decimal.Decimal {
	v, _ := m.Amount(name)
	return v
}

func (m FieldMap) Date(name string) (time.Time, bool) {
	v, ok := m[name]
	if !ok || v.Kind != FieldDate {
		return time.Time{}, false
	}
	return v.Date, true
}

func (m FieldMap) Text(name string) (string, bool) {
	v, ok := m[name]
	if !ok || v.Kind != FieldText {
		return "", false
	}
	return v.Text, true
}

func (m FieldMap) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Canonical field names shared by extractors, validators, and the statement
// builder. Not every format produces every field.
const (
	FieldNameStatementDate  = "statement_date"
	FieldNamePeriodStart    = "period_start"
	FieldNamePeriodEnd      = "period_end"
	FieldNameAccountNumber  = "account_number"
	FieldNamePolicyNumber   = "policy_number"
	FieldNameBeginningValue = "beginning_value"
	FieldNameEndingValue    = "ending_value"

	FieldNamePremiums       = "premiums"
	FieldNameWithdrawals    = "withdrawals"
	FieldNameTaxWithholding = "tax_withholding"
	FieldNameNetChange      = "net_change"

	FieldNameEmployeeContributions = "employee_contributions"
	FieldNameEmployerContributions = "employer_contributions"
	FieldNameInvestmentGainLoss    = "investment_gain_loss"
	FieldNameFees                  = "fees"
	FieldNameLoanPayments          = "loan_payments"

	FieldNameDeposits      = "deposits"
	FieldNameDividends     = "dividends"
	FieldNameInterest      = "interest"
	FieldNameCapitalGains  = "capital_gains"
	FieldNameMarketChange  = "market_change"
	FieldNameOtherActivity = "other_activity"

	FieldNameRemainingGuaranteedBalance = "remaining_guaranteed_balance"
	FieldNameDeathBenefit               = "death_benefit"
	FieldNameVestedBalance              = "vested_balance"
	FieldNameMoneyMarket                = "money_market"
	FieldNameEquities                   = "equities"
	FieldNameFixedIncome                = "fixed_income"
)
