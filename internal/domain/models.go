package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is an account or contract that receives periodic statements.
type Investment struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Kind          InvestmentKind `db:"kind" json:"kind"`
	Institution   string         `db:"institution" json:"institution"`
	AccountNumber string         `db:"account_number" json:"account_number"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// Statement is one validated period record for an investment. The Family tag
// determines which activity fields are meaningful; formats that never report
// a field persist it as zero. Optional balances are null when the source
// document did not carry them.
type Statement struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	InvestmentID  uuid.UUID       `db:"investment_id" json:"investment_id"`
	Family        StatementFamily `db:"family" json:"family"`
	Format        FormatTag       `db:"format" json:"format"`
	StatementDate time.Time       `db:"statement_date" json:"statement_date"`
	PeriodStart   time.Time       `db:"period_start" json:"period_start"`
	PeriodEnd     time.Time       `db:"period_end" json:"period_end"`
	AccountNumber string          `db:"account_number" json:"account_number"`

	BeginningValue decimal.Decimal `db:"beginning_value" json:"beginning_value"`
	EndingValue    decimal.Decimal `db:"ending_value" json:"ending_value"`

	// Annuity activity
	Premiums       decimal.Decimal `db:"premiums" json:"premiums"`
	TaxWithholding decimal.Decimal `db:"tax_withholding" json:"tax_withholding"`
	NetChange      decimal.Decimal `db:"net_change" json:"net_change"`

	// Retirement activity
	EmployeeContributions decimal.Decimal `db:"employee_contributions" json:"employee_contributions"`
	EmployerContributions decimal.Decimal `db:"employer_contributions" json:"employer_contributions"`
	InvestmentGainLoss    decimal.Decimal `db:"investment_gain_loss" json:"investment_gain_loss"`
	LoanPayments          decimal.Decimal `db:"loan_payments" json:"loan_payments"`

	// Brokerage activity
	Deposits      decimal.Decimal `db:"deposits" json:"deposits"`
	Dividends     decimal.Decimal `db:"dividends" json:"dividends"`
	Interest      decimal.Decimal `db:"interest" json:"interest"`
	CapitalGains  decimal.Decimal `db:"capital_gains" json:"capital_gains"`
	MarketChange  decimal.Decimal `db:"market_change" json:"market_change"`
	OtherActivity decimal.Decimal `db:"other_activity" json:"other_activity"`

	// Shared across families
	Withdrawals decimal.Decimal `db:"withdrawals" json:"withdrawals"`
	Fees        decimal.Decimal `db:"fees" json:"fees"`

	// Optional balances
	RemainingGuaranteedBalance decimal.NullDecimal `db:"remaining_guaranteed_balance" json:"remaining_guaranteed_balance"`
	DeathBenefit               decimal.NullDecimal `db:"death_benefit" json:"death_benefit"`
	VestedBalance              decimal.NullDecimal `db:"vested_balance" json:"vested_balance"`
	MoneyMarket                decimal.NullDecimal `db:"money_market" json:"money_market"`
	Equities                   decimal.NullDecimal `db:"equities" json:"equities"`
	FixedIncome                decimal.NullDecimal `db:"fixed_income" json:"fixed_income"`

	DocumentFileID *uuid.UUID `db:"document_file_id" json:"document_file_id"`
	Notes          string     `db:"notes" json:"notes"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// ExpectedEnding computes the reconciled ending balance from the period
// activity, per the statement family's formula.
func (s *Statement) ExpectedEnding() decimal.Decimal {
	switch s.Family {
	case FamilyRetirement:
		return s.BeginningValue.
			Add(s.EmployeeContributions).
			Add(s.EmployerContributions).
			Add(s.InvestmentGainLoss).
			Sub(s.Withdrawals).
			Sub(s.Fees).
			Sub(s.LoanPayments)
	case FamilyBrokerage:
		return s.BeginningValue.
			Add(s.Deposits).
			Add(s.Dividends).
			Add(s.Interest).
			Add(s.CapitalGains).
			Add(s.MarketChange).
			Add(s.OtherActivity).
			Sub(s.Withdrawals).
			Sub(s.Fees)
	default:
		return s.BeginningValue.
			Add(s.Premiums).
			Add(s.NetChange).
			Sub(s.Withdrawals).
			Sub(s.TaxWithholding)
	}
}

// LedgerEntry is one atomic activity record derived from a statement's
// period-activity fields. Entries are exclusively owned by their source
// statement: re-saving the statement deletes and regenerates them.
type LedgerEntry struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	InvestmentID      uuid.UUID       `db:"investment_id" json:"investment_id"`
	SourceStatementID uuid.UUID       `db:"source_statement_id" json:"source_statement_id"`
	EntryType         EntryType       `db:"entry_type" json:"entry_type"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	EntryDate         time.Time       `db:"entry_date" json:"entry_date"`
	Notes             string          `db:"notes" json:"notes"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// PendingReview holds a parsed-but-unconfirmed extraction awaiting human
// confirmation. It has its own identity and expiry instead of living in
// server-side session state.
type PendingReview struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	InvestmentID uuid.UUID       `db:"investment_id" json:"investment_id"`
	FileID       *uuid.UUID      `db:"file_id" json:"file_id"`
	Format       FormatTag       `db:"format" json:"format"`
	Family       StatementFamily `db:"family" json:"family"`
	Fields       json.RawMessage `db:"fields" json:"fields"`
	Validation   json.RawMessage `db:"validation" json:"validation"`
	ExpiresAt    time.Time       `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// FileMeta stores metadata about an uploaded statement document.
type FileMeta struct {
	ID           uuid.UUID `db:"id" json:"id"`
	InvestmentID uuid.UUID `db:"investment_id" json:"investment_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	OriginalName string    `db:"original_name" json:"original_name"`
	FileType     FileType  `db:"file_type" json:"file_type"`
	FileSize     int64     `db:"file_size" json:"file_size"`
	S3Bucket     string    `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string    `db:"s3_key" json:"s3_key"`
	ContentType  string    `db:"content_type" json:"content_type"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
