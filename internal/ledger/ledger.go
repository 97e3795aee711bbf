// Package ledger derives atomic activity entries from a statement's period
// fields. Entries are regenerated wholesale on every save of the statement,
// so building them is pure: persistence handles delete-then-insert.
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"investco/internal/domain"
)

type activityField struct {
	entryType domain.EntryType
	amount    func(*domain.Statement) decimal.Decimal
}

// activityFields maps each family to the statement fields that generate
// entries. Zero-valued fields generate nothing.
var activityFields = map[domain.StatementFamily][]activityField{
	domain.FamilyAnnuity: {
		{domain.EntryPremium, func(s *domain.Statement) decimal.Decimal { return s.Premiums }},
		{domain.EntryWithdrawal, func(s *domain.Statement) decimal.Decimal { return s.Withdrawals }},
		{domain.EntryTaxWithholding, func(s *domain.Statement) decimal.Decimal { return s.TaxWithholding }},
		{domain.EntryNetChange, func(s *domain.Statement) decimal.Decimal { return s.NetChange }},
	},
	domain.FamilyRetirement: {
		{domain.EntryEmployeeContribution, func(s *domain.Statement) decimal.Decimal { return s.EmployeeContributions }},
		{domain.EntryEmployerContribution, func(s *domain.Statement) decimal.Decimal { return s.EmployerContributions }},
		{domain.EntryInvestmentGainLoss, func(s *domain.Statement) decimal.Decimal { return s.InvestmentGainLoss }},
		{domain.EntryWithdrawal, func(s *domain.Statement) decimal.Decimal { return s.Withdrawals }},
		{domain.EntryFee, func(s *domain.Statement) decimal.Decimal { return s.Fees }},
		{domain.EntryLoanPayment, func(s *domain.Statement) decimal.Decimal { return s.LoanPayments }},
	},
	domain.FamilyBrokerage: {
		{domain.EntryDeposit, func(s *domain.Statement) decimal.Decimal { return s.Deposits }},
		{domain.EntryWithdrawal, func(s *domain.Statement) decimal.Decimal { return s.Withdrawals }},
		{domain.EntryDividend, func(s *domain.Statement) decimal.Decimal { return s.Dividends }},
		{domain.EntryInterest, func(s *domain.Statement) decimal.Decimal { return s.Interest }},
		{domain.EntryCapitalGain, func(s *domain.Statement) decimal.Decimal { return s.CapitalGains }},
		{domain.EntryMarketChange, func(s *domain.Statement) decimal.Decimal { return s.MarketChange }},
		{domain.EntryFee, func(s *domain.Statement) decimal.Decimal { return s.Fees }},
		{domain.EntryOtherActivity, func(s *domain.Statement) decimal.Decimal { return s.OtherActivity }},
	},
}

// BuildEntries returns one entry per non-zero activity field of the
// statement, dated at the statement date and tagged with the source
// statement. The same statement always yields the same set, which is what
// makes delete-then-recreate idempotent.
func BuildEntries(s *domain.Statement) []domain.LedgerEntry {
	fields := activityFields[s.Family]
	entries := make([]domain.LedgerEntry, 0, len(fields))
	for _, f := range fields {
		amount := f.amount(s)
		if amount.IsZero() {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			ID:                uuid.New(),
			InvestmentID:      s.InvestmentID,
			SourceStatementID: s.ID,
			EntryType:         f.entryType,
			Amount:            amount,
			EntryDate:         s.StatementDate,
		})
	}
	return entries
}

// EntryTypes lists the entry types a family can generate, in generation
// order.
func EntryTypes(family domain.StatementFamily) []domain.EntryType {
	fields := activityFields[family]
	out := make([]domain.EntryType, len(fields))
	for i, f := range fields {
		out[i] = f.entryType
	}
	return out
}
