package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"investco/internal/domain"
)

// BuildStatement maps a validated field map into a statement record. Absent
// activity fields persist as zero; absent optional balances persist as null.
// Annuity policy numbers land in the account-number column.
func BuildStatement(investmentID uuid.UUID, format domain.FormatTag, family domain.StatementFamily, m domain.FieldMap) *domain.Statement {
	stmt := &domain.Statement{
		ID:           uuid.New(),
		InvestmentID: investmentID,
		Family:       family,
		Format:       format,
	}

	if d, ok := m.Date(domain.FieldNameStatementDate); ok {
		stmt.StatementDate = d
	}
	if d, ok := m.Date(domain.FieldNamePeriodStart); ok {
		stmt.PeriodStart = d
	}
	if d, ok := m.Date(domain.FieldNamePeriodEnd); ok {
		stmt.PeriodEnd = d
	}

	if num, ok := m.Text(domain.FieldNameAccountNumber); ok {
		stmt.AccountNumber = num
	} else if num, ok := m.Text(domain.FieldNamePolicyNumber); ok {
		stmt.AccountNumber = num
	}

	stmt.BeginningValue = m.AmountOrZero(domain.FieldNameBeginningValue)
	stmt.EndingValue = m.AmountOrZero(domain.FieldNameEndingValue)

	stmt.Premiums = m.AmountOrZero(domain.FieldNamePremiums)
	stmt.TaxWithholding = m.AmountOrZero(domain.FieldNameTaxWithholding)
	stmt.NetChange = m.AmountOrZero(domain.FieldNameNetChange)

	stmt.EmployeeContributions = m.AmountOrZero(domain.FieldNameEmployeeContributions)
	stmt.EmployerContributions = m.AmountOrZero(domain.FieldNameEmployerContributions)
	stmt.InvestmentGainLoss = m.AmountOrZero(domain.FieldNameInvestmentGainLoss)
	stmt.LoanPayments = m.AmountOrZero(domain.FieldNameLoanPayments)

	stmt.Deposits = m.AmountOrZero(domain.FieldNameDeposits)
	stmt.Dividends = m.AmountOrZero(domain.FieldNameDividends)
	stmt.Interest = m.AmountOrZero(domain.FieldNameInterest)
	stmt.CapitalGains = m.AmountOrZero(domain.FieldNameCapitalGains)
	stmt.MarketChange = m.AmountOrZero(domain.FieldNameMarketChange)
	stmt.OtherActivity = m.AmountOrZero(domain.FieldNameOtherActivity)

	stmt.Withdrawals = m.AmountOrZero(domain.FieldNameWithdrawals)
	stmt.Fees = m.AmountOrZero(domain.FieldNameFees)

	stmt.RemainingGuaranteedBalance = nullAmount(m, domain.FieldNameRemainingGuaranteedBalance)
	stmt.DeathBenefit = nullAmount(m, domain.FieldNameDeathBenefit)
	stmt.VestedBalance = nullAmount(m, domain.FieldNameVestedBalance)
	stmt.MoneyMarket = nullAmount(m, domain.FieldNameMoneyMarket)
	stmt.Equities = nullAmount(m, domain.FieldNameEquities)
	stmt.FixedIncome = nullAmount(m, domain.FieldNameFixedIncome)

	return stmt
}

func nullAmount(m domain.FieldMap, name string) decimal.NullDecimal {
	if v, ok := m.Amount(name); ok {
		return decimal.NullDecimal{Decimal: v, Valid: true}
	}
	return decimal.NullDecimal{}
}
