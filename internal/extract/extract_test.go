package extract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investco/internal/domain"
)

func assertAmount(t *testing.T, m domain.FieldMap, field, want string) {
	t.Helper()
	got, ok := m.Amount(field)
	require.True(t, ok, "field %s missing", field)
	wantDec, _ := decimal.NewFromString(want)
	assert.True(t, wantDec.Equal(got), "field %s: want %s got %s", field, wantDec, got)
}

func assertDate(t *testing.T, m domain.FieldMap, field string, want time.Time) {
	t.Helper()
	got, ok := m.Date(field)
	require.True(t, ok, "field %s missing", field)
	assert.True(t, want.Equal(got), "field %s: want %s got %s", field, want, got)
}

func TestRuleOrderFirstMatchWins(t *testing.T) {
	f := FieldRule{
		Name: "x",
		Kind: domain.FieldAmount,
		Rules: append(
			amountRules(`Specific\s+Label`),
			amountRules(`Label`)...,
		),
	}
	v, ok := f.apply("Specific Label $10.00 and Label $99.00")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(v.Amount))
}

func TestParenthesizedAmountNegates(t *testing.T) {
	f := FieldRule{Name: "x", Kind: domain.FieldAmount, Rules: amountRules(`Net\s+Change`)}

	v, ok := f.apply("Net Change ($500.00)")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(-500).Equal(v.Amount))

	v, ok = f.apply("Net Change $500.00")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(500).Equal(v.Amount))
}

func TestLastOccurrenceRule(t *testing.T) {
	f := FieldRule{Name: "x", Kind: domain.FieldAmount, Rules: lastAmountRules(`Ending\s+Account\s+Value`)}
	text := "Ending Account Value $100.00\nEnding Account Value $200.00\nEnding Account Value $300.00"
	v, ok := f.apply(text)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(300).Equal(v.Amount))
}

func TestZeroDefault(t *testing.T) {
	f := FieldRule{Name: "x", Kind: domain.FieldAmount, ZeroDefault: true}
	v, ok := f.apply("no such label anywhere")
	require.True(t, ok)
	assert.True(t, v.Amount.IsZero())

	strict := FieldRule{Name: "x", Kind: domain.FieldAmount, Rules: amountRules(`Missing`)}
	_, ok = strict.apply("no such label anywhere")
	assert.False(t, ok)
}

const jacksonText = `Jackson National Life Insurance Company
For the period of January 1, 2024 to March 31, 2024
Contract Number: 12345678
Beginning Value on 01/01/2024 $100,000.00
Total Premium $5,000.00
Total Withdrawals $2,000.00
Total Tax Witheld $500.00
Net Change ($1,500.00)
Ending Value on 03/31/2024 $101,000.00
Remaining Guaranteed Withdrawal Balance: $95,000.00
Death Benefit Value: $102,000.00`

func TestJacksonExtractor(t *testing.T) {
	m := NewJacksonExtractor().Extract(jacksonText)

	assertDate(t, m, domain.FieldNamePeriodStart, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assertDate(t, m, domain.FieldNamePeriodEnd, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	assertDate(t, m, domain.FieldNameStatementDate, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))

	num, ok := m.Text(domain.FieldNamePolicyNumber)
	require.True(t, ok)
	assert.Equal(t, "12345678", num)

	assertAmount(t, m, domain.FieldNameBeginningValue, "100000")
	assertAmount(t, m, domain.FieldNameEndingValue, "101000")
	assertAmount(t, m, domain.FieldNamePremiums, "5000")
	assertAmount(t, m, domain.FieldNameWithdrawals, "2000")
	assertAmount(t, m, domain.FieldNameTaxWithholding, "500")
	assertAmount(t, m, domain.FieldNameNetChange, "-1500")
	assertAmount(t, m, domain.FieldNameRemainingGuaranteedBalance, "95000")
	assertAmount(t, m, domain.FieldNameDeathBenefit, "102000")
}

func TestJacksonMissingFieldsStayAbsent(t *testing.T) {
	m := NewJacksonExtractor().Extract("Jackson National, but the page is otherwise blank")
	assert.False(t, m.Has(domain.FieldNameBeginningValue))
	assert.False(t, m.Has(domain.FieldNamePremiums))
}

const tiaaText = `TIAA quarterly statement
January 1, 2024 to March 31, 2024
Contract C123456-7
Beginning balance $ 50,000.00
Other Credits $ 1,200.00
Gains/Loss ($ 800.00)
TIAA Interest $ 300.00
Ending balance $ 50,700.00`

func TestTIAAExtractor(t *testing.T) {
	m := NewTIAAExtractor().Extract(tiaaText)

	assertDate(t, m, domain.FieldNamePeriodStart, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assertDate(t, m, domain.FieldNamePeriodEnd, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))

	num, ok := m.Text(domain.FieldNamePolicyNumber)
	require.True(t, ok)
	assert.Equal(t, "C123456-7", num)

	assertAmount(t, m, domain.FieldNameBeginningValue, "50000")
	assertAmount(t, m, domain.FieldNameEndingValue, "50700")
	assertAmount(t, m, domain.FieldNamePremiums, "1200")
	// Never reported on this layout.
	assertAmount(t, m, domain.FieldNameWithdrawals, "0")
	assertAmount(t, m, domain.FieldNameTaxWithholding, "0")
	// Gains/Loss (negative) plus TIAA Interest.
	assertAmount(t, m, domain.FieldNameNetChange, "-500")
}

const valicText = `Corebridge Financial retirement services
January 01, 2024 - March 31, 2024
Account Number: 987654
Beginning Value $ 20,000.00
Employer contributions $ 750.00
Net change in value $ 1,250.00
Ending Value $ 22,000.00`

func TestValicExtractor(t *testing.T) {
	m := NewValicExtractor().Extract(valicText)

	num, ok := m.Text(domain.FieldNamePolicyNumber)
	require.True(t, ok)
	assert.Equal(t, "987654", num)

	assertAmount(t, m, domain.FieldNameBeginningValue, "20000")
	assertAmount(t, m, domain.FieldNameEndingValue, "22000")
	assertAmount(t, m, domain.FieldNamePremiums, "750")
	assertAmount(t, m, domain.FieldNameWithdrawals, "0")
	assertAmount(t, m, domain.FieldNameNetChange, "1250")
}

const empowerText = `Empower Retirement
01/01/2024 through 03/31/2024
Plan Number: GX-4421
Beginning Balance $40,000.00
Employee Contributions $1,500.00
Employer Contributions $750.00
Investment Gain/Loss ($300.00)
Withdrawals $0.00
Fees $25.00
Vested Balance $38,000.00
Ending Balance $41,925.00`

func TestEmpowerExtractor(t *testing.T) {
	m := NewEmpowerExtractor().Extract(empowerText)

	assertAmount(t, m, domain.FieldNameBeginningValue, "40000")
	assertAmount(t, m, domain.FieldNameEndingValue, "41925")
	assertAmount(t, m, domain.FieldNameEmployeeContributions, "1500")
	assertAmount(t, m, domain.FieldNameEmployerContributions, "750")
	assertAmount(t, m, domain.FieldNameInvestmentGainLoss, "-300")
	assertAmount(t, m, domain.FieldNameFees, "25")
	assertAmount(t, m, domain.FieldNameLoanPayments, "0")
	assertAmount(t, m, domain.FieldNameVestedBalance, "38000")
	assert.Equal(t, domain.FamilyRetirement, NewEmpowerExtractor().Family())
}

const schwabText = `Charles Schwab & Co., Inc.
March 1, 2024 to March 31, 2024
Account Number: 1234-5678
Beginning Account Value $10,000.00
Total Deposits $500.00
Dividends and Distributions $50.00
Interest Earned $5.00
Change in Market Value ($200.00)
Ending Account Value $9,000.00
Summary
Beginning Account Value $10,000.00
Ending Account Value $10,355.00`

func TestSchwabExtractorUsesLastTotals(t *testing.T) {
	m := NewSchwabExtractor().Extract(schwabText)

	// Per-section figures repeat; the summary figure is last and wins.
	assertAmount(t, m, domain.FieldNameEndingValue, "10355")
	assertAmount(t, m, domain.FieldNameBeginningValue, "10000")
	assertAmount(t, m, domain.FieldNameDeposits, "500")
	assertAmount(t, m, domain.FieldNameDividends, "50")
	assertAmount(t, m, domain.FieldNameInterest, "5")
	assertAmount(t, m, domain.FieldNameMarketChange, "-200")
	assertAmount(t, m, domain.FieldNameCapitalGains, "0")
	assert.Equal(t, domain.FamilyBrokerage, NewSchwabExtractor().Family())
}

func TestFactoryFallsBackToDefault(t *testing.T) {
	f := NewFactory()

	e := f.ForFormat(domain.FormatUnknown)
	require.NotNil(t, e)
	assert.Equal(t, domain.FormatJackson, e.Format())

	for _, tag := range []domain.FormatTag{
		domain.FormatJackson, domain.FormatTIAA, domain.FormatValic,
		domain.FormatEmpower, domain.FormatSchwab,
	} {
		assert.Equal(t, tag, f.ForFormat(tag).Format(), "format %s", tag)
	}
}
