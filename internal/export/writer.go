package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"investco/internal/chain"
	"investco/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// statementColumns defines the statement-history CSV header row.
var statementColumns = []string{
	"Statement Date",
	"Period Start",
	"Period End",
	"Format",
	"Family",
	"Account Number",
	"Beginning Value",
	"Ending Value",
	"Premiums",
	"Withdrawals",
	"Tax Withholding",
	"Net Change",
	"Employee Contributions",
	"Employer Contributions",
	"Investment Gain/Loss",
	"Loan Payments",
	"Deposits",
	"Dividends",
	"Interest",
	"Capital Gains",
	"Market Change",
	"Other Activity",
	"Fees",
	"Notes",
}

// gapColumns defines the gap-audit CSV header row.
var gapColumns = []string{
	"Prev Statement Date",
	"Prev Ending Value",
	"Next Statement Date",
	"Next Beginning Value",
	"Gap",
}

// Writer wraps csv.Writer for exporting statement data as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteStatementHeader writes the statement-history header row.
func (w *Writer) WriteStatementHeader() error {
	return w.csv.Write(statementColumns)
}

// WriteStatements converts statements to CSV rows and writes them.
func (w *Writer) WriteStatements(statements []*domain.Statement) error {
	for _, s := range statements {
		if err := w.csv.Write(statementToRow(s)); err != nil {
			return err
		}
	}
	return nil
}

// WriteGapHeader writes the gap-audit header row.
func (w *Writer) WriteGapHeader() error {
	return w.csv.Write(gapColumns)
}

// WriteGaps converts audit findings to CSV rows and writes them.
func (w *Writer) WriteGaps(gaps []chain.Gap) error {
	for i := range gaps {
		if err := w.csv.Write(gapToRow(&gaps[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func statementToRow(s *domain.Statement) []string {
	return []string{
		s.StatementDate.Format("2006-01-02"),
		s.PeriodStart.Format("2006-01-02"),
		s.PeriodEnd.Format("2006-01-02"),
		string(s.Format),
		string(s.Family),
		s.AccountNumber,
		money(s.BeginningValue),
		money(s.EndingValue),
		money(s.Premiums),
		money(s.Withdrawals),
		money(s.TaxWithholding),
		money(s.NetChange),
		money(s.EmployeeContributions),
		money(s.EmployerContributions),
		money(s.InvestmentGainLoss),
		money(s.LoanPayments),
		money(s.Deposits),
		money(s.Dividends),
		money(s.Interest),
		money(s.CapitalGains),
		money(s.MarketChange),
		money(s.OtherActivity),
		money(s.Fees),
		s.Notes,
	}
}

func gapToRow(g *chain.Gap) []string {
	return []string{
		g.PrevDate,
		money(g.PrevEnding),
		g.NextDate,
		money(g.NextBeginning),
		money(g.Gap),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an investment name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_investment_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(investmentName, ext string) string {
	sanitized := SanitizeFilename(investmentName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
