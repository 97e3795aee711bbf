// Package validate classifies an extracted field map as clean, warned, or
// unusable. It never corrects data; correction belongs to the review flow.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"investco/internal/domain"
)

// ReconcileTolerance is the default absolute delta, in dollars, between the
// computed and extracted ending balance before a warning fires. A dollar
// absorbs rounding noise in source documents while still catching real
// discrepancies. It is deliberately wider than the chain verifier's one-cent
// tolerance; the two are kept as separate knobs because unifying them would
// change which historical documents get flagged.
var ReconcileTolerance = decimal.NewFromInt(1)

// Severity splits issues into fatal and advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding. Reconciliation issues carry the expected
// and actual balances plus their delta for review display.
type Issue struct {
	RuleKey  string           `json:"rule_key"`
	Field    string           `json:"field,omitempty"`
	Severity Severity         `json:"severity"`
	Message  string           `json:"message"`
	Expected *decimal.Decimal `json:"expected,omitempty"`
	Actual   *decimal.Decimal `json:"actual,omitempty"`
	Delta    *decimal.Decimal `json:"delta,omitempty"`
}

// Result is the validator's verdict. A record with any error must not be
// persisted as-is; a record with only warnings may be, flagged for human
// confirmation.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

func (r Result) Valid() bool { return len(r.Errors) == 0 }

func (r Result) Clean() bool { return len(r.Errors) == 0 && len(r.Warnings) == 0 }

// requiredFields lists what each family's statements must yield before the
// record is usable.
var requiredFields = map[domain.StatementFamily][]string{
	domain.FamilyAnnuity: {
		domain.FieldNameStatementDate,
		domain.FieldNamePeriodStart,
		domain.FieldNamePeriodEnd,
		domain.FieldNameBeginningValue,
		domain.FieldNameEndingValue,
		domain.FieldNamePremiums,
		domain.FieldNameWithdrawals,
		domain.FieldNameTaxWithholding,
		domain.FieldNameNetChange,
	},
	domain.FamilyRetirement: {
		domain.FieldNameStatementDate,
		domain.FieldNamePeriodStart,
		domain.FieldNamePeriodEnd,
		domain.FieldNameBeginningValue,
		domain.FieldNameEndingValue,
		domain.FieldNameEmployeeContributions,
		domain.FieldNameEmployerContributions,
		domain.FieldNameInvestmentGainLoss,
		domain.FieldNameWithdrawals,
		domain.FieldNameFees,
		domain.FieldNameLoanPayments,
	},
	domain.FamilyBrokerage: {
		domain.FieldNameStatementDate,
		domain.FieldNamePeriodStart,
		domain.FieldNamePeriodEnd,
		domain.FieldNameBeginningValue,
		domain.FieldNameEndingValue,
		domain.FieldNameDeposits,
		domain.FieldNameWithdrawals,
		domain.FieldNameDividends,
		domain.FieldNameInterest,
		domain.FieldNameCapitalGains,
		domain.FieldNameMarketChange,
		domain.FieldNameFees,
		domain.FieldNameOtherActivity,
	},
}

// Validator checks field-map completeness and period arithmetic.
type Validator struct {
	tolerance decimal.Decimal
}

type Option func(*Validator)

// WithTolerance overrides the reconciliation tolerance.
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(v *Validator) { v.tolerance = tolerance }
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{tolerance: ReconcileTolerance}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the required-field check, then, only on a complete field
// map, the family reconciliation check.
func (v *Validator) Validate(family domain.StatementFamily, m domain.FieldMap) Result {
	var result Result

	for _, field := range requiredFields[family] {
		if !m.Has(field) {
			result.Errors = append(result.Errors, Issue{
				RuleKey:  "required." + field,
				Field:    field,
				Severity: SeverityError,
				Message:  fmt.Sprintf("missing required field: %s", field),
			})
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	expected := expectedEnding(family, m)
	actual := m.AmountOrZero(domain.FieldNameEndingValue)
	delta := actual.Sub(expected)
	if delta.Abs().GreaterThan(v.tolerance) {
		result.Warnings = append(result.Warnings, Issue{
			RuleKey:  "reconcile.ending_value",
			Field:    domain.FieldNameEndingValue,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("ending value does not reconcile: expected %s, got %s (delta %s)",
				expected.StringFixed(2), actual.StringFixed(2), delta.StringFixed(2)),
			Expected: &expected,
			Actual:   &actual,
			Delta:    &delta,
		})
	}
	return result
}

// expectedEnding applies the family's reconciliation formula to the field
// map. Absent optional fields count as zero.
func expectedEnding(family domain.StatementFamily, m domain.FieldMap) decimal.Decimal {
	beginning := m.AmountOrZero(domain.FieldNameBeginningValue)
	switch family {
	case domain.FamilyRetirement:
		return beginning.
			Add(m.AmountOrZero(domain.FieldNameEmployeeContributions)).
			Add(m.AmountOrZero(domain.FieldNameEmployerContributions)).
			Add(m.AmountOrZero(domain.FieldNameInvestmentGainLoss)).
			Sub(m.AmountOrZero(domain.FieldNameWithdrawals)).
			Sub(m.AmountOrZero(domain.FieldNameFees)).
			Sub(m.AmountOrZero(domain.FieldNameLoanPayments))
	case domain.FamilyBrokerage:
		return beginning.
			Add(m.AmountOrZero(domain.FieldNameDeposits)).
			Add(m.AmountOrZero(domain.FieldNameDividends)).
			Add(m.AmountOrZero(domain.FieldNameInterest)).
			Add(m.AmountOrZero(domain.FieldNameCapitalGains)).
			Add(m.AmountOrZero(domain.FieldNameMarketChange)).
			Add(m.AmountOrZero(domain.FieldNameOtherActivity)).
			Sub(m.AmountOrZero(domain.FieldNameWithdrawals)).
			Sub(m.AmountOrZero(domain.FieldNameFees))
	default:
		return beginning.
			Add(m.AmountOrZero(domain.FieldNamePremiums)).
			Add(m.AmountOrZero(domain.FieldNameNetChange)).
			Sub(m.AmountOrZero(domain.FieldNameWithdrawals)).
			Sub(m.AmountOrZero(domain.FieldNameTaxWithholding))
	}
}

// RequiredFields exposes a family's required-field list for display in the
// review UI.
func RequiredFields(family domain.StatementFamily) []string {
	fields := requiredFields[family]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
