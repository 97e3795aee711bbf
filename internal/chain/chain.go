// Package chain verifies balance continuity between consecutive statements
// of one investment. Continuity is purely relational: nothing is stored, it
// is derived from the date-ordered statement history on demand.
package chain

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"investco/internal/domain"
)

// GapTolerance is the default absolute difference, in dollars, below which
// adjacent balances are considered continuous. One cent: anything larger in
// hand-entered history is a real break, unlike the validator's dollar-wide
// reconciliation tolerance. The two knobs stay separate on purpose.
var GapTolerance = decimal.RequireFromString("0.01")

// Link is the continuity verdict for one statement against its predecessor.
type Link struct {
	Status      domain.ContinuityStatus `json:"status"`
	Gap         decimal.Decimal         `json:"gap"`
	Predecessor *domain.Statement       `json:"predecessor,omitempty"`
}

// Gap is one broken adjacent pair found by a batch audit, annotated with
// both sides for display.
type Gap struct {
	PrevStatementID uuid.UUID       `json:"prev_statement_id"`
	PrevDate        string          `json:"prev_date"`
	PrevEnding      decimal.Decimal `json:"prev_ending"`
	NextStatementID uuid.UUID       `json:"next_statement_id"`
	NextDate        string          `json:"next_date"`
	NextBeginning   decimal.Decimal `json:"next_beginning"`
	Gap             decimal.Decimal `json:"gap"`
}

// Verifier checks continuity with a configurable tolerance.
type Verifier struct {
	tolerance decimal.Decimal
}

type Option func(*Verifier)

func WithTolerance(tolerance decimal.Decimal) Option {
	return func(v *Verifier) { v.tolerance = tolerance }
}

func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{tolerance: GapTolerance}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify finds the candidate's predecessor in history (latest statement
// date strictly before the candidate's) and checks balance continuity. With
// no predecessor continuity holds trivially. A predecessor of a different
// family has no comparable balance, which is reported as not applicable
// rather than as either verdict.
func (v *Verifier) Verify(candidate *domain.Statement, history []*domain.Statement) Link {
	pred := predecessor(candidate, history)
	if pred == nil {
		return Link{Status: domain.ContinuityHolds, Gap: decimal.Zero}
	}
	if pred.Family != candidate.Family {
		return Link{Status: domain.ContinuityNotApplicable, Gap: decimal.Zero, Predecessor: pred}
	}

	gap := candidate.BeginningValue.Sub(pred.EndingValue)
	if gap.Abs().GreaterThanOrEqual(v.tolerance) {
		return Link{Status: domain.ContinuityBroken, Gap: gap, Predecessor: pred}
	}
	return Link{Status: domain.ContinuityHolds, Gap: decimal.Zero, Predecessor: pred}
}

// FindGaps walks the full history in date order and collects every adjacent
// same-family pair that fails continuity. Pairs spanning a family change are
// skipped: their balances are not comparable.
func (v *Verifier) FindGaps(history []*domain.Statement) []Gap {
	ordered := make([]*domain.Statement, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StatementDate.Before(ordered[j].StatementDate)
	})

	var gaps []Gap
	for i := 1; i < len(ordered); i++ {
		prev, next := ordered[i-1], ordered[i]
		if prev.Family != next.Family {
			continue
		}
		diff := next.BeginningValue.Sub(prev.EndingValue)
		if diff.Abs().GreaterThanOrEqual(v.tolerance) {
			gaps = append(gaps, Gap{
				PrevStatementID: prev.ID,
				PrevDate:        prev.StatementDate.Format("2006-01-02"),
				PrevEnding:      prev.EndingValue,
				NextStatementID: next.ID,
				NextDate:        next.StatementDate.Format("2006-01-02"),
				NextBeginning:   next.BeginningValue,
				Gap:             diff,
			})
		}
	}
	return gaps
}

func predecessor(candidate *domain.Statement, history []*domain.Statement) *domain.Statement {
	var pred *domain.Statement
	for _, s := range history {
		if s.ID == candidate.ID {
			continue
		}
		if !s.StatementDate.Before(candidate.StatementDate) {
			continue
		}
		if pred == nil || s.StatementDate.After(pred.StatementDate) {
			pred = s
		}
	}
	return pred
}
