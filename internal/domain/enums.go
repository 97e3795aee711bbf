package domain

// FormatTag identifies a supported institutional statement layout.
type FormatTag string

const (
	FormatJackson FormatTag = "jackson"
	FormatTIAA    FormatTag = "tiaa"
	FormatValic   FormatTag = "valic"
	FormatEmpower FormatTag = "empower"
	FormatSchwab  FormatTag = "schwab"
	FormatUnknown FormatTag = "unknown"
)

// StatementFamily is the record shape a format produces. Families are
// mutually exclusive; consumers switch on the family tag rather than
// probing for optional fields.
type StatementFamily string

const (
	FamilyAnnuity    StatementFamily = "annuity"
	FamilyRetirement StatementFamily = "retirement"
	FamilyBrokerage  StatementFamily = "brokerage"
)

// Family returns the statement family a format extracts into.
func (t FormatTag) Family() StatementFamily {
	switch t {
	case FormatEmpower:
		return FamilyRetirement
	case FormatSchwab:
		return FamilyBrokerage
	default:
		// Jackson, TIAA, Valic, and the unknown-format default are annuity shaped.
		return FamilyAnnuity
	}
}

// InvestmentKind categorizes an investment for statement matching.
type InvestmentKind string

const (
	InvestmentAnnuity    InvestmentKind = "annuity"
	InvestmentRetirement InvestmentKind = "retirement"
	InvestmentBrokerage  InvestmentKind = "brokerage"
)

// Valid reports whether k is one of the known investment kinds.
func (k InvestmentKind) Valid() bool {
	switch k {
	case InvestmentAnnuity, InvestmentRetirement, InvestmentBrokerage:
		return true
	}
	return false
}

// EntryType identifies the period-activity field a ledger entry was derived from.
type EntryType string

const (
	EntryPremium              EntryType = "PREMIUM"
	EntryWithdrawal           EntryType = "WITHDRAWAL"
	EntryTaxWithholding       EntryType = "TAX_WITHHOLDING"
	EntryNetChange            EntryType = "NET_CHANGE"
	EntryEmployeeContribution EntryType = "EMPLOYEE_CONTRIBUTION"
	EntryEmployerContribution EntryType = "EMPLOYER_CONTRIBUTION"
	EntryInvestmentGainLoss   EntryType = "INVESTMENT_GAIN_LOSS"
	EntryFee                  EntryType = "FEE"
	EntryLoanPayment          EntryType = "LOAN_PAYMENT"
	EntryDeposit              EntryType = "DEPOSIT"
	EntryDividend             EntryType = "DIVIDEND"
	EntryInterest             EntryType = "INTEREST"
	EntryCapitalGain          EntryType = "CAPITAL_GAIN"
	EntryMarketChange         EntryType = "MARKET_CHANGE"
	EntryOtherActivity        EntryType = "OTHER_ACTIVITY"
)

// ContinuityStatus is the outcome of a chain check against the predecessor
// statement. NotApplicable is distinct from both Holds and Broken: the
// predecessor exists but has no comparable balance field.
type ContinuityStatus string

const (
	ContinuityHolds         ContinuityStatus = "holds"
	ContinuityBroken        ContinuityStatus = "broken"
	ContinuityNotApplicable ContinuityStatus = "not_applicable"
)

// FileType represents the allowed statement document types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}
