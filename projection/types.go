/*
Package projection implements the term-assurance cashflow projection engine.

PURPOSE:

	Given a validated set of actuarial assumptions, the engine advances a block
	of identical term life policies month by month: expected deaths decrement
	the in-force count, survivors pay premiums, deaths trigger claims, and a
	prospective reserve is valued at every month end.

KEY CONCEPTS IN THIS FILE (types.go):
  - Assumptions: Strongly-typed engine input; constructor enforces every
    range constraint so an invalid value is unrepresentable downstream
  - Row:         One projection month (cashflows, decrements, reserve)
  - Summary:     Accumulated totals over the full run
  - Result:      Assumptions + ordered rows + summary, immutable once built

DESIGN PRINCIPLES:
 1. Purity: A projection is a pure function of its input. Nothing is shared
    between invocations except the read-only mortality table.
 2. Validate at the boundary: The engine assumes Assumptions hold their
    declared constraints; it only re-checks the table name, since a bad
    name cannot be made unrepresentable by a numeric range.
 3. Round once: Values are rounded at row emission (banker's rounding,
    2 decimals for money, 4 for counts) and totals accumulate from the
    rounded rows, so exported totals equal sums of exported rows.

SEE ALSO:
  - engine.go: Monthly projection loop and summary aggregation
  - reserve.go: Prospective reserve valuation
  - export.go: CSV serialization of a Result
*/
package projection

import (
	"errors"
	"fmt"

	"github.com/warp/actuarial-engine/mortality"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrInvalidAssumptions is the sentinel for assumption constraint violations.
// Use with errors.Is().
var ErrInvalidAssumptions = errors.New("invalid assumptions")

// ValidationError reports which assumption field violated its constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid assumptions: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidAssumptions
}

// =============================================================================
// ASSUMPTIONS
// =============================================================================

// Assumption field constraints.
const (
	MaxTermYears = 50
	MinEntryAge  = 18
	MaxEntryAge  = 80
)

// Assumptions is the complete input to a projection run.
//
// JSON field names follow the wire format of the upstream parameter parser,
// so a decoded request body can be validated and handed to the engine as-is.
type Assumptions struct {
	NumPolicies    int     `json:"num_policies"`    // policies in force at outset, > 0
	SumAssured     float64 `json:"sum_assured"`     // death benefit per policy, > 0
	TermYears      int     `json:"term_years"`      // (0, 50]
	EntryAge       int     `json:"entry_age"`       // [18, 80]
	InterestRate   float64 `json:"interest_rate"`   // annual, decimal, [0, 1]
	MonthlyPremium float64 `json:"monthly_premium"` // per policy, >= 0
	MortalityTable string  `json:"mortality_table"` // registry name, default ELT17_MALES
}

// NewAssumptions builds a validated Assumptions value. An empty table name
// selects the default table.
func NewAssumptions(numPolicies int, sumAssured float64, termYears, entryAge int, interestRate, monthlyPremium float64, table string) (Assumptions, error) {
	a := Assumptions{
		NumPolicies:    numPolicies,
		SumAssured:     sumAssured,
		TermYears:      termYears,
		EntryAge:       entryAge,
		InterestRate:   interestRate,
		MonthlyPremium: monthlyPremium,
		MortalityTable: table,
	}
	a.SetDefaults()
	if err := a.Validate(); err != nil {
		return Assumptions{}, err
	}
	return a, nil
}

// SetDefaults fills unset optional fields. Call before Validate when the
// value was decoded from a request body rather than built via NewAssumptions.
func (a *Assumptions) SetDefaults() {
	if a.MortalityTable == "" {
		a.MortalityTable = mortality.TableELT17Males
	}
}

// Validate checks every numeric range constraint. It does not resolve the
// mortality table name; the engine does that so an unknown name surfaces as
// mortality.ErrUnknownTable rather than a validation failure.
func (a Assumptions) Validate() error {
	if a.NumPolicies <= 0 {
		return &ValidationError{Field: "num_policies", Message: "must be positive"}
	}
	if a.SumAssured <= 0 {
		return &ValidationError{Field: "sum_assured", Message: "must be positive"}
	}
	if a.TermYears <= 0 || a.TermYears > MaxTermYears {
		return &ValidationError{Field: "term_years", Message: fmt.Sprintf("must be in (0, %d]", MaxTermYears)}
	}
	if a.EntryAge < MinEntryAge || a.EntryAge > MaxEntryAge {
		return &ValidationError{Field: "entry_age", Message: fmt.Sprintf("must be in [%d, %d]", MinEntryAge, MaxEntryAge)}
	}
	if a.InterestRate < 0 || a.InterestRate > 1 {
		return &ValidationError{Field: "interest_rate", Message: "must be a decimal in [0, 1]"}
	}
	if a.MonthlyPremium < 0 {
		return &ValidationError{Field: "monthly_premium", Message: "must be non-negative"}
	}
	if a.MortalityTable == "" {
		return &ValidationError{Field: "mortality_table", Message: "must not be empty"}
	}
	return nil
}

// TermMonths returns the projection horizon in months.
func (a Assumptions) TermMonths() int {
	return a.TermYears * 12
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// Row is one projection month. Monetary fields are rounded to 2 decimal
// places, count-like fields to 4, at emission time.
type Row struct {
	Month         int     `json:"month"`          // 1-based month index
	Year          int     `json:"year"`           // 1-based policy year
	Age           int     `json:"age"`            // attained age at start of month
	PoliciesStart float64 `json:"policies_start"` // in force at month start
	Deaths        float64 `json:"deaths"`         // expected deaths in the month
	PoliciesEnd   float64 `json:"policies_end"`   // in force at month end
	Premiums      float64 `json:"premiums"`       // collected from month-start survivors
	Claims        float64 `json:"claims"`         // deaths * sum assured
	NetCashflow   float64 `json:"net_cashflow"`   // premiums - claims
	Reserve       float64 `json:"reserve"`        // prospective reserve at month end
}

// Summary holds accumulated totals over the full run. Totals are sums of
// the rounded row values, so they reconcile exactly against an export.
type Summary struct {
	TotalMonths   int     `json:"total_months"`
	TotalPremiums float64 `json:"total_premiums"`
	TotalClaims   float64 `json:"total_claims"`
	TotalDeaths   float64 `json:"total_deaths"`
	FinalInForce  float64 `json:"final_in_force"`
	PeakReserve   float64 `json:"peak_reserve"`
}

// Result is the complete output of one projection run. Immutable after
// construction; owned by the caller.
type Result struct {
	Assumptions Assumptions `json:"assumptions"`
	Rows        []Row       `json:"rows"`
	Summary     Summary     `json:"summary"`
}
