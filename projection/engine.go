/*
engine.go - Monthly projection loop and summary aggregation

PURPOSE:

	Advances the policy block month by month over the full term. Each month:
	survivors at the start of the month pay premiums, expected deaths trigger
	claims, the in-force count decrements, and the reserve is valued against
	the post-decrement count.

TIMING CONVENTION:

	Premiums and claims for a month are computed against the PRE-decrement
	in-force count, while the reserve looks forward from the POST-decrement
	count at month end. The asymmetry is the reference valuation convention
	and is preserved as-is.

ROUNDING POLICY:

	Values are rounded once, at row emission: banker's rounding (half to
	even), 2 decimal places for monetary fields, 4 for count-like fields.
	Running totals accumulate from the ROUNDED row values so that exported
	totals equal sums of exported rows. The unrounded in-force count carries
	the recurrence forward; fractional lives never reach exactly zero, so the
	loop always runs to maturity.

SEE ALSO:
  - reserve.go: Per-month reserve valuation
  - types.go: Assumptions, Row, Summary, Result
*/
package projection

import (
	"github.com/shopspring/decimal"

	"github.com/warp/actuarial-engine/mortality"
)

// =============================================================================
// ROUNDING
// =============================================================================

// roundMoney rounds a monetary value to 2 decimal places, half to even.
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

// roundCount rounds a count-like value to 4 decimal places, half to even.
func roundCount(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(4).InexactFloat64()
}

// =============================================================================
// PROJECTION LOOP
// =============================================================================

// Run projects the block month by month over the full term.
//
// Assumptions must already satisfy their range constraints (Validate);
// the table name is re-checked here and an unknown name fails with
// mortality.ErrUnknownTable before any row is produced.
func Run(a Assumptions) (*Result, error) {
	table, err := mortality.Lookup(a.MortalityTable)
	if err != nil {
		return nil, err
	}

	termMonths := a.TermMonths()
	rows := make([]Row, 0, termMonths)

	policiesInForce := float64(a.NumPolicies)
	var totalPremiums, totalClaims, totalDeaths, peakReserve float64

	for month := 1; month <= termMonths; month++ {
		policyYear := (month-1)/12 + 1
		age := a.EntryAge + (month-1)/12

		qxMonthly := mortality.MonthlyQx(table.AnnualQx(age))

		// Premiums and claims are charged against the month-start count,
		// before the decrement is applied.
		deaths := policiesInForce * qxMonthly
		premiums := policiesInForce * a.MonthlyPremium
		claims := deaths * a.SumAssured

		policiesAtStart := policiesInForce
		policiesInForce -= deaths

		// Reserve is valued against the post-decrement count at month end.
		reserve := Reserve(policiesInForce, a.SumAssured, a.MonthlyPremium,
			a.EntryAge, month, termMonths, a.InterestRate, table)

		row := Row{
			Month:         month,
			Year:          policyYear,
			Age:           age,
			PoliciesStart: roundCount(policiesAtStart),
			Deaths:        roundCount(deaths),
			PoliciesEnd:   roundCount(policiesInForce),
			Premiums:      roundMoney(premiums),
			Claims:        roundMoney(claims),
			NetCashflow:   roundMoney(premiums - claims),
			Reserve:       roundMoney(reserve),
		}
		rows = append(rows, row)

		totalPremiums += row.Premiums
		totalClaims += row.Claims
		totalDeaths += row.Deaths
		if row.Reserve > peakReserve {
			peakReserve = row.Reserve
		}
	}

	summary := Summary{
		TotalMonths:   termMonths,
		TotalPremiums: roundMoney(totalPremiums),
		TotalClaims:   roundMoney(totalClaims),
		TotalDeaths:   roundCount(totalDeaths),
		FinalInForce:  rows[len(rows)-1].PoliciesEnd,
		PeakReserve:   roundMoney(peakReserve),
	}

	return &Result{
		Assumptions: a,
		Rows:        rows,
		Summary:     summary,
	}, nil
}
