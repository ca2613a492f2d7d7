/*
reserve.go - Prospective reserve valuation

PURPOSE:

	Values the reserve an insurer must hold against the block at a given
	month: the present value of future expected death benefits less the
	present value of future expected premiums, floored at zero.

ALGORITHM:

	A fresh forward decrement sweep from the valuation month to maturity.
	For each remaining month t:
	  - attained age   = entry age + elapsed whole years
	  - expected deaths = in-force * monthly qx
	  - discount        = (1 + monthly rate)^(-t)
	  - accumulate discounted benefits and premiums, roll survivors forward

	Deaths and premiums are both taken at the start of each month; interest
	compounds monthly at the effective rate (1+i)^(1/12) - 1.

COST:

	Each valuation is linear in the months remaining, and the projection loop
	calls it once per month, so a full run is quadratic in the term length.
	That is intentional: reusing or inverting the sweep would change the
	floating-point accumulation order and could shift rounded outputs.

SEE ALSO:
  - engine.go: Calls Reserve once per projection month
  - mortality/table.go: Rate lookups
*/
package projection

import (
	"math"

	"github.com/warp/actuarial-engine/mortality"
)

// Reserve computes the prospective reserve for the block at the end of
// currentMonth, starting the forward sweep from policies lives in force.
// Returns 0 at or after maturity. The result is never negative: an adverse
// premium margin is not reported as a negative liability.
func Reserve(policies, sumAssured, monthlyPremium float64, entryAge, currentMonth, termMonths int, annualInterestRate float64, table *mortality.Table) float64 {
	if currentMonth >= termMonths {
		return 0
	}

	monthlyRate := math.Pow(1+annualInterestRate, 1.0/12.0) - 1
	remainingMonths := termMonths - currentMonth

	pvBenefits := 0.0
	pvPremiums := 0.0
	expectedPolicies := policies

	for t := 0; t < remainingMonths; t++ {
		futureMonth := currentMonth + t
		ageAtT := entryAge + futureMonth/12
		qxMonthly := mortality.MonthlyQx(table.AnnualQx(ageAtT))

		discount := math.Pow(1+monthlyRate, -float64(t))
		expectedDeaths := expectedPolicies * qxMonthly

		pvBenefits += expectedDeaths * sumAssured * discount
		pvPremiums += expectedPolicies * monthlyPremium * discount

		expectedPolicies -= expectedDeaths
	}

	return math.Max(0, pvBenefits-pvPremiums)
}
