package projection_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/actuarial-engine/mortality"
	"github.com/warp/actuarial-engine/projection"
)

func elt17(t *testing.T) *mortality.Table {
	t.Helper()
	table, err := mortality.Lookup(mortality.TableELT17Males)
	require.NoError(t, err)
	return table
}

// =============================================================================
// RESERVE VALUATION TESTS
// =============================================================================

func TestReserve_ZeroAtMaturity(t *testing.T) {
	table := elt17(t)

	// At and after the final month there are no future obligations.
	assert.Equal(t, 0.0, projection.Reserve(1000, 100000, 50, 40, 120, 120, 0.03, table))
	assert.Equal(t, 0.0, projection.Reserve(1000, 100000, 50, 40, 121, 120, 0.03, table))
}

func TestReserve_NeverNegative(t *testing.T) {
	table := elt17(t)

	// A premium far above the risk cost would value negative; the reserve
	// is floored at zero instead.
	reserve := projection.Reserve(1000, 100000, 10000, 40, 1, 120, 0.03, table)
	assert.Equal(t, 0.0, reserve)
}

func TestReserve_PositiveWithoutPremiums(t *testing.T) {
	table := elt17(t)

	// With no premium offset, the reserve is the PV of future claims.
	reserve := projection.Reserve(1000, 100000, 0, 40, 1, 120, 0.03, table)
	assert.Greater(t, reserve, 0.0)
}

func TestReserve_ZeroInterest_EqualsUndiscountedSweep(t *testing.T) {
	// GIVEN: interest rate 0, so every discount factor is 1
	// WHEN: Valuing the reserve
	// THEN: It equals the plain sum of future expected claims less premiums

	table := elt17(t)

	const (
		policies   = 500.0
		sumAssured = 100000.0
		premium    = 20.0
		entryAge   = 60
		current    = 6
		termMonths = 60
	)

	expectedPolicies := policies
	benefits, premiums := 0.0, 0.0
	for tm := 0; tm < termMonths-current; tm++ {
		age := entryAge + (current+tm)/12
		qx := mortality.MonthlyQx(table.AnnualQx(age))
		deaths := expectedPolicies * qx
		benefits += deaths * sumAssured
		premiums += expectedPolicies * premium
		expectedPolicies -= deaths
	}
	want := math.Max(0, benefits-premiums)

	got := projection.Reserve(policies, sumAssured, premium, entryAge, current, termMonths, 0, table)
	assert.InDelta(t, want, got, 1e-9)
}

func TestReserve_DiscountingReducesValue(t *testing.T) {
	table := elt17(t)

	// Claims dominate premiums here, so a higher interest rate discounts
	// the net liability harder.
	undiscounted := projection.Reserve(1000, 100000, 0, 40, 1, 240, 0, table)
	discounted := projection.Reserve(1000, 100000, 0, 40, 1, 240, 0.05, table)
	assert.Greater(t, undiscounted, discounted)
}

func TestReserve_ZeroInForce_IsZero(t *testing.T) {
	table := elt17(t)

	assert.Equal(t, 0.0, projection.Reserve(0, 100000, 50, 40, 1, 120, 0.03, table))
}
