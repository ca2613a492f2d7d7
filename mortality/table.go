/*
Package mortality provides read-only mortality table lookups.

PURPOSE:

	A mortality table maps an integer age to qx, the annual probability that
	a life aged x dies before reaching age x+1. The projection engine consumes
	these rates month by month, so this package also provides the standard
	annual-to-monthly conversion.

KEY CONCEPTS IN THIS FILE (table.go):
  - Table:     Immutable qx curve for ages 0..100
  - Registry:  Built-in tables keyed by name, constructed once at init
  - MonthlyQx: Annual rate converted under uniform distribution of deaths

DESIGN PRINCIPLES:
 1. Immutability: Tables are built at process start and never mutated.
    Every engine invocation shares the same *Table by reference.
 2. Fail loudly: An unknown table name is an error, never a silent default.
 3. Clamping: Ages outside [0, 100] use the boundary rate. Age 100 carries
    qx = 1.0 (certain death within the year).

USAGE:

	table, err := mortality.Lookup(mortality.TableELT17Males)
	if err != nil { ... }
	monthly := mortality.MonthlyQx(table.AnnualQx(40))

SEE ALSO:
  - elt17.go: ELT17 males qx data
  - projection/engine.go: Consumes rates per projection month
*/
package mortality

import (
	"errors"
	"fmt"
	"math"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrUnknownTable is returned when a mortality table name is not registered.
// Use with errors.Is().
var ErrUnknownTable = errors.New("unknown mortality table")

// UnknownTableError carries the offending table name.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown mortality table: %q", e.Name)
}

func (e *UnknownTableError) Unwrap() error {
	return ErrUnknownTable
}

// =============================================================================
// TABLE
// =============================================================================

// MaxAge is the highest tabulated age. Lookups above it use the MaxAge rate.
const MaxAge = 100

// Table is an immutable annual mortality curve for ages 0..MaxAge.
type Table struct {
	name string
	qx   [MaxAge + 1]float64
}

// Name returns the registry key for this table.
func (t *Table) Name() string { return t.name }

// AnnualQx returns the annual probability of death at the given age.
// Ages are clamped to [0, MaxAge] before lookup.
func (t *Table) AnnualQx(age int) float64 {
	if age < 0 {
		age = 0
	}
	if age > MaxAge {
		age = MaxAge
	}
	return t.qx[age]
}

// MonthlyQx converts an annual mortality rate to a monthly rate:
//
//	qx_monthly = 1 - (1 - qx_annual)^(1/12)
//
// This assumes a uniform distribution of deaths over the year, the standard
// actuarial approximation when only an annual rate is tabulated.
func MonthlyQx(annual float64) float64 {
	return 1 - math.Pow(1-annual, 1.0/12.0)
}

// =============================================================================
// REGISTRY
// =============================================================================

// TableELT17Males is the name of the single built-in table.
const TableELT17Males = "ELT17_MALES"

// registry holds all built-in tables. Populated once at init, read-only
// thereafter, safe for concurrent lookups.
var registry = map[string]*Table{
	TableELT17Males: elt17Males,
}

// Lookup resolves a table name to its immutable Table.
func Lookup(name string) (*Table, error) {
	t, ok := registry[name]
	if !ok {
		return nil, &UnknownTableError{Name: name}
	}
	return t, nil
}

// Names returns the registered table names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
