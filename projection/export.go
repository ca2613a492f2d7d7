/*
export.go - Tabular export of a projection result

PURPOSE:

	Serializes a Result to CSV for spreadsheet-bound consumers. One header
	row, then one row per projection month, columns in the fixed order the
	downstream tooling expects.

FORMATTING:

	Fixed decimal formatting mirrors the rounding policy: 2 decimal places
	for monetary fields, 4 for count-like fields. Values are already rounded
	at row emission, so formatting never re-rounds anything material.
*/
package projection

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the fixed column order of the tabular export.
var csvHeader = []string{
	"month", "year", "age",
	"policies_start", "deaths", "policies_end",
	"premiums", "claims", "net_cashflow", "reserve",
}

// WriteCSV writes the projection rows to w as CSV.
func WriteCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			formatCount(row.PoliciesStart),
			formatCount(row.Deaths),
			formatCount(row.PoliciesEnd),
			formatMoney(row.Premiums),
			formatMoney(row.Claims),
			formatMoney(row.NetCashflow),
			formatMoney(row.Reserve),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the projection rows as a CSV string.
func CSV(r *Result) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
