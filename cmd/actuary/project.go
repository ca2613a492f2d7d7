/*
project.go - Offline projection runs from the terminal
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warp/actuarial-engine/mortality"
	"github.com/warp/actuarial-engine/projection"
)

var projectFlags struct {
	policies   int
	sumAssured float64
	termYears  int
	entryAge   int
	interest   float64
	premium    float64
	table      string
	csvOut     bool
	outPath    string
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a projection and print the summary or full CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := projection.NewAssumptions(
			projectFlags.policies,
			projectFlags.sumAssured,
			projectFlags.termYears,
			projectFlags.entryAge,
			projectFlags.interest,
			projectFlags.premium,
			projectFlags.table,
		)
		if err != nil {
			return err
		}

		result, err := projection.Run(a)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if projectFlags.outPath != "" {
			f, err := os.Create(projectFlags.outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := projection.WriteCSV(f, result); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %d rows to %s\n", len(result.Rows), projectFlags.outPath)
			return nil
		}

		if projectFlags.csvOut {
			return projection.WriteCSV(out, result)
		}

		s := result.Summary
		fmt.Fprintf(out, "Projection over %d months (%d policies, entry age %d, table %s)\n",
			s.TotalMonths, a.NumPolicies, a.EntryAge, a.MortalityTable)
		fmt.Fprintf(out, "  Total premiums: %.2f\n", s.TotalPremiums)
		fmt.Fprintf(out, "  Total claims:   %.2f\n", s.TotalClaims)
		fmt.Fprintf(out, "  Total deaths:   %.4f\n", s.TotalDeaths)
		fmt.Fprintf(out, "  Final in-force: %.4f\n", s.FinalInForce)
		fmt.Fprintf(out, "  Peak reserve:   %.2f\n", s.PeakReserve)
		return nil
	},
}

func init() {
	projectCmd.Flags().IntVar(&projectFlags.policies, "policies", 0, "number of policies in force at outset")
	projectCmd.Flags().Float64Var(&projectFlags.sumAssured, "sum-assured", 0, "death benefit per policy")
	projectCmd.Flags().IntVar(&projectFlags.termYears, "term", 0, "policy term in years")
	projectCmd.Flags().IntVar(&projectFlags.entryAge, "age", 0, "entry age in complete years")
	projectCmd.Flags().Float64Var(&projectFlags.interest, "interest", 0, "annual interest rate as a decimal")
	projectCmd.Flags().Float64Var(&projectFlags.premium, "premium", 0, "monthly premium per policy")
	projectCmd.Flags().StringVar(&projectFlags.table, "table", mortality.TableELT17Males, "mortality table name")
	projectCmd.Flags().BoolVar(&projectFlags.csvOut, "csv", false, "print the full monthly CSV instead of the summary")
	projectCmd.Flags().StringVar(&projectFlags.outPath, "out", "", "write the CSV to a file")

	projectCmd.MarkFlagRequired("policies")
	projectCmd.MarkFlagRequired("sum-assured")
	projectCmd.MarkFlagRequired("term")
	projectCmd.MarkFlagRequired("age")
	projectCmd.MarkFlagRequired("premium")

	rootCmd.AddCommand(projectCmd)
}
