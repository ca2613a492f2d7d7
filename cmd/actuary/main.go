/*
main.go - Application entry point

PURPOSE:

	The actuary CLI wraps the projection engine for two audiences: the HTTP
	service (actuary serve) and offline runs from a terminal (actuary
	project, actuary parse).

CONFIGURATION:

	Flags, environment (ACTUARY_* prefix), and an optional actuary.yaml
	config file, resolved in that order via viper. The Anthropic API key is
	only needed by the parse paths; everything else works without it.

EXAMPLES:

	# Run the HTTP service on port 8080 with a file-backed audit log
	actuary serve --db ./data/activity.db

	# One-off projection printed as CSV
	actuary project --policies 1000 --sum-assured 100000 --term 10 \
	    --age 40 --interest 0.03 --premium 50 --csv

	# Extract assumptions from a product description
	ACTUARY_ANTHROPIC_API_KEY=... actuary parse "1,000 policies, £100k sum assured, 10-year term, age 40"

SEE ALSO:
  - serve.go: HTTP server startup and graceful shutdown
  - project.go: Offline projection runs
  - parse.go: Natural-language extraction
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the actuary CLI.
var rootCmd = &cobra.Command{
	Use:   "actuary",
	Short: "Term life insurance cashflow and reserve projections",
	Long: `actuary projects month-by-month cashflows and prospective reserves for a
block of term life insurance policies, from a small set of actuarial
assumptions (policy count, sum assured, term, entry age, interest rate,
premium, mortality table).

Run it as an HTTP service with "actuary serve", or run one-off projections
from the terminal with "actuary project".`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./actuary.yaml or ~/.config/actuary/config.yaml)")
	rootCmd.PersistentFlags().String("anthropic-api-key", "", "Anthropic API key for assumption extraction")
	rootCmd.PersistentFlags().String("model", "", "Anthropic model for extraction")

	viper.BindPFlag("anthropic_api_key", rootCmd.PersistentFlags().Lookup("anthropic-api-key"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("actuary")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "actuary"))
		}
	}

	viper.SetEnvPrefix("ACTUARY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
