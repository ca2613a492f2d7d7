/*
parse.go - Natural-language extraction from the terminal
*/
package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/warp/actuarial-engine/parse"
)

var parseCmd = &cobra.Command{
	Use:   "parse <description>",
	Short: "Extract structured assumptions from a product description",
	Long: `Extracts actuarial assumptions from free-form text via the Anthropic API
and prints them as JSON. Requires an API key (--anthropic-api-key flag,
ACTUARY_ANTHROPIC_API_KEY env var, or config file).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := &parse.ClaudeBackend{
			APIKey: viper.GetString("anthropic_api_key"),
			Model:  viper.GetString("model"),
		}

		assumptions, err := backend.Extract(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(assumptions)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
