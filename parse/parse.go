/*
Package parse extracts structured actuarial assumptions from free-form text.

PURPOSE:

	Product descriptions arrive as natural language ("1,000 policies, £100k
	sum assured, 10-year term, age 40, 3% interest, £50 monthly premium").
	This package turns such text into a validated projection.Assumptions
	value using a language-model backend.

ARCHITECTURE:

	The Backend interface abstracts the model API so tests can supply a mock.
	ClaudeBackend (claude.go) is the production implementation against the
	Anthropic Messages API. The response contract is a bare JSON object with
	the assumption fields; decodeAssumptions strips markdown code fences,
	unmarshals, applies defaults, and validates.

ERROR HANDLING:

	Extraction failures are terminal for the request: a malformed model
	response or out-of-range value surfaces as an error, never as a silently
	patched assumption set.

SEE ALSO:
  - claude.go: Anthropic Messages API backend
  - projection/types.go: Assumptions and validation
*/
package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/warp/actuarial-engine/projection"
)

// Backend abstracts the language-model API so tests can supply a mock.
type Backend interface {
	// Extract turns a natural-language product description into validated
	// assumptions.
	Extract(ctx context.Context, text string) (projection.Assumptions, error)
}

// extractionPrompt instructs the model to emit a bare JSON object with the
// assumption fields. Kept as a plain prefix; the user text is appended.
const extractionPrompt = `You are an actuarial assumption parser. Extract structured parameters from the user's natural language description of a term life insurance product.

Extract these parameters:
- num_policies: Number of policies (integer)
- sum_assured: Sum assured per policy in GBP (number, convert k/K to thousands, m/M to millions)
- term_years: Policy term in years (integer)
- entry_age: Entry age in years (integer)
- interest_rate: Annual interest rate as a decimal (e.g., 3% becomes 0.03)
- monthly_premium: Monthly premium per policy in GBP (number)

Rules:
- Convert all currency values to plain numbers (e.g., "£100k" -> 100000)
- Convert percentages to decimals (e.g., "3%" -> 0.03)
- If annual premium is given, divide by 12 for monthly premium

Respond with ONLY a valid JSON object with these exact keys:
{
  "num_policies": <int>,
  "sum_assured": <float>,
  "term_years": <int>,
  "entry_age": <int>,
  "interest_rate": <float>,
  "monthly_premium": <float>
}

Do not include any explanation, just the JSON.`

// decodeAssumptions parses a model response into validated assumptions.
// Markdown code fences around the JSON object are tolerated and stripped.
func decodeAssumptions(response string) (projection.Assumptions, error) {
	cleaned := stripFences(response)

	var a projection.Assumptions
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return projection.Assumptions{}, fmt.Errorf("parsing model response as JSON: %w", err)
	}

	a.SetDefaults()
	if err := a.Validate(); err != nil {
		return projection.Assumptions{}, fmt.Errorf("extracted assumptions invalid: %w", err)
	}
	return a, nil
}

// stripFences removes a surrounding markdown code block, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
