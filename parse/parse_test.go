package parse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/actuarial-engine/mortality"
	"github.com/warp/actuarial-engine/projection"
)

const validJSON = `{
  "num_policies": 1000,
  "sum_assured": 100000,
  "term_years": 10,
  "entry_age": 40,
  "interest_rate": 0.03,
  "monthly_premium": 50
}`

// =============================================================================
// RESPONSE DECODING TESTS
// =============================================================================

func TestDecodeAssumptions_BareJSON(t *testing.T) {
	a, err := decodeAssumptions(validJSON)
	require.NoError(t, err)

	assert.Equal(t, 1000, a.NumPolicies)
	assert.Equal(t, 100000.0, a.SumAssured)
	assert.Equal(t, 10, a.TermYears)
	assert.Equal(t, 40, a.EntryAge)
	assert.Equal(t, 0.03, a.InterestRate)
	assert.Equal(t, 50.0, a.MonthlyPremium)
	assert.Equal(t, mortality.TableELT17Males, a.MortalityTable, "default table applied")
}

func TestDecodeAssumptions_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validJSON + "\n```"
	a, err := decodeAssumptions(fenced)
	require.NoError(t, err)
	assert.Equal(t, 1000, a.NumPolicies)
}

func TestDecodeAssumptions_InvalidJSON(t *testing.T) {
	_, err := decodeAssumptions("the block has 1000 policies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing model response")
}

func TestDecodeAssumptions_OutOfRangeValuesRejected(t *testing.T) {
	// A syntactically valid extraction with an impossible field still fails.
	bad := `{"num_policies": 1000, "sum_assured": 100000, "term_years": 99,
	         "entry_age": 40, "interest_rate": 0.03, "monthly_premium": 50}`
	_, err := decodeAssumptions(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, projection.ErrInvalidAssumptions)
}

// =============================================================================
// CLAUDE BACKEND TESTS
// =============================================================================

func TestClaudeBackend_MissingAPIKey(t *testing.T) {
	backend := &ClaudeBackend{}
	_, err := backend.Extract(context.Background(), "1000 policies")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClaudeBackend_Extract(t *testing.T) {
	// GIVEN: A Messages API stub replying with a fenced JSON object
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "1,000 policies")

		resp := messagesResponse{Content: []contentBlock{
			{Type: "text", Text: "```json\n" + validJSON + "\n```"},
		}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	oldURL := apiURL
	apiURL = srv.URL
	defer func() { apiURL = oldURL }()

	backend := &ClaudeBackend{APIKey: "test-key"}
	a, err := backend.Extract(context.Background(), "1,000 policies, £100k sum assured, 10-year term, age 40")
	require.NoError(t, err)
	assert.Equal(t, 1000, a.NumPolicies)
	assert.Equal(t, 10, a.TermYears)
}

func TestClaudeBackend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	oldURL := apiURL
	apiURL = srv.URL
	defer func() { apiURL = oldURL }()

	backend := &ClaudeBackend{APIKey: "test-key"}
	_, err := backend.Extract(context.Background(), "1000 policies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClaudeBackend_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{})
	}))
	defer srv.Close()

	oldURL := apiURL
	apiURL = srv.URL
	defer func() { apiURL = oldURL }()

	backend := &ClaudeBackend{APIKey: "test-key"}
	_, err := backend.Extract(context.Background(), "1000 policies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}
