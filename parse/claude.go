/*
claude.go - Anthropic Messages API backend for assumption extraction
*/
package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/warp/actuarial-engine/projection"
)

// ErrMissingAPIKey is returned when no API key was configured.
var ErrMissingAPIKey = errors.New("anthropic api key not configured")

// DefaultModel is used when ClaudeBackend.Model is empty.
const DefaultModel = "claude-sonnet-4-20250514"

// apiURL is the Messages API endpoint. Package-level var for test substitution.
var apiURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend extracts assumptions via the Anthropic Messages API.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Extract sends the extraction prompt plus the user text to the Messages API
// and decodes the JSON object in the reply.
func (c *ClaudeBackend) Extract(ctx context.Context, text string) (projection.Assumptions, error) {
	if c.APIKey == "" {
		return projection.Assumptions{}, ErrMissingAPIKey
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	reqBody := messagesRequest{
		Model:     model,
		MaxTokens: 500,
		Messages: []message{
			{Role: "user", Content: extractionPrompt + "\n\nUser input: " + text},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return projection.Assumptions{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return projection.Assumptions{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return projection.Assumptions{}, fmt.Errorf("calling messages API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return projection.Assumptions{}, fmt.Errorf("messages API returned %d: %s", resp.StatusCode, string(body))
	}

	var mResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mResp); err != nil {
		return projection.Assumptions{}, fmt.Errorf("decoding messages response: %w", err)
	}

	for _, block := range mResp.Content {
		if block.Type != "text" {
			continue
		}
		return decodeAssumptions(block.Text)
	}

	return projection.Assumptions{}, fmt.Errorf("no text content in messages response")
}
