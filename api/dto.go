/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types decouple
	the internal domain model from the external API contract.

NAMING CONVENTION:
  - *Request:  Request body types from clients
  - *Response: Response wrappers returned to clients
  - *DTO:      Embedded response records

SEE ALSO:
  - handlers.go: Uses these types
  - projection/types.go: Engine-level Assumptions/Result (serialized as-is)
*/
package api

import (
	"encoding/json"
	"time"

	"github.com/warp/actuarial-engine/projection"
	"github.com/warp/actuarial-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ParseRequest asks for natural-language text to be turned into assumptions.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse reports the extraction outcome. Extraction failures are a
// domain outcome, not a transport failure: Success is false and Error set.
type ParseResponse struct {
	Success     bool                    `json:"success"`
	Assumptions *projection.Assumptions `json:"assumptions,omitempty"`
	Error       string                  `json:"error,omitempty"`
	RawInput    string                  `json:"raw_input"`
}

// ProjectRequest asks for a projection run with explicit assumptions.
type ProjectRequest struct {
	Assumptions projection.Assumptions `json:"assumptions"`
}

// ExecutionDTO is one audit-log entry in API responses.
type ExecutionDTO struct {
	ID           string          `json:"id"`
	Timestamp    string          `json:"timestamp"`
	IPAddress    string          `json:"ip_address,omitempty"`
	ActionType   string          `json:"action_type"`
	TokensUsed   int             `json:"tokens_used"`
	ElapsedMS    float64         `json:"elapsed_ms"`
	Input        json.RawMessage `json:"input_data,omitempty"`
	Output       json.RawMessage `json:"output_data,omitempty"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// ExecutionListResponse is the paginated audit listing.
type ExecutionListResponse struct {
	Executions []ExecutionDTO `json:"executions"`
	Total      int            `json:"total"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
	Stats      sqlite.Stats   `json:"stats"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toExecutionDTO(e sqlite.Execution) ExecutionDTO {
	return ExecutionDTO{
		ID:           e.ID,
		Timestamp:    e.Timestamp.Format(time.RFC3339Nano),
		IPAddress:    e.IPAddress,
		ActionType:   e.ActionType,
		TokensUsed:   e.TokensUsed,
		ElapsedMS:    e.ElapsedMS,
		Input:        e.Input,
		Output:       e.Output,
		Success:      e.Success,
		ErrorMessage: e.ErrorMessage,
	}
}

func toExecutionDTOs(execs []sqlite.Execution) []ExecutionDTO {
	dtos := make([]ExecutionDTO, len(execs))
	for i, e := range execs {
		dtos[i] = toExecutionDTO(e)
	}
	return dtos
}
