package model

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequest = "invalid_request"
	CodeInitFailed     = "init_failed"
	CodeRequestFailed  = "request_failed"
	CodeInvalidScalar  = "invalid_scalar"
	CodeConflict       = "conflict"
	CodeInternal       = "internal"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
