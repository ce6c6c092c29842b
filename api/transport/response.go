package transport

import "encoding/json"

// ErrorResponse is the wire shape for failed requests. Fields carries
// per-field validation detail when available.
type ErrorResponse struct {
	Status string            `json:"status"`
	Code   string            `json:"code"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewError returns an error response payload.
func NewError(code, message string, fields map[string]string) ErrorResponse {
	return ErrorResponse{
		Status: "error",
		Code:   code,
		Error:  message,
		Fields: fields,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorResponse) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
