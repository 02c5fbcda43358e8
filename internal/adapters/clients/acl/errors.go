package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prmf/premium-api/internal/adapters/clients"
	"github.com/prmf/premium-api/internal/domain"
)

// ErrorResponse represents an error body from the identity backend.
// GoTrue-style services answer either {"code":401,"msg":"..."} or
// {"error":"...","error_description":"..."}.
type ErrorResponse struct {
	Code             int    `json:"code,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Message returns the most specific message the backend provided.
func (e *ErrorResponse) Message() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return e.Error
	}
}

// ParseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or cannot be parsed.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Message() == "" && errResp.Code == 0 {
		return nil
	}

	return &errResp
}

// MapAuthError maps an identity backend response to a domain error.
// Credential problems map to domain.ErrUnauthorized; transport faults
// and backend outages also surface as unauthorized because the service
// cannot vouch for the caller without the backend.
func MapAuthError(resp *http.Response, clientErr error) error {
	if clientErr != nil {
		switch {
		case errors.Is(clientErr, clients.ErrCircuitOpen):
			return domain.NewUnauthorizedError("identity service circuit open")
		case errors.Is(clientErr, clients.ErrMaxRetriesExceeded):
			return domain.NewUnauthorizedError("identity service unreachable")
		default:
			return domain.NewUnauthorizedError(fmt.Sprintf("identity request failed: %v", clientErr))
		}
	}

	if resp == nil {
		return domain.NewUnauthorizedError("no response from identity service")
	}

	var message string
	if errResp := ParseErrorResponse(resp.Body); errResp != nil {
		message = errResp.Message()
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = "invalid or expired session"
		}

		return domain.NewUnauthorizedError(message)

	default:
		return domain.NewUnauthorizedError(
			fmt.Sprintf("identity service returned status %d", resp.StatusCode))
	}
}
