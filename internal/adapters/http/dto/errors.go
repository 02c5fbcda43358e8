// Package dto provides the wire envelope and error taxonomy for the HTTP API.
package dto

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/prmf/premium-api/internal/domain"
	"github.com/prmf/premium-api/internal/platform/logging"
)

// Response is the standard envelope for all API responses. Exactly one of
// Data or Error is set, flagged by Success.
type Response struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g. "RATE_NOT_FOUND").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeInvalidRequest indicates the body was not a JSON object.
	ErrorCodeInvalidRequest = "INVALID_REQUEST"

	// ErrorCodeMissingField indicates a required field was absent.
	ErrorCodeMissingField = "MISSING_REQUIRED_FIELD"

	// ErrorCodeInvalidAge indicates a non-integer or out-of-range age.
	ErrorCodeInvalidAge = "INVALID_AGE"

	// ErrorCodeInvalidBenefitOption indicates an unknown benefit tier.
	ErrorCodeInvalidBenefitOption = "INVALID_BENEFIT_OPTION"

	// ErrorCodeInvalidFamilySize indicates an unknown family size.
	ErrorCodeInvalidFamilySize = "INVALID_FAMILY_SIZE"

	// ErrorCodeRateNotFound indicates no rate exists for the combination.
	ErrorCodeRateNotFound = "RATE_NOT_FOUND"

	// ErrorCodeUnauthorized indicates a missing or invalid credential.
	ErrorCodeUnauthorized = "UNAUTHORIZED"

	// ErrorCodeDatabase indicates a persistence-layer fault.
	ErrorCodeDatabase = "DATABASE_ERROR"

	// ErrorCodeConfiguration indicates a server misconfiguration.
	ErrorCodeConfiguration = "CONFIGURATION_ERROR"

	// ErrorCodeInternal indicates an unexpected server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"
)

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data any) *Response {
	return &Response{Success: true, Data: data}
}

// NewErrorResponse creates an error envelope with the given code and message.
func NewErrorResponse(code, message string) *Response {
	return &Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// WithTraceID adds a trace ID to the response.
func (r *Response) WithTraceID(traceID string) *Response {
	r.TraceID = traceID
	return r
}

// HTTPStatusFromCode maps error codes to HTTP status codes: 400 for
// client-input faults, 404 for RATE_NOT_FOUND, 401 for UNAUTHORIZED,
// 500 for server-side faults.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeInvalidRequest,
		ErrorCodeMissingField,
		ErrorCodeInvalidAge,
		ErrorCodeInvalidBenefitOption,
		ErrorCodeInvalidFamilySize:
		return http.StatusBadRequest
	case ErrorCodeRateNotFound:
		return http.StatusNotFound
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Generic retry-suggesting messages for server-side faults. Internal
// detail is logged, never surfaced to the caller.
const (
	databaseErrorMessage      = "A database error occurred. Please try again."
	configurationErrorMessage = "Server configuration error. Please contact support."
	internalErrorMessage      = "An unexpected error occurred. Please try again."
)

// MapDomainError maps a domain error to an HTTP status and error envelope.
// Client-input faults surface their message verbatim; server-side faults
// surface a generic message. Unknown errors map to INTERNAL_ERROR.
func MapDomainError(err error) (int, *Response) {
	code, message := codeForError(err)
	return HTTPStatusFromCode(code), NewErrorResponse(code, message)
}

func codeForError(err error) (code, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return ErrorCodeInvalidRequest, "Request body must be a JSON object"
	case errors.Is(err, domain.ErrMissingField):
		return ErrorCodeMissingField, err.Error()
	case errors.Is(err, domain.ErrInvalidAge):
		return ErrorCodeInvalidAge, err.Error()
	case errors.Is(err, domain.ErrInvalidBenefitOption):
		return ErrorCodeInvalidBenefitOption, err.Error()
	case errors.Is(err, domain.ErrInvalidFamilySize):
		return ErrorCodeInvalidFamilySize, err.Error()
	case errors.Is(err, domain.ErrRateNotFound):
		return ErrorCodeRateNotFound, rateNotFoundMessage(err)
	case errors.Is(err, domain.ErrUnauthorized):
		return ErrorCodeUnauthorized, unauthorizedMessage(err)
	case errors.Is(err, domain.ErrStore):
		return ErrorCodeDatabase, databaseErrorMessage
	case errors.Is(err, domain.ErrConfiguration):
		return ErrorCodeConfiguration, configurationErrorMessage
	default:
		return ErrorCodeInternal, internalErrorMessage
	}
}

func rateNotFoundMessage(err error) string {
	var notFound *domain.RateNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("No premium rate found for age %d and family size %s. Please contact support.",
			notFound.Age, notFound.FamilySize)
	}

	return "No premium rate found for this combination. Please contact support."
}

func unauthorizedMessage(err error) string {
	var unauthorized *domain.UnauthorizedError
	if errors.As(err, &unauthorized) && unauthorized.Reason == "missing bearer credential" {
		return "Please sign in to view your quote history."
	}

	return "Invalid or expired session. Please sign in again."
}

// HandleError writes the error envelope for a domain error, attaching the
// trace ID when available and logging server-side faults with full detail.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)

	if traceID := GetTraceID(c); traceID != "" {
		resp.TraceID = traceID
	}

	if status >= http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("request failed",
			"error", err.Error(),
			"code", resp.Error.Code,
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
// Use this in middleware when further processing must stop.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message)

	if traceID := GetTraceID(c); traceID != "" {
		resp.TraceID = traceID
	}

	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}

// GetTraceID extracts the OpenTelemetry trace ID from the request context.
// Returns empty string if no span is recording.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}
