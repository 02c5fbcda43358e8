// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to the wire error
// taxonomy by the HTTP adapter.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInvalidRequest indicates the request body was not a structured object.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMissingField indicates a required field was absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidAge indicates the age was not an integer or out of range.
	ErrInvalidAge = errors.New("invalid age")

	// ErrInvalidBenefitOption indicates an unknown benefit tier.
	ErrInvalidBenefitOption = errors.New("invalid benefit option")

	// ErrInvalidFamilySize indicates an unknown family size category.
	ErrInvalidFamilySize = errors.New("invalid family size")

	// ErrRateNotFound indicates no rate row exists for the (age, family size)
	// pair. This is a valid "no coverage for this combination" outcome,
	// distinct from a store fault.
	ErrRateNotFound = errors.New("rate not found")

	// ErrStore indicates a persistence-layer fault.
	ErrStore = errors.New("store failure")

	// ErrUnauthorized indicates a missing or unresolvable credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConfiguration indicates the service is misconfigured.
	ErrConfiguration = errors.New("configuration error")
)

// MissingFieldError identifies which required field was absent.
type MissingFieldError struct {
	Field string
	Label string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	if e.Label != "" {
		return e.Label + " is required"
	}

	return e.Field + " is required"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// NewMissingFieldError creates a missing-field error with a display label.
func NewMissingFieldError(field, label string) error {
	return &MissingFieldError{Field: field, Label: label}
}

// InvalidAgeError carries the reason an age was rejected.
type InvalidAgeError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidAgeError) Error() string {
	return e.Reason
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidAgeError) Unwrap() error {
	return ErrInvalidAge
}

// NewInvalidAgeError creates an invalid-age error with a caller-facing reason.
func NewInvalidAgeError(reason string) error {
	return &InvalidAgeError{Reason: reason}
}

// InvalidEnumError rejects a value outside an enumerated set.
type InvalidEnumError struct {
	Field   string
	Allowed string
	wrapped error
}

// Error implements the error interface.
func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("%s must be one of: %s", e.Field, e.Allowed)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InvalidEnumError) Unwrap() error {
	return e.wrapped
}

// NewInvalidBenefitOptionError creates an invalid benefit tier error.
func NewInvalidBenefitOptionError() error {
	return &InvalidEnumError{
		Field:   "Benefit option",
		Allowed: "option_1, option_2, option_3, option_4",
		wrapped: ErrInvalidBenefitOption,
	}
}

// NewInvalidFamilySizeError creates an invalid family size error.
func NewInvalidFamilySizeError() error {
	return &InvalidEnumError{
		Field:   "Family size",
		Allowed: "M, M+1",
		wrapped: ErrInvalidFamilySize,
	}
}

// RateNotFoundError identifies the rate-table key that had no row.
type RateNotFoundError struct {
	Age        int
	FamilySize FamilySize
}

// Error implements the error interface.
func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("no premium rate found for age %d and family size %s", e.Age, e.FamilySize)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *RateNotFoundError) Unwrap() error {
	return ErrRateNotFound
}

// NewRateNotFoundError creates a rate-not-found error for a lookup key.
func NewRateNotFoundError(age int, familySize FamilySize) error {
	return &RateNotFoundError{Age: age, FamilySize: familySize}
}

// StoreError wraps a persistence-layer fault with the failing operation.
type StoreError struct {
	Op    string
	Cause error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store failure during %s: %v", e.Op, e.Cause)
	}

	return "store failure during " + e.Op
}

// Unwrap returns both the sentinel and the cause for errors.Is/As support.
func (e *StoreError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStore, e.Cause}
	}

	return []error{ErrStore}
}

// NewStoreError creates a store error for the named operation.
func NewStoreError(op string, cause error) error {
	return &StoreError{Op: op, Cause: cause}
}

// UnauthorizedError carries the reason a credential was rejected.
type UnauthorizedError struct {
	Reason string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	if e.Reason != "" {
		return "unauthorized: " + e.Reason
	}

	return "unauthorized"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(reason string) error {
	return &UnauthorizedError{Reason: reason}
}

// IsValidation checks if an error is any of the client-input faults.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidAge) ||
		errors.Is(err, ErrInvalidBenefitOption) ||
		errors.Is(err, ErrInvalidFamilySize)
}

// IsRateNotFound checks if an error is a rate-not-found outcome.
func IsRateNotFound(err error) bool {
	return errors.Is(err, ErrRateNotFound)
}

// IsStore checks if an error is a persistence-layer fault.
func IsStore(err error) bool {
	return errors.Is(err, ErrStore)
}

// IsUnauthorized checks if an error is a credential failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
