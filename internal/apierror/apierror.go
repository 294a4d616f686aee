// Package apierror provides standardized error response structures for the API
// plus the typed domain errors raised by the sale and catalog flows.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "validation failed", Fields: fields}
}

// ── Domain errors ────────────────────────────────────────────────────────────
//
// The sale flow must let clients distinguish a malformed basket from an
// unknown medicine from a stock shortfall, so these carry enough detail to
// act on, and handlers map each to its own HTTP status.

// ErrInvalidBasket covers empty baskets and non-positive quantities.
var ErrInvalidBasket = errors.New("invalid basket")

// ErrUnavailable marks storage failures. The sale transaction is all-or-nothing,
// so a request that fails with ErrUnavailable left no partial state and is safe
// to retry as a whole.
var ErrUnavailable = errors.New("service unavailable")

// NotFoundError reports a reference to a medicine that does not exist
// (or was deactivated).
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InsufficientStockError reports a requested quantity exceeding what the
// stock ledger holds. Available is the quantity at the moment the decrement
// was rejected, so the client can offer to reduce the line.
type InsufficientStockError struct {
	MedicineID   uuid.UUID
	MedicineName string
	Requested    int
	Available    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.MedicineName, e.Requested, e.Available)
}
