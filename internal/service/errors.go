package service

import (
	"errors"
	"fmt"

	"github.com/cardops/card-api/internal/domain"
)

// Business-rule errors surfaced by the card service. These are client errors:
// the request was well-formed but violates a rule the service enforces.
var (
	// ErrSearchCriteriaRequired is returned when a search supplies neither an
	// account ID nor a card number.
	ErrSearchCriteriaRequired = errors.New(
		"at least one search criteria (account ID or card number) must be provided")

	// ErrAccountMismatch is returned when an update names an account other
	// than the one the stored card belongs to. The update path must not be
	// usable to repoint a card to a different account.
	ErrAccountMismatch = errors.New(
		"account ID mismatch: cannot update card for a different account")

	// ErrConcurrentModification is returned when the optimistic-concurrency
	// check detects that the card changed between snapshot and write.
	ErrConcurrentModification = errors.New(
		"card was modified by another user, please refresh and try again")
)

// CardServiceError wraps failures from the card service with the operation
// that produced them.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsBusinessError reports whether err is one of the service's business-rule
// violations (including domain validation failures re-checked at this layer).
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrSearchCriteriaRequired) ||
		errors.Is(err, ErrAccountMismatch) ||
		errors.Is(err, ErrConcurrentModification) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidCardNumber) ||
		errors.Is(err, domain.ErrInvalidAccountID) ||
		errors.Is(err, domain.ErrInvalidEmbossedName) ||
		errors.Is(err, domain.ErrInvalidActiveStatus) ||
		errors.Is(err, domain.ErrInvalidExpirationMonth) ||
		errors.Is(err, domain.ErrInvalidExpirationYear) ||
		errors.Is(err, domain.ErrInvalidExpirationDay)
}
