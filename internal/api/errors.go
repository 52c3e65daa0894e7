package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cardops/card-api/internal/domain"
	"github.com/cardops/card-api/internal/service"
	"github.com/cardops/card-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflicting concurrent update
	case errors.Is(err, service.ErrConcurrentModification):
		return http.StatusConflict

	// Business-rule and validation errors
	case service.IsBusinessError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Business errors surface their human-readable reason;
// anything unexpected is replaced by a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case store.IsNotFoundError(err):
		return "Credit card not found"

	case errors.Is(err, service.ErrSearchCriteriaRequired):
		return "At least one search criteria (account ID or card number) must be provided"

	case errors.Is(err, service.ErrAccountMismatch):
		return "Account ID mismatch. Cannot update card for different account."

	case errors.Is(err, service.ErrConcurrentModification):
		return "Card was modified by another user. Please refresh and try again."

	case errors.Is(err, domain.ErrInvalidCardNumber):
		return "Card number must be a 16-digit number"

	case errors.Is(err, domain.ErrInvalidAccountID):
		return "Account ID must be an 11-digit number"

	case errors.Is(err, domain.ErrInvalidEmbossedName):
		return "Card name must contain only alphabets and spaces"

	case errors.Is(err, domain.ErrInvalidActiveStatus):
		return "Card status must be Y or N"

	case errors.Is(err, domain.ErrInvalidExpirationMonth):
		return "Expiration month must be between 1 and 12"

	case errors.Is(err, domain.ErrInvalidExpirationYear):
		return "Expiration year must be between 1950 and 2099"

	case errors.Is(err, domain.ErrInvalidExpirationDay):
		return "Expiration day does not exist in the requested month"

	case errors.Is(err, domain.ErrValidation):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator.ValidationErrors message into a
// user-friendly one without echoing raw input back to the client.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'UpdateCardRequest.AccountID' Error:Field validation
		// for 'AccountID' failed on the 'min' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "len", "numeric":
		return "invalid format"
	case "min":
		return "value too small"
	case "max":
		return "value too large"
	case "oneof":
		return "invalid value"
	case "cardname":
		return "must contain only alphabets and spaces"
	default:
		return "validation failed"
	}
}
