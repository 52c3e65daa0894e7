package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cardops/card-api/internal/domain"
)

// getPathCardNumber extracts and validates the card number path parameter.
func getPathCardNumber(r *http.Request) (string, error) {
	cardNumber := chi.URLParam(r, "cardNumber")
	if cardNumber == "" {
		return "", domain.NewValidationError("cardNumber", "is required", domain.ErrValidation)
	}
	if err := domain.ValidateCardNumber(cardNumber); err != nil {
		return "", err
	}
	return cardNumber, nil
}

// getQueryAccountID parses the optional accountId query parameter. A missing
// parameter yields (nil, nil); a malformed or out-of-range one is rejected at
// the boundary.
func getQueryAccountID(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("accountId")
	if raw == "" {
		return nil, nil
	}
	accountID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidAccountID
	}
	if err := domain.ValidateAccountID(accountID); err != nil {
		return nil, err
	}
	return &accountID, nil
}

// getQueryCardNumber parses the optional cardNumber query parameter.
func getQueryCardNumber(r *http.Request) (*string, error) {
	raw := r.URL.Query().Get("cardNumber")
	if raw == "" {
		return nil, nil
	}
	if err := domain.ValidateCardNumber(raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// getQueryPage parses the optional page query parameter. A missing parameter
// defaults to 1; zero, negative, or non-numeric values are rejected.
func getQueryPage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, domain.NewValidationError("page", "must be at least 1", domain.ErrValidation)
	}
	return page, nil
}
