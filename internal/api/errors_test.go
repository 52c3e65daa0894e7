package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardops/card-api/internal/api"
	"github.com/cardops/card-api/internal/api/shared"
	"github.com/cardops/card-api/internal/domain"
	"github.com/cardops/card-api/internal/service"
	"github.com/cardops/card-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not_found", err: store.ErrCardNotFound, want: http.StatusNotFound},
		{
			name: "wrapped_not_found",
			err:  fmt.Errorf("lookup: %w", store.ErrCardNotFound),
			want: http.StatusNotFound,
		},
		{name: "concurrent_modification", err: service.ErrConcurrentModification, want: http.StatusConflict},
		{name: "search_criteria_required", err: service.ErrSearchCriteriaRequired, want: http.StatusBadRequest},
		{name: "account_mismatch", err: service.ErrAccountMismatch, want: http.StatusBadRequest},
		{name: "invalid_card_number", err: domain.ErrInvalidCardNumber, want: http.StatusBadRequest},
		{name: "invalid_expiration_day", err: domain.ErrInvalidExpirationDay, want: http.StatusBadRequest},
		{
			name: "validation_error",
			err:  domain.NewValidationError("page", "must be at least 1", nil),
			want: http.StatusBadRequest,
		},
		{name: "unknown_error", err: errors.New("connection refused"), want: http.StatusInternalServerError},
		{
			name: "wrapped_unknown_error",
			err:  service.NewCardServiceError("list_cards", "failed to list cards", errors.New("timeout")),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil_error", err: nil, want: "An unexpected error occurred"},
		{name: "not_found", err: store.ErrCardNotFound, want: "Credit card not found"},
		{
			name: "account_mismatch",
			err:  service.ErrAccountMismatch,
			want: "Account ID mismatch. Cannot update card for different account.",
		},
		{
			name: "concurrent_modification",
			err:  service.ErrConcurrentModification,
			want: "Card was modified by another user. Please refresh and try again.",
		},
		{
			name: "invalid_embossed_name",
			err:  domain.ErrInvalidEmbossedName,
			want: "Card name must contain only alphabets and spaces",
		},
		{
			name: "validation_error_names_the_field",
			err:  domain.NewValidationError("page", "must be at least 1", nil),
			want: "Invalid page: must be at least 1",
		},
		{
			name: "internal_details_are_hidden",
			err:  errors.New("pq: connection refused to host db-internal:5432"),
			want: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Run("maps_validator_messages_per_field_and_tag", func(t *testing.T) {
		req := api.UpdateCardRequest{
			CardNumber:      "4000000000000001",
			AccountID:       1, // below range
			EmbossedName:    "JANE DOE",
			ActiveStatus:    "Y",
			ExpirationMonth: 7,
			ExpirationYear:  2027,
		}
		err := shared.ValidateRequest(req)
		assert.Equal(t, "Invalid AccountID: value too small", api.SanitizeValidationError(err))
	})

	t.Run("unrecognized_errors_collapse_to_generic_message", func(t *testing.T) {
		assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("boom")))
	})
}
