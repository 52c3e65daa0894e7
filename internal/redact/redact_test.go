package redact_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardops/card-api/internal/redact"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "masks_card_number_keeping_last_four",
			input:    "card 4111111111111111 not found",
			expected: "card ************1111 not found",
		},
		{
			name:     "masks_nineteen_digit_pan",
			input:    "pan=4111111111111111000",
			expected: "pan=***************1000",
		},
		{
			name:     "leaves_eleven_digit_account_id_alone",
			input:    "account 12345678901 has no cards",
			expected: "account 12345678901 has no cards",
		},
		{
			name:     "masks_labeled_cvv",
			input:    "invalid cvv: 123 supplied",
			expected: "invalid cvv=*** supplied",
		},
		{
			name:     "masks_cvv_code_label",
			input:    "cvv_code=987 rejected",
			expected: "cvv=*** rejected",
		},
		{
			name:     "leaves_unlabeled_three_digit_numbers_alone",
			input:    "retried 123 times",
			expected: "retried 123 times",
		},
		{
			name:     "masks_multiple_card_numbers",
			input:    "4111111111111111 conflicts with 4222222222222222",
			expected: "************1111 conflicts with ************2222",
		},
		{
			name:     "plain_text_is_unchanged",
			input:    "connection refused",
			expected: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))
	assert.Equal(t,
		"card ************1111 not found",
		redact.Error(errors.New("card 4111111111111111 not found")))
}

func TestCardNumber(t *testing.T) {
	assert.Equal(t, "************1111", redact.CardNumber("4111111111111111"))
	assert.Equal(t, "****", redact.CardNumber("123"))
	assert.Equal(t, "****", redact.CardNumber(""))
}
