package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Card-specific validation errors
var (
	// ErrInvalidCardNumber is returned when a card number is not exactly 16 digits.
	ErrInvalidCardNumber = errors.New("card number must be a 16-digit number")

	// ErrInvalidAccountID is returned when an account ID is not an 11-digit number.
	ErrInvalidAccountID = errors.New("account ID must be an 11-digit number")

	// ErrInvalidEmbossedName is returned when an embossed name is empty, too long,
	// or contains characters other than letters and spaces.
	ErrInvalidEmbossedName = errors.New("embossed name must contain only alphabets and spaces")

	// ErrInvalidCVVCode is returned when a CVV code is not exactly 3 digits.
	ErrInvalidCVVCode = errors.New("CVV code must be a 3-digit number")

	// ErrInvalidActiveStatus is returned when an active status is neither "Y" nor "N".
	ErrInvalidActiveStatus = errors.New("active status must be Y or N")

	// ErrInvalidExpirationMonth is returned when an expiration month is outside [1, 12].
	ErrInvalidExpirationMonth = errors.New("expiration month must be between 1 and 12")

	// ErrInvalidExpirationYear is returned when an expiration year is outside [1950, 2099].
	ErrInvalidExpirationYear = errors.New("expiration year must be between 1950 and 2099")

	// ErrInvalidExpirationDay is returned when the day of month preserved from the
	// stored expiration date does not exist in the requested month/year.
	ErrInvalidExpirationDay = errors.New("expiration day does not exist in the requested month")
)

// Active status values for a credit card.
const (
	ActiveStatusYes = "Y"
	ActiveStatusNo  = "N"
)

// Account ID bounds: exactly 11 digits.
const (
	AccountIDMin int64 = 10_000_000_000
	AccountIDMax int64 = 99_999_999_999
)

// Expiration year bounds accepted by the update path.
const (
	ExpirationYearMin = 1950
	ExpirationYearMax = 2099
)

// MaxEmbossedNameLength is the maximum number of characters in an embossed name.
const MaxEmbossedNameLength = 50

var (
	cardNumberPattern   = regexp.MustCompile(`^[0-9]{16}$`)
	cvvCodePattern      = regexp.MustCompile(`^[0-9]{3}$`)
	embossedNamePattern = regexp.MustCompile(`^[A-Za-z ]+$`)
)

// CreditCard is the stored representation of a credit card. The card number is
// the primary identifier and is immutable; an account may own multiple cards.
// CVVCode is never serialized and never settable through the update path.
type CreditCard struct {
	CardNumber     string    `json:"card_number"`
	AccountID      int64     `json:"account_id"`
	EmbossedName   string    `json:"embossed_name"`
	CVVCode        string    `json:"-"`
	ExpirationDate time.Time `json:"expiration_date"`
	ActiveStatus   string    `json:"active_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate checks if the CreditCard has valid data.
// Returns an error if any field fails validation.
func (c *CreditCard) Validate() error {
	if err := ValidateCardNumber(c.CardNumber); err != nil {
		return err
	}
	if err := ValidateAccountID(c.AccountID); err != nil {
		return err
	}
	if err := ValidateEmbossedName(c.EmbossedName); err != nil {
		return err
	}
	if !cvvCodePattern.MatchString(c.CVVCode) {
		return ErrInvalidCVVCode
	}
	if err := ValidateActiveStatus(c.ActiveStatus); err != nil {
		return err
	}
	if c.ExpirationDate.IsZero() {
		return fmt.Errorf("%w: expiration date is not set", ErrValidation)
	}
	return nil
}

// IsActive reports whether the card is usable.
func (c *CreditCard) IsActive() bool {
	return c.ActiveStatus == ActiveStatusYes
}

// IsExpired reports whether the card's expiration date is in the past.
func (c *CreditCard) IsExpired() bool {
	return c.ExpirationDate.Before(time.Now().UTC())
}

// Snapshot captures the four fields the update path guards with its
// optimistic-concurrency comparison.
type Snapshot struct {
	EmbossedName   string
	CVVCode        string
	ExpirationDate time.Time
	ActiveStatus   string
}

// Snapshot returns the optimistic-concurrency baseline for the card.
func (c *CreditCard) Snapshot() Snapshot {
	return Snapshot{
		EmbossedName:   c.EmbossedName,
		CVVCode:        c.CVVCode,
		ExpirationDate: c.ExpirationDate,
		ActiveStatus:   c.ActiveStatus,
	}
}

// Changed reports whether any of the four compared fields differ between the
// two snapshots. It is kept as an isolated unit so that a commit-time re-read
// of the durable row can be substituted as the second snapshot without
// touching the surrounding update logic.
func (s Snapshot) Changed(other Snapshot) bool {
	return s.EmbossedName != other.EmbossedName ||
		s.CVVCode != other.CVVCode ||
		!s.ExpirationDate.Equal(other.ExpirationDate) ||
		s.ActiveStatus != other.ActiveStatus
}

// ValidateCardNumber checks that the card number is exactly 16 digits.
func ValidateCardNumber(cardNumber string) error {
	if !cardNumberPattern.MatchString(cardNumber) {
		return ErrInvalidCardNumber
	}
	return nil
}

// ValidateAccountID checks that the account ID is an 11-digit number.
func ValidateAccountID(accountID int64) error {
	if accountID < AccountIDMin || accountID > AccountIDMax {
		return ErrInvalidAccountID
	}
	return nil
}

// ValidateEmbossedName checks the embossed name content rule: letters and
// spaces only, non-blank, at most MaxEmbossedNameLength characters.
func ValidateEmbossedName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidEmbossedName
	}
	if len(name) > MaxEmbossedNameLength {
		return ErrInvalidEmbossedName
	}
	if !embossedNamePattern.MatchString(name) {
		return ErrInvalidEmbossedName
	}
	return nil
}

// ValidateActiveStatus checks that the status is one of "Y" or "N".
func ValidateActiveStatus(status string) error {
	if status != ActiveStatusYes && status != ActiveStatusNo {
		return ErrInvalidActiveStatus
	}
	return nil
}

// ValidateExpirationMonth checks that the month is in [1, 12].
func ValidateExpirationMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidExpirationMonth
	}
	return nil
}

// ValidateExpirationYear checks that the year is in [1950, 2099].
func ValidateExpirationYear(year int) error {
	if year < ExpirationYearMin || year > ExpirationYearMax {
		return ErrInvalidExpirationYear
	}
	return nil
}

// NormalizeEmbossedName returns the name as stored: trimmed and upper-cased.
func NormalizeEmbossedName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ComposeExpiration builds the new expiration date from the requested year and
// month while preserving the day of month from the existing date. Returns
// ErrInvalidExpirationDay if that day does not exist in the requested month
// (time.Date would silently roll it into the next month otherwise).
func ComposeExpiration(year, month int, existing time.Time) (time.Time, error) {
	if err := ValidateExpirationMonth(month); err != nil {
		return time.Time{}, err
	}
	if err := ValidateExpirationYear(year); err != nil {
		return time.Time{}, err
	}

	day := existing.Day()
	composed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if composed.Day() != day {
		return time.Time{}, ErrInvalidExpirationDay
	}
	return composed, nil
}
