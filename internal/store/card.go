package store

import (
	"context"
	"database/sql"

	"github.com/cardops/card-api/internal/domain"
)

// CardFilter holds the optional filters for a card listing. A nil field means
// "ignore this filter"; both may be combined.
type CardFilter struct {
	AccountID  *int64
	CardNumber *string
}

// Page is one slice of a filtered card listing, ordered by card number
// ascending, together with neighbor-page indicators.
type Page struct {
	Cards       []*domain.CreditCard
	HasNext     bool
	HasPrevious bool
}

// CardStore defines the interface for credit card persistence.
type CardStore interface {
	// GetByCardNumber retrieves a card by its card number.
	// Returns ErrCardNotFound if the card does not exist.
	GetByCardNumber(ctx context.Context, cardNumber string) (*domain.CreditCard, error)

	// GetByCardNumberForUpdate retrieves a card by its card number and acquires
	// an exclusive row-level lock on it for the duration of the enclosing
	// transaction. Callers MUST invoke it through WithTx inside
	// store.RunInTransaction; outside a transaction the lock is released as
	// soon as the statement completes and provides no protection.
	// Returns ErrCardNotFound if the card does not exist.
	GetByCardNumberForUpdate(ctx context.Context, cardNumber string) (*domain.CreditCard, error)

	// ListByAccountID retrieves all cards owned by the account, ordered by
	// card number ascending so that "first card for an account" is stable
	// across calls. Returns an empty slice when the account owns no cards.
	ListByAccountID(ctx context.Context, accountID int64) ([]*domain.CreditCard, error)

	// GetByAccountIDAndCardNumber retrieves the card matching the exact
	// account/card combination. Returns ErrCardNotFound if no row matches the
	// pair, even when each value matches some other row individually.
	GetByAccountIDAndCardNumber(ctx context.Context, accountID int64, cardNumber string) (*domain.CreditCard, error)

	// FindByFilters retrieves the requested page of cards matching the non-nil
	// filters, ordered by card number ascending. page is 1-based; pageSize
	// must be positive.
	FindByFilters(ctx context.Context, filter CardFilter, page, pageSize int) (*Page, error)

	// Save upserts the card keyed by its card number and returns the stored
	// row, including the store-managed CreatedAt/UpdatedAt values. UpdatedAt
	// is bumped on every save.
	Save(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error)

	// ExistsByCardNumber reports whether a card with the given number exists.
	ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error)

	// WithTx returns a new CardStore instance that executes against the
	// provided transaction. The transaction is created and managed by the
	// caller, typically via store.RunInTransaction.
	WithTx(tx *sql.Tx) CardStore

	// DB returns the underlying database handle, used by services to open
	// transactions around multi-statement operations.
	DB() *sql.DB
}
