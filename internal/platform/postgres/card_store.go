package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cardops/card-api/internal/domain"
	"github.com/cardops/card-api/internal/store"
)

// cardColumns is the column list every card read scans, in scanCard order.
const cardColumns = "card_number, account_id, embossed_name, cvv_code, expiration_date, active_status, created_at, updated_at"

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     *sql.DB
	q      store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. The database connection is initialized and managed by
// the caller. If logger is nil, a default logger is used.
func NewPostgresCardStore(db *sql.DB, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		q:      db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx. The returned store runs every
// statement against tx, so a ForUpdate read holds its row lock until the
// caller commits or rolls back.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     s.db,
		q:      tx,
		logger: s.logger,
	}
}

// DB implements store.CardStore.DB.
func (s *PostgresCardStore) DB() *sql.DB {
	return s.db
}

// GetByCardNumber implements store.CardStore.GetByCardNumber.
func (s *PostgresCardStore) GetByCardNumber(ctx context.Context, cardNumber string) (*domain.CreditCard, error) {
	query := "SELECT " + cardColumns + " FROM credit_cards WHERE card_number = $1"
	card, err := scanCard(s.q.QueryRowContext(ctx, query, cardNumber))
	if err != nil {
		return nil, MapError(err)
	}
	return card, nil
}

// GetByCardNumberForUpdate implements store.CardStore.GetByCardNumberForUpdate.
// The FOR UPDATE clause takes an exclusive row-level lock scoped to this card;
// updates to different cards proceed fully in parallel.
func (s *PostgresCardStore) GetByCardNumberForUpdate(ctx context.Context, cardNumber string) (*domain.CreditCard, error) {
	query := "SELECT " + cardColumns + " FROM credit_cards WHERE card_number = $1 FOR UPDATE"
	card, err := scanCard(s.q.QueryRowContext(ctx, query, cardNumber))
	if err != nil {
		return nil, MapError(err)
	}
	return card, nil
}

// ListByAccountID implements store.CardStore.ListByAccountID. Rows are ordered
// by card number ascending so the "first card for an account" answer is the
// same on every call.
func (s *PostgresCardStore) ListByAccountID(ctx context.Context, accountID int64) ([]*domain.CreditCard, error) {
	query := "SELECT " + cardColumns + " FROM credit_cards WHERE account_id = $1 ORDER BY card_number ASC"
	rows, err := s.q.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// GetByAccountIDAndCardNumber implements store.CardStore.GetByAccountIDAndCardNumber.
func (s *PostgresCardStore) GetByAccountIDAndCardNumber(ctx context.Context, accountID int64, cardNumber string) (*domain.CreditCard, error) {
	query := "SELECT " + cardColumns + " FROM credit_cards WHERE account_id = $1 AND card_number = $2"
	card, err := scanCard(s.q.QueryRowContext(ctx, query, accountID, cardNumber))
	if err != nil {
		return nil, MapError(err)
	}
	return card, nil
}

// FindByFilters implements store.CardStore.FindByFilters. It composes the
// WHERE clause from the non-nil filters and fetches one row beyond the page to
// learn whether a next page exists without a second count query.
func (s *PostgresCardStore) FindByFilters(ctx context.Context, filter store.CardFilter, page, pageSize int) (*store.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be positive", store.ErrInvalidEntity)
	}

	offset := (page - 1) * pageSize
	query, args := buildFilterQuery(filter, pageSize+1, offset)

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, MapError(err)
	}

	hasNext := len(cards) > pageSize
	if hasNext {
		cards = cards[:pageSize]
	}

	return &store.Page{
		Cards:       cards,
		HasNext:     hasNext,
		HasPrevious: offset > 0,
	}, nil
}

// Save implements store.CardStore.Save as an upsert keyed by card number.
func (s *PostgresCardStore) Save(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO credit_cards (card_number, account_id, embossed_name, cvv_code, expiration_date, active_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (card_number) DO UPDATE SET
			account_id      = EXCLUDED.account_id,
			embossed_name   = EXCLUDED.embossed_name,
			cvv_code        = EXCLUDED.cvv_code,
			expiration_date = EXCLUDED.expiration_date,
			active_status   = EXCLUDED.active_status,
			updated_at      = now()
		RETURNING ` + cardColumns

	saved, err := scanCard(s.q.QueryRowContext(ctx, query,
		card.CardNumber,
		card.AccountID,
		card.EmbossedName,
		card.CVVCode,
		card.ExpirationDate,
		card.ActiveStatus,
	))
	if err != nil {
		return nil, MapError(err)
	}

	s.logger.Debug("card saved",
		slog.String("card_number_last4", last4(saved.CardNumber)),
		slog.Int64("account_id", saved.AccountID))
	return saved, nil
}

// ExistsByCardNumber implements store.CardStore.ExistsByCardNumber.
func (s *PostgresCardStore) ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM credit_cards WHERE card_number = $1)",
		cardNumber,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// buildFilterQuery composes the filtered listing query from the non-nil
// filters. Predicates are appended conditionally so adding a filter never
// requires touching the others.
func buildFilterQuery(filter store.CardFilter, limit, offset int) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cardColumns)
	sb.WriteString(" FROM credit_cards")

	var (
		conditions []string
		args       []any
	)
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", len(args)))
	}
	if filter.CardNumber != nil {
		args = append(args, *filter.CardNumber)
		conditions = append(conditions, fmt.Sprintf("card_number = $%d", len(args)))
	}
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	sb.WriteString(" ORDER BY card_number ASC")

	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, offset)
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return sb.String(), args
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.CreditCard, error) {
	var card domain.CreditCard
	err := row.Scan(
		&card.CardNumber,
		&card.AccountID,
		&card.EmbossedName,
		&card.CVVCode,
		&card.ExpirationDate,
		&card.ActiveStatus,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func collectCards(rows *sql.Rows) ([]*domain.CreditCard, error) {
	cards := make([]*domain.CreditCard, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func last4(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
