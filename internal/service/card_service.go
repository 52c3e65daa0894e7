package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/cardops/card-api/internal/domain"
	"github.com/cardops/card-api/internal/platform/logger"
	"github.com/cardops/card-api/internal/redact"
	"github.com/cardops/card-api/internal/store"
)

// listPageSize is the fixed number of records per listing page.
const listPageSize = 7

// UpdateCardInput carries the client-settable fields of an update. CVV and
// day-of-month are deliberately absent: CVV is immutable through this path and
// the day is preserved from the stored expiration date.
type UpdateCardInput struct {
	CardNumber      string
	AccountID       int64
	EmbossedName    string
	ActiveStatus    string
	ExpirationMonth int
	ExpirationYear  int
}

// CardService provides the card CRUD operations.
type CardService interface {
	// GetCardDetails returns the full detail view for the card, or
	// store.ErrCardNotFound.
	GetCardDetails(ctx context.Context, cardNumber string) (*CardDetail, error)

	// SearchCard finds a single card by account ID, card number, or the exact
	// combination of both. At least one criterion must be supplied.
	SearchCard(ctx context.Context, accountID *int64, cardNumber *string) (*CardDetail, error)

	// UpdateCard applies the mutable card attributes under an exclusive row
	// lock and returns the updated detail view.
	UpdateCard(ctx context.Context, input UpdateCardInput) (*CardDetail, error)

	// ListCards returns one fixed-size page of card summaries matching the
	// optional filters. page is 1-based and defaults to 1 when non-positive.
	ListCards(ctx context.Context, accountID *int64, cardNumber *string, page int) (*CardList, error)
}

// cardService implements the CardService interface.
type cardService struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if the card store dependency is nil.
func NewCardService(cards store.CardStore, log *slog.Logger) (CardService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &cardService{
		cards:  cards,
		logger: log.With(slog.String("component", "card_service")),
	}, nil
}

// GetCardDetails implements CardService.GetCardDetails.
func (s *cardService) GetCardDetails(ctx context.Context, cardNumber string) (*CardDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("fetching card details",
		slog.String("card_number", redact.CardNumber(cardNumber)))

	var detail *CardDetail
	err := store.RunInReadTransaction(ctx, s.cards.DB(), func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.cards.WithTx(tx).GetByCardNumber(ctx, cardNumber)
		if err != nil {
			return err
		}
		detail = detailFromCard(card)
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewCardServiceError("get_card_details", "failed to retrieve card", err)
	}

	return detail, nil
}

// SearchCard implements CardService.SearchCard.
//
// Precedence: both criteria present means the exact account/card combination
// must match, with no fallback to a partial match. Card number alone is a
// point lookup. Account ID alone returns the account's lowest card number,
// which keeps the "first card" answer reproducible across calls.
func (s *cardService) SearchCard(ctx context.Context, accountID *int64, cardNumber *string) (*CardDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if accountID == nil && cardNumber == nil {
		return nil, ErrSearchCriteriaRequired
	}

	var detail *CardDetail
	err := store.RunInReadTransaction(ctx, s.cards.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)

		var (
			card *domain.CreditCard
			err  error
		)
		switch {
		case accountID != nil && cardNumber != nil:
			card, err = txCards.GetByAccountIDAndCardNumber(ctx, *accountID, *cardNumber)
		case cardNumber != nil:
			card, err = txCards.GetByCardNumber(ctx, *cardNumber)
		default:
			var cards []*domain.CreditCard
			cards, err = txCards.ListByAccountID(ctx, *accountID)
			if err == nil {
				if len(cards) == 0 {
					return store.ErrCardNotFound
				}
				card = cards[0]
			}
		}
		if err != nil {
			return err
		}
		detail = detailFromCard(card)
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewCardServiceError("search_card", "failed to search card", err)
	}

	log.Debug("card search succeeded",
		slog.String("card_number", redact.CardNumber(detail.CardNumber)))
	return detail, nil
}

// UpdateCard implements CardService.UpdateCard.
//
// The record is read under an exclusive row lock held until the transaction
// ends, so only one update per card number progresses at a time; updates to
// different cards run fully in parallel. Every check happens before the write,
// so a failed update mutates nothing.
func (s *cardService) UpdateCard(ctx context.Context, input UpdateCardInput) (*CardDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("updating card",
		slog.String("card_number", redact.CardNumber(input.CardNumber)))

	// Field rules are re-checked here even though the transport boundary
	// already validated them: callers that bypass the HTTP layer get the
	// same guarantees.
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	var detail *CardDetail
	err := store.RunInTransaction(ctx, s.cards.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)

		card, err := txCards.GetByCardNumberForUpdate(ctx, input.CardNumber)
		if err != nil {
			return err
		}

		if card.AccountID != input.AccountID {
			return ErrAccountMismatch
		}

		// Optimistic-concurrency baseline. Under the row lock this snapshot
		// cannot drift before the write below; the comparison stays in place
		// as the seam where a commit-time re-read of the durable row would
		// be substituted.
		baseline := card.Snapshot()

		embossedName := domain.NormalizeEmbossedName(input.EmbossedName)
		expiration, err := domain.ComposeExpiration(input.ExpirationYear, input.ExpirationMonth, card.ExpirationDate)
		if err != nil {
			return err
		}

		if card.Snapshot().Changed(baseline) {
			return ErrConcurrentModification
		}

		card.EmbossedName = embossedName
		card.ActiveStatus = input.ActiveStatus
		card.ExpirationDate = expiration

		saved, err := txCards.Save(ctx, card)
		if err != nil {
			return err
		}
		detail = detailFromCard(saved)
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) || IsBusinessError(err) {
			return nil, err
		}
		return nil, NewCardServiceError("update_card", "failed to update card", err)
	}

	log.Info("card updated",
		slog.String("card_number", redact.CardNumber(detail.CardNumber)),
		slog.Int64("account_id", detail.AccountID))
	return detail, nil
}

// ListCards implements CardService.ListCards.
func (s *cardService) ListCards(ctx context.Context, accountID *int64, cardNumber *string, page int) (*CardList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if page < 1 {
		page = 1
	}

	filter := store.CardFilter{
		AccountID:  accountID,
		CardNumber: cardNumber,
	}

	var result *store.Page
	err := store.RunInReadTransaction(ctx, s.cards.DB(), func(ctx context.Context, tx *sql.Tx) error {
		var err error
		result, err = s.cards.WithTx(tx).FindByFilters(ctx, filter, page, listPageSize)
		return err
	})
	if err != nil {
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}

	summaries := make([]CardSummary, 0, len(result.Cards))
	for _, card := range result.Cards {
		summaries = append(summaries, summaryFromCard(card))
	}

	log.Debug("cards listed",
		slog.Int("page", page),
		slog.Int("records", len(summaries)))

	return &CardList{
		Cards:              summaries,
		CurrentPage:        page,
		HasNextPage:        result.HasNext,
		HasPreviousPage:    result.HasPrevious,
		TotalRecordsOnPage: len(summaries),
	}, nil
}

// validateUpdateInput applies the field-level business rules of the update
// path. Failures name the violated field via the wrapped domain sentinel.
func validateUpdateInput(input UpdateCardInput) error {
	if err := domain.ValidateCardNumber(input.CardNumber); err != nil {
		return err
	}
	if err := domain.ValidateAccountID(input.AccountID); err != nil {
		return err
	}
	if err := domain.ValidateEmbossedName(input.EmbossedName); err != nil {
		return err
	}
	if err := domain.ValidateActiveStatus(input.ActiveStatus); err != nil {
		return err
	}
	if err := domain.ValidateExpirationMonth(input.ExpirationMonth); err != nil {
		return err
	}
	if err := domain.ValidateExpirationYear(input.ExpirationYear); err != nil {
		return err
	}
	return nil
}
