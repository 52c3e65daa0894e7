package service

import (
	"github.com/cardops/card-api/internal/domain"
)

// expirationDateLayout is the wire format for expiration dates (yyyy-MM-dd).
const expirationDateLayout = "2006-01-02"

// CardDetail is the full-fidelity view of a card returned by single-record
// reads and by the update path. It is a separate type from the stored entity
// so storage schema changes do not leak into the wire contract.
type CardDetail struct {
	CardNumber     string
	AccountID      int64
	EmbossedName   string
	CVVCode        string
	ExpirationDate string
	ActiveStatus   string
}

// CardSummary is the reduced view used by paginated listings: no CVV, no
// name, no expiration.
type CardSummary struct {
	CardNumber   string
	AccountID    int64
	ActiveStatus string
}

// CardList is one page of summaries plus paging indicators. CurrentPage is
// 1-based; TotalRecordsOnPage counts the records on this page, not the total
// across all pages.
type CardList struct {
	Cards              []CardSummary
	CurrentPage        int
	HasNextPage        bool
	HasPreviousPage    bool
	TotalRecordsOnPage int
}

// detailFromCard maps a stored card to its detail view.
func detailFromCard(card *domain.CreditCard) *CardDetail {
	return &CardDetail{
		CardNumber:     card.CardNumber,
		AccountID:      card.AccountID,
		EmbossedName:   card.EmbossedName,
		CVVCode:        card.CVVCode,
		ExpirationDate: card.ExpirationDate.Format(expirationDateLayout),
		ActiveStatus:   card.ActiveStatus,
	}
}

// summaryFromCard maps a stored card to its summary view.
func summaryFromCard(card *domain.CreditCard) CardSummary {
	return CardSummary{
		CardNumber:   card.CardNumber,
		AccountID:    card.AccountID,
		ActiveStatus: card.ActiveStatus,
	}
}
