package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/cardops/card-api/internal/api/shared"
	"github.com/cardops/card-api/internal/domain"
	"github.com/cardops/card-api/internal/service"
)

func init() {
	// "cardname" enforces the embossed-name content rule (letters and spaces
	// only) at the boundary; validator's builtin alpha tag rejects spaces.
	if err := shared.Validate.RegisterValidation("cardname", func(fl validator.FieldLevel) bool {
		return domain.ValidateEmbossedName(fl.Field().String()) == nil
	}); err != nil {
		// ALLOW-PANIC: registration only fails on a programming error
		panic(err)
	}
}

// UpdateCardRequest defines the payload for the card update endpoint. The
// boundary rejects malformed values before the service is invoked; the
// service re-checks the same rules as defense in depth.
type UpdateCardRequest struct {
	CardNumber      string `json:"cardNumber"      validate:"required,len=16,numeric"`
	AccountID       int64  `json:"accountId"       validate:"required,min=10000000000,max=99999999999"`
	EmbossedName    string `json:"embossedName"    validate:"required,max=50,cardname"`
	ActiveStatus    string `json:"activeStatus"    validate:"required,oneof=Y N"`
	ExpirationMonth int    `json:"expirationMonth" validate:"required,min=1,max=12"`
	ExpirationYear  int    `json:"expirationYear"  validate:"required,min=1950,max=2099"`
}

// CardDetailResponse is the full detail view of a card, including the CVV
// and the expiration date formatted as yyyy-MM-dd.
type CardDetailResponse struct {
	CardNumber     string `json:"cardNumber"`
	AccountID      int64  `json:"accountId"`
	EmbossedName   string `json:"embossedName"`
	CVVCode        string `json:"cvvCode"`
	ExpirationDate string `json:"expirationDate"`
	ActiveStatus   string `json:"activeStatus"`
}

// CardSummaryResponse is the reduced listing view of a card.
type CardSummaryResponse struct {
	CardNumber   string `json:"cardNumber"`
	AccountID    int64  `json:"accountId"`
	ActiveStatus string `json:"activeStatus"`
}

// CardListResponse is one page of card summaries.
type CardListResponse struct {
	Cards              []CardSummaryResponse `json:"cards"`
	CurrentPage        int                   `json:"currentPage"`
	HasNextPage        bool                  `json:"hasNextPage"`
	HasPreviousPage    bool                  `json:"hasPreviousPage"`
	TotalRecordsOnPage int                   `json:"totalRecordsOnPage"`
}

// detailToResponse converts a service detail view to its wire shape.
func detailToResponse(detail *service.CardDetail) CardDetailResponse {
	return CardDetailResponse{
		CardNumber:     detail.CardNumber,
		AccountID:      detail.AccountID,
		EmbossedName:   detail.EmbossedName,
		CVVCode:        detail.CVVCode,
		ExpirationDate: detail.ExpirationDate,
		ActiveStatus:   detail.ActiveStatus,
	}
}

// listToResponse converts a service list page to its wire shape.
func listToResponse(list *service.CardList) CardListResponse {
	cards := make([]CardSummaryResponse, 0, len(list.Cards))
	for _, summary := range list.Cards {
		cards = append(cards, CardSummaryResponse{
			CardNumber:   summary.CardNumber,
			AccountID:    summary.AccountID,
			ActiveStatus: summary.ActiveStatus,
		})
	}
	return CardListResponse{
		Cards:              cards,
		CurrentPage:        list.CurrentPage,
		HasNextPage:        list.HasNextPage,
		HasPreviousPage:    list.HasPreviousPage,
		TotalRecordsOnPage: list.TotalRecordsOnPage,
	}
}
