package api

import (
	"log/slog"
	"net/http"

	"github.com/cardops/card-api/internal/api/shared"
	"github.com/cardops/card-api/internal/platform/logger"
	"github.com/cardops/card-api/internal/redact"
	"github.com/cardops/card-api/internal/service"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards service.CardService, log *slog.Logger) *CardHandler {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("card service cannot be nil for CardHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cards:  cards,
		logger: log.With(slog.String("component", "card_handler")),
	}
}

// GetCardDetails handles GET /cards/{cardNumber} requests.
func (h *CardHandler) GetCardDetails(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardNumber, err := getPathCardNumber(r)
	if err != nil {
		log.Warn("invalid card number in path", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	detail, err := h.cards.GetCardDetails(r.Context(), cardNumber)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detailToResponse(detail))
}

// SearchCard handles GET /cards/search requests. At least one of the
// accountId/cardNumber query parameters must be present.
func (h *CardHandler) SearchCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	accountID, err := getQueryAccountID(r)
	if err != nil {
		log.Warn("invalid accountId query parameter", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}
	cardNumber, err := getQueryCardNumber(r)
	if err != nil {
		log.Warn("invalid cardNumber query parameter", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	detail, err := h.cards.SearchCard(r.Context(), accountID, cardNumber)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detailToResponse(detail))
}

// UpdateCard handles PUT /cards/{cardNumber} requests. The path and body card
// numbers must agree; a mismatch is rejected before the service is invoked.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardNumber, err := getPathCardNumber(r)
	if err != nil {
		log.Warn("invalid card number in path", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("update request validation failed", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if req.CardNumber != cardNumber {
		log.Warn("card number mismatch between path and body",
			slog.String("path_card_number", redact.CardNumber(cardNumber)),
			slog.String("body_card_number", redact.CardNumber(req.CardNumber)))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Card number in path and body must match")
		return
	}

	detail, err := h.cards.UpdateCard(r.Context(), service.UpdateCardInput{
		CardNumber:      req.CardNumber,
		AccountID:       req.AccountID,
		EmbossedName:    req.EmbossedName,
		ActiveStatus:    req.ActiveStatus,
		ExpirationMonth: req.ExpirationMonth,
		ExpirationYear:  req.ExpirationYear,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detailToResponse(detail))
}

// ListCards handles GET /cards requests: a paginated summary listing with
// optional accountId/cardNumber filters.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	accountID, err := getQueryAccountID(r)
	if err != nil {
		log.Warn("invalid accountId query parameter", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}
	cardNumber, err := getQueryCardNumber(r)
	if err != nil {
		log.Warn("invalid cardNumber query parameter", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}
	page, err := getQueryPage(r)
	if err != nil {
		log.Warn("invalid page query parameter", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	list, err := h.cards.ListCards(r.Context(), accountID, cardNumber, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, listToResponse(list))
}
