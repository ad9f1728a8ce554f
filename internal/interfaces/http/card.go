package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
	"settleup/internal/shared/middleware"
)

const maxBodySize = 1 << 20 // 1 MiB

type CardHandler struct {
	cardService     *card.Service
	currencyService *currency.Service
}

func NewCardHandler(cardService *card.Service, currencyService *currency.Service) *CardHandler {
	return &CardHandler{cardService: cardService, currencyService: currencyService}
}

// --- Request/Response types ---

// CreateCardRequest keeps amount and date fields loosely typed; clients
// send numbers or strings and normalization happens in the domain.
type CreateCardRequest struct {
	Name             string `json:"name"`
	StatementBalance any    `json:"statementBalance"`
	MinimumPayment   any    `json:"minimumPayment"`
	DueDate          any    `json:"dueDate"`
	Category         string `json:"category"`
	Notes            string `json:"notes"`
	CardNumber       string `json:"cardNumber"`
	Last4            string `json:"last4"`
	ExpiryDate       string `json:"expiryDate"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type CardResponse struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	StatementBalance        float64 `json:"statementBalance"`
	StatementBalanceDisplay string `json:"statementBalanceDisplay"`
	MinimumPayment          float64 `json:"minimumPayment"`
	MinimumPaymentDisplay   string `json:"minimumPaymentDisplay"`
	DueDate                 string `json:"dueDate,omitempty"`
	DueDateDisplay          string `json:"dueDateDisplay,omitempty"`
	DaysUntilDue            *int   `json:"daysUntilDue,omitempty"`
	Status                  string `json:"status,omitempty"`
	Severity                string `json:"severity,omitempty"`
	Category                string `json:"category"`
	Notes                   string `json:"notes,omitempty"`
	Last4                   string `json:"last4,omitempty"`
	ExpiryDate              string `json:"expiryDate,omitempty"`
	Network                 string `json:"network,omitempty"`
	CreatedAt               string `json:"createdAt,omitempty"`
}

type SummaryResponse struct {
	TotalBalance           float64 `json:"totalBalance"`
	TotalBalanceDisplay    string  `json:"totalBalanceDisplay"`
	TotalMinimumDue        float64 `json:"totalMinimumDue"`
	TotalMinimumDueDisplay string  `json:"totalMinimumDueDisplay"`
	CardCount              int     `json:"cardCount"`
}

// --- Handlers ---

// HandleCards handles GET (list) and POST (create) /api/cards/
func (h *CardHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CardHandler) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	cards, err := h.cardService.ListCards(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing cards for user %s: %v", userID, err)
		http.Error(w, "Failed to list cards", http.StatusInternalServerError)
		return
	}

	code := h.displayCurrency(r, userID)
	now := time.Now()
	items := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		items = append(items, toCardResponse(c, code, now))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"cards": items})
}

func (h *CardHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.cardService.CreateCard(r.Context(), userID, card.CreateParams{
		Name:             req.Name,
		StatementBalance: req.StatementBalance,
		MinimumPayment:   req.MinimumPayment,
		DueDate:          req.DueDate,
		Category:         req.Category,
		Notes:            req.Notes,
		CardNumber:       req.CardNumber,
		Last4:            req.Last4,
		ExpiryDate:       req.ExpiryDate,
	})
	if err != nil {
		if errors.Is(err, card.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating card for user %s: %v", userID, err)
		http.Error(w, "Failed to create card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCardResponse(*created, h.displayCurrency(r, userID), time.Now()))
}

// HandleCardByID handles GET/DELETE/PATCH /api/cards/{id}
func (h *CardHandler) HandleCardByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cardID := r.PathValue("id")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, cardID)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, cardID)
	case http.MethodPatch:
		h.handleUpdateNotes(w, r, userID, cardID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CardHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, cardID string) {
	c, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting card %s for user %s: %v", cardID, userID, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCardResponse(*c, h.displayCurrency(r, userID), time.Now()))
}

func (h *CardHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, cardID string) {
	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting card %s for user %s: %v", cardID, userID, err)
		http.Error(w, "Failed to delete card", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CardHandler) handleUpdateNotes(w http.ResponseWriter, r *http.Request, userID, cardID string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cardService.UpdateNotes(r.Context(), userID, cardID, req.Notes); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating notes on card %s for user %s: %v", cardID, userID, err)
		http.Error(w, "Failed to update notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// HandleSummary handles GET /api/cards/summary
func (h *CardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), userID)
	if err != nil {
		log.Printf("Error summarizing cards for user %s: %v", userID, err)
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	stats := card.Totals(cards)
	code := h.displayCurrency(r, userID)
	resp := SummaryResponse{
		TotalBalance:           stats.TotalBalance,
		TotalBalanceDisplay:    currency.Format(stats.TotalBalance, code),
		TotalMinimumDue:        stats.TotalMinimumDue,
		TotalMinimumDueDisplay: currency.Format(stats.TotalMinimumDue, code),
		CardCount:              len(cards),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleUpcoming handles GET /api/cards/upcoming
func (h *CardHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = card.DefaultUpcomingWindow
	}

	cards, err := h.cardService.UpcomingCards(r.Context(), userID, days)
	if err != nil {
		log.Printf("Error listing upcoming cards for user %s: %v", userID, err)
		http.Error(w, "Failed to list upcoming cards", http.StatusInternalServerError)
		return
	}

	code := h.displayCurrency(r, userID)
	now := time.Now()
	items := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		items = append(items, toCardResponse(c, code, now))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"cards": items, "windowDays": days})
}

// --- Helpers ---

// displayCurrency resolves the user's selected display currency,
// falling back to the default when preferences cannot be loaded.
func (h *CardHandler) displayCurrency(r *http.Request, userID string) string {
	pref, err := h.currencyService.Preferences(r.Context(), userID)
	if err != nil || pref == nil {
		return currency.DefaultCode
	}
	return pref.Selected
}

func toCardResponse(c card.Card, currencyCode string, now time.Time) CardResponse {
	resp := CardResponse{
		ID:                      c.ID,
		Name:                    c.Name,
		StatementBalance:        c.StatementBalance,
		StatementBalanceDisplay: currency.Format(c.StatementBalance, currencyCode),
		MinimumPayment:          c.MinimumPayment,
		MinimumPaymentDisplay:   currency.Format(c.MinimumPayment, currencyCode),
		Category:                c.Category,
		Notes:                   c.Notes,
		Last4:                   c.Last4,
		ExpiryDate:              c.ExpiryDate,
	}

	if number := c.CardNumber; number != "" {
		resp.Network = string(card.DetectNetwork(number))
	} else if c.Last4 != "" {
		resp.Network = string(card.DetectNetwork(c.Last4))
	}

	if c.HasDueDate() {
		offset := card.DayOffset(c.DueDate, now)
		status := card.StatusFor(offset)
		resp.DueDate = c.DueDate.Format("2006-01-02")
		resp.DueDateDisplay = card.FormatDate(c.DueDate)
		resp.DaysUntilDue = &offset
		resp.Status = status.Label
		resp.Severity = string(card.SeverityFor(offset))
	}

	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}

	return resp
}
