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
	"settleup/internal/domain/reminder"
	"settleup/internal/shared/middleware"
)

type ReminderHandler struct {
	cardService     *card.Service
	currencyService *currency.Service
}

func NewReminderHandler(cardService *card.Service, currencyService *currency.Service) *ReminderHandler {
	return &ReminderHandler{cardService: cardService, currencyService: currencyService}
}

// --- Response types ---

type ReminderResponse struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	DueDate           string `json:"dueDate,omitempty"`
	ReminderDate      string `json:"reminderDate,omitempty"`
	Warning           string `json:"warning,omitempty"`
	Exportable        bool   `json:"exportable"`
	GoogleCalendarURL string `json:"googleCalendarUrl,omitempty"`
}

// --- Handlers ---

// HandleReminder handles GET /api/cards/{id}/reminder
func (h *ReminderHandler) HandleReminder(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buildPayload(w, r)
	if !ok {
		return
	}

	resp := ReminderResponse{
		Title:       p.Title,
		Description: p.Description,
		Warning:     p.Warning,
		Exportable:  p.Exportable(),
	}
	if p.Exportable() {
		resp.DueDate = p.DueDate.Format("2006-01-02")
		resp.ReminderDate = p.ReminderDate.Format("2006-01-02")
		resp.GoogleCalendarURL = p.GoogleCalendarURL()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleReminderICS handles GET /api/cards/{id}/reminder.ics
func (h *ReminderHandler) HandleReminderICS(w http.ResponseWriter, r *http.Request) {
	p, ok := h.buildPayload(w, r)
	if !ok {
		return
	}

	ics, err := p.ICS(time.Now())
	if err != nil {
		if errors.Is(err, reminder.ErrNoDueDate) {
			http.Error(w, "Card has no due date", http.StatusUnprocessableEntity)
			return
		}
		log.Printf("Error rendering calendar file: %v", err)
		http.Error(w, "Failed to build calendar file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="payment-reminder.ics"`)
	w.Write([]byte(ics))
}

// buildPayload loads the card and assembles its reminder payload.
// Writes the error response itself and reports ok=false on failure.
func (h *ReminderHandler) buildPayload(w http.ResponseWriter, r *http.Request) (reminder.Payload, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return reminder.Payload{}, false
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return reminder.Payload{}, false
	}

	cardID := r.PathValue("id")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return reminder.Payload{}, false
	}

	c, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return reminder.Payload{}, false
		}
		log.Printf("Error getting card %s for reminder: %v", cardID, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return reminder.Payload{}, false
	}

	leadDays := -1 // default
	if v := r.URL.Query().Get("lead"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid lead parameter", http.StatusBadRequest)
			return reminder.Payload{}, false
		}
		leadDays = parsed
	}

	code := currency.DefaultCode
	if pref, err := h.currencyService.Preferences(r.Context(), userID); err == nil && pref != nil {
		code = pref.Selected
	}

	return reminder.Build(*c, code, leadDays), true
}
