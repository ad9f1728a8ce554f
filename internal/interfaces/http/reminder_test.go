package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
)

func newReminderHandler(repo *MockCardRepo) *ReminderHandler {
	return NewReminderHandler(card.NewService(repo), currency.NewService(&MockCurrencyRepo{}))
}

func reminderCardRepo(c card.Card) *MockCardRepo {
	return &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, userID, cardID string) (*card.Card, error) {
			if cardID != c.ID {
				return nil, card.ErrCardNotFound
			}
			return &c, nil
		},
	}
}

func TestHandleReminder(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	handler := newReminderHandler(reminderCardRepo(card.Card{
		ID: "card-1", Name: "Chase Sapphire", MinimumPayment: 125, DueDate: due,
	}))

	req := authedRequest(http.MethodGet, "/api/cards/card-1/reminder", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleReminder(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp ReminderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Title != "Chase Sapphire" {
		t.Errorf("Title = %q", resp.Title)
	}
	if resp.Description != "Minimum payment: $125.00" {
		t.Errorf("Description = %q", resp.Description)
	}
	if resp.ReminderDate != "2025-12-14" {
		t.Errorf("ReminderDate = %q, want 2025-12-14", resp.ReminderDate)
	}
	if !resp.Exportable || resp.GoogleCalendarURL == "" {
		t.Errorf("expected exportable payload with calendar link: %+v", resp)
	}
	if !strings.Contains(resp.GoogleCalendarURL, "action=TEMPLATE") {
		t.Errorf("GoogleCalendarURL = %q", resp.GoogleCalendarURL)
	}
}

func TestHandleReminder_NoDueDate(t *testing.T) {
	handler := newReminderHandler(reminderCardRepo(card.Card{
		ID: "card-1", Name: "Chase Sapphire", StatementBalance: 567,
	}))

	req := authedRequest(http.MethodGet, "/api/cards/card-1/reminder", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleReminder(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp ReminderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Exportable {
		t.Error("payload without due date must not be exportable")
	}
	if resp.Warning == "" {
		t.Error("expected a warning for missing due date")
	}
	if resp.GoogleCalendarURL != "" {
		t.Errorf("GoogleCalendarURL = %q, want empty", resp.GoogleCalendarURL)
	}
}

func TestHandleReminder_CustomLead(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	handler := newReminderHandler(reminderCardRepo(card.Card{
		ID: "card-1", Name: "Chase Sapphire", MinimumPayment: 125, DueDate: due,
	}))

	req := authedRequest(http.MethodGet, "/api/cards/card-1/reminder?lead=3", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleReminder(rr, req)

	var resp ReminderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ReminderDate != "2025-12-12" {
		t.Errorf("ReminderDate = %q, want 2025-12-12", resp.ReminderDate)
	}
}

func TestHandleReminder_InvalidLead(t *testing.T) {
	handler := newReminderHandler(reminderCardRepo(card.Card{ID: "card-1", Name: "C", DueDate: time.Now()}))

	req := authedRequest(http.MethodGet, "/api/cards/card-1/reminder?lead=-2", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleReminder(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestHandleReminderICS(t *testing.T) {
	due := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	handler := newReminderHandler(reminderCardRepo(card.Card{
		ID: "card-1", Name: "Chase Sapphire", MinimumPayment: 125, DueDate: due,
	}))

	req := authedRequest(http.MethodGet, "/api/cards/card-1/reminder.ics", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleReminderICS(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, ".ics") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "SUMMARY:Chase Sapphire") {
		t.Errorf("unexpected ICS body: %s", body)
	}
}

func TestHandleReminderICS_NoDueDate(t *testing.T) {
	handler := newReminderHandler(reminderCardRepo(card.Card{ID: "card-1", Name: "Chase Sapphire"}))

	req := authedRequest(http.MethodGet, "/api/cards/card-1/reminder.ics", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleReminderICS(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
}

func TestHandleReminder_CardNotFound(t *testing.T) {
	handler := newReminderHandler(reminderCardRepo(card.Card{ID: "other"}))

	req := authedRequest(http.MethodGet, "/api/cards/missing/reminder", nil)
	req.SetPathValue("id", "missing")
	rr := httptest.NewRecorder()
	handler.HandleReminder(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
