package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
)

func newCardHandler(repo *MockCardRepo, currencyRepo *MockCurrencyRepo) *CardHandler {
	if currencyRepo == nil {
		currencyRepo = &MockCurrencyRepo{}
	}
	return NewCardHandler(card.NewService(repo), currency.NewService(currencyRepo))
}

func TestHandleCards_List(t *testing.T) {
	due := time.Now().AddDate(0, 0, 5)
	repo := &MockCardRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]card.Card, error) {
			if userID != testUserID {
				t.Errorf("userID = %q, want %q", userID, testUserID)
			}
			return []card.Card{
				{ID: "card-1", Name: "Chase Sapphire", StatementBalance: 2847.50, MinimumPayment: 125, DueDate: due},
				{ID: "card-2", Name: "Amex Gold", StatementBalance: 500},
			}, nil
		},
	}
	handler := newCardHandler(repo, nil)

	rr := httptest.NewRecorder()
	handler.HandleCards(rr, authedRequest(http.MethodGet, "/api/cards/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Cards []CardResponse `json:"cards"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(resp.Cards))
	}

	first := resp.Cards[0]
	if first.StatementBalanceDisplay != "$2,847.50" {
		t.Errorf("StatementBalanceDisplay = %q", first.StatementBalanceDisplay)
	}
	if first.DaysUntilDue == nil || *first.DaysUntilDue != 5 {
		t.Errorf("DaysUntilDue = %v, want 5", first.DaysUntilDue)
	}
	if first.Status != "5 Days Left" {
		t.Errorf("Status = %q", first.Status)
	}

	// No due date: derived fields stay absent
	second := resp.Cards[1]
	if second.DaysUntilDue != nil || second.Status != "" {
		t.Errorf("card without due date got derived fields: %+v", second)
	}
}

func TestHandleCards_ListUnauthorized(t *testing.T) {
	handler := newCardHandler(&MockCardRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cards/", nil)
	rr := httptest.NewRecorder()
	handler.HandleCards(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestHandleCards_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Valid",
			body:           `{"name":"Chase Sapphire","statementBalance":"2847.50","minimumPayment":125,"dueDate":"2025-12-15"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Name",
			body:           `{"statementBalance":"100"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Balance",
			body:           `{"name":"Chase"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCardRepo{
				CreateFunc: func(ctx context.Context, userID string, c card.Card) (*card.Card, error) {
					c.ID = "card-1"
					return &c, nil
				},
			}
			handler := newCardHandler(repo, nil)

			rr := httptest.NewRecorder()
			handler.HandleCards(rr, authedRequest(http.MethodPost, "/api/cards/", bytes.NewBufferString(tt.body)))

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d; body = %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp CardResponse
				if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.ID != "card-1" || resp.StatementBalance != 2847.50 {
					t.Errorf("unexpected response: %+v", resp)
				}
			}
		})
	}
}

func TestHandleCardByID_Get(t *testing.T) {
	repo := &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, userID, cardID string) (*card.Card, error) {
			if cardID != "card-1" {
				return nil, card.ErrCardNotFound
			}
			return &card.Card{ID: "card-1", Name: "Chase Sapphire", StatementBalance: 100}, nil
		},
	}
	handler := newCardHandler(repo, nil)

	req := authedRequest(http.MethodGet, "/api/cards/card-1", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleCardByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	req = authedRequest(http.MethodGet, "/api/cards/missing", nil)
	req.SetPathValue("id", "missing")
	rr = httptest.NewRecorder()
	handler.HandleCardByID(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHandleCardByID_Delete(t *testing.T) {
	deleted := ""
	repo := &MockCardRepo{
		DeleteFunc: func(ctx context.Context, userID, cardID string) error {
			deleted = cardID
			return nil
		},
	}
	handler := newCardHandler(repo, nil)

	req := authedRequest(http.MethodDelete, "/api/cards/card-1", nil)
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleCardByID(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if deleted != "card-1" {
		t.Errorf("deleted = %q, want card-1", deleted)
	}
}

func TestHandleCardByID_UpdateNotes(t *testing.T) {
	var gotNotes string
	repo := &MockCardRepo{
		UpdateNotesFunc: func(ctx context.Context, userID, cardID, notes string) error {
			gotNotes = notes
			return nil
		},
	}
	handler := newCardHandler(repo, nil)

	req := authedRequest(http.MethodPatch, "/api/cards/card-1", bytes.NewBufferString(`{"notes":"pay from checking"}`))
	req.SetPathValue("id", "card-1")
	rr := httptest.NewRecorder()
	handler.HandleCardByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if gotNotes != "pay from checking" {
		t.Errorf("notes = %q", gotNotes)
	}
}

func TestHandleSummary(t *testing.T) {
	repo := &MockCardRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]card.Card, error) {
			return []card.Card{
				{StatementBalance: 100, MinimumPayment: 10},
				{StatementBalance: 50, MinimumPayment: 5},
			}, nil
		},
	}
	handler := newCardHandler(repo, nil)

	rr := httptest.NewRecorder()
	handler.HandleSummary(rr, authedRequest(http.MethodGet, "/api/cards/summary", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp SummaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalBalance != 150 || resp.TotalMinimumDue != 15 {
		t.Errorf("totals = %+v, want 150/15", resp)
	}
	if resp.TotalBalanceDisplay != "$150.00" {
		t.Errorf("TotalBalanceDisplay = %q", resp.TotalBalanceDisplay)
	}
	if resp.CardCount != 2 {
		t.Errorf("CardCount = %d, want 2", resp.CardCount)
	}
}

func TestHandleSummary_RepositoryError(t *testing.T) {
	repo := &MockCardRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]card.Card, error) {
			return nil, errors.New("backend down")
		},
	}
	handler := newCardHandler(repo, nil)

	rr := httptest.NewRecorder()
	handler.HandleSummary(rr, authedRequest(http.MethodGet, "/api/cards/summary", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestHandleUpcoming(t *testing.T) {
	now := time.Now()
	repo := &MockCardRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]card.Card, error) {
			return []card.Card{
				{ID: "far", Name: "Far", DueDate: now.AddDate(0, 0, 45)},
				{ID: "soon", Name: "Soon", DueDate: now.AddDate(0, 0, 3)},
				{ID: "none", Name: "No Date"},
			}, nil
		},
	}
	handler := newCardHandler(repo, nil)

	rr := httptest.NewRecorder()
	handler.HandleUpcoming(rr, authedRequest(http.MethodGet, "/api/cards/upcoming", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Cards      []CardResponse `json:"cards"`
		WindowDays int            `json:"windowDays"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WindowDays != card.DefaultUpcomingWindow {
		t.Errorf("windowDays = %d, want %d", resp.WindowDays, card.DefaultUpcomingWindow)
	}
	if len(resp.Cards) != 1 || resp.Cards[0].ID != "soon" {
		t.Errorf("cards = %+v, want only soon", resp.Cards)
	}
}

func TestHandleCards_CurrencyPreferenceAppliedToDisplay(t *testing.T) {
	repo := &MockCardRepo{
		ListByUserFunc: func(ctx context.Context, userID string) ([]card.Card, error) {
			return []card.Card{{ID: "card-1", Name: "Rakuten", StatementBalance: 1234}}, nil
		},
	}
	currencyRepo := &MockCurrencyRepo{
		GetFunc: func(ctx context.Context, userID string) (*currency.Preference, error) {
			return &currency.Preference{Selected: "JPY", Available: []string{"USD", "JPY"}}, nil
		},
	}
	handler := newCardHandler(repo, currencyRepo)

	rr := httptest.NewRecorder()
	handler.HandleCards(rr, authedRequest(http.MethodGet, "/api/cards/", nil))

	var resp struct {
		Cards []CardResponse `json:"cards"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Cards[0].StatementBalanceDisplay != "¥1,234" {
		t.Errorf("StatementBalanceDisplay = %q, want ¥1,234", resp.Cards[0].StatementBalanceDisplay)
	}
}
