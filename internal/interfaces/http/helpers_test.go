package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
	"settleup/internal/shared/middleware"
)

const testUserID = "firebase-uid-1"

// MockCardRepo implements card.Repository for testing
type MockCardRepo struct {
	ListByUserFunc  func(ctx context.Context, userID string) ([]card.Card, error)
	GetByIDFunc     func(ctx context.Context, userID, cardID string) (*card.Card, error)
	CreateFunc      func(ctx context.Context, userID string, c card.Card) (*card.Card, error)
	DeleteFunc      func(ctx context.Context, userID, cardID string) error
	UpdateNotesFunc func(ctx context.Context, userID, cardID, notes string) error
	WatchFunc       func(ctx context.Context, userID string, fn card.SnapshotFunc) (card.StopFunc, error)
}

func (m *MockCardRepo) ListByUser(ctx context.Context, userID string) ([]card.Card, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCardRepo) GetByID(ctx context.Context, userID, cardID string) (*card.Card, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, cardID)
	}
	return nil, card.ErrCardNotFound
}

func (m *MockCardRepo) Create(ctx context.Context, userID string, c card.Card) (*card.Card, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, c)
	}
	c.ID = "card-1"
	return &c, nil
}

func (m *MockCardRepo) Delete(ctx context.Context, userID, cardID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, cardID)
	}
	return nil
}

func (m *MockCardRepo) UpdateNotes(ctx context.Context, userID, cardID, notes string) error {
	if m.UpdateNotesFunc != nil {
		return m.UpdateNotesFunc(ctx, userID, cardID, notes)
	}
	return nil
}

func (m *MockCardRepo) Watch(ctx context.Context, userID string, fn card.SnapshotFunc) (card.StopFunc, error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, userID, fn)
	}
	return func() {}, nil
}

// MockCurrencyRepo implements currency.Repository for testing
type MockCurrencyRepo struct {
	GetFunc func(ctx context.Context, userID string) (*currency.Preference, error)
	PutFunc func(ctx context.Context, userID string, pref currency.Preference) error
}

func (m *MockCurrencyRepo) Get(ctx context.Context, userID string) (*currency.Preference, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCurrencyRepo) Put(ctx context.Context, userID string, pref currency.Preference) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, userID, pref)
	}
	return nil
}

// authedRequest builds a request carrying the test user's identity.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, testUserID)
	return req.WithContext(ctx)
}
