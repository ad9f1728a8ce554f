package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"settleup/internal/domain/notification"
)

// MockDeviceRepo implements notification.Repository for testing
type MockDeviceRepo struct {
	UpsertDeviceTokenFunc func(ctx context.Context, params notification.RegisterDeviceParams) (*notification.DeviceToken, error)
	DeactivateTokenFunc   func(ctx context.Context, userID, token string) error
	GetPreferenceFunc     func(ctx context.Context, userID string) (*notification.Preference, error)
	PutPreferenceFunc     func(ctx context.Context, userID string, pref notification.Preference) error
}

func (m *MockDeviceRepo) UpsertDeviceToken(ctx context.Context, params notification.RegisterDeviceParams) (*notification.DeviceToken, error) {
	if m.UpsertDeviceTokenFunc != nil {
		return m.UpsertDeviceTokenFunc(ctx, params)
	}
	return &notification.DeviceToken{Token: params.Token, Platform: params.Platform, Active: true}, nil
}

func (m *MockDeviceRepo) GetActiveTokens(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	return nil, nil
}

func (m *MockDeviceRepo) DeactivateToken(ctx context.Context, userID, token string) error {
	if m.DeactivateTokenFunc != nil {
		return m.DeactivateTokenFunc(ctx, userID, token)
	}
	return nil
}

func (m *MockDeviceRepo) ListUserIDsWithTokens(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *MockDeviceRepo) GetPreference(ctx context.Context, userID string) (*notification.Preference, error) {
	if m.GetPreferenceFunc != nil {
		return m.GetPreferenceFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDeviceRepo) PutPreference(ctx context.Context, userID string, pref notification.Preference) error {
	if m.PutPreferenceFunc != nil {
		return m.PutPreferenceFunc(ctx, userID, pref)
	}
	return nil
}

func newDeviceHandler(repo *MockDeviceRepo) *DeviceHandler {
	if repo == nil {
		repo = &MockDeviceRepo{}
	}
	return NewDeviceHandler(notification.NewService(repo, nil))
}

func TestHandleRegisterDevice(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"Valid", `{"token":"fcm-token-abc","platform":"android"}`, http.StatusCreated},
		{"Missing Token", `{"platform":"ios"}`, http.StatusBadRequest},
		{"Invalid JSON", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newDeviceHandler(nil)

			rr := httptest.NewRecorder()
			handler.HandleRegisterDevice(rr, authedRequest(http.MethodPost, "/api/devices/", bytes.NewBufferString(tt.body)))

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d; body = %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleUnregisterDevice(t *testing.T) {
	deactivated := ""
	handler := newDeviceHandler(&MockDeviceRepo{
		DeactivateTokenFunc: func(ctx context.Context, userID, token string) error {
			deactivated = token
			return nil
		},
	})

	rr := httptest.NewRecorder()
	handler.HandleUnregisterDevice(rr, authedRequest(http.MethodDelete, "/api/devices/", bytes.NewBufferString(`{"token":"fcm-token-abc"}`)))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if deactivated != "fcm-token-abc" {
		t.Errorf("deactivated = %q", deactivated)
	}
}

func TestHandleNotificationPreferences(t *testing.T) {
	var stored *notification.Preference
	handler := newDeviceHandler(&MockDeviceRepo{
		GetPreferenceFunc: func(ctx context.Context, userID string) (*notification.Preference, error) {
			return stored, nil
		},
		PutPreferenceFunc: func(ctx context.Context, userID string, pref notification.Preference) error {
			stored = &pref
			return nil
		},
	})

	// Defaults: everything enabled
	rr := httptest.NewRecorder()
	handler.HandleNotificationPreferences(rr, authedRequest(http.MethodGet, "/api/devices/preferences", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var pref notification.Preference
	if err := json.Unmarshal(rr.Body.Bytes(), &pref); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pref.DueRemindersDisabled || pref.GeneralDisabled {
		t.Errorf("default preference = %+v, want all enabled", pref)
	}

	// Partial update only touches the provided field
	rr = httptest.NewRecorder()
	handler.HandleNotificationPreferences(rr, authedRequest(http.MethodPost, "/api/devices/preferences", bytes.NewBufferString(`{"dueRemindersDisabled":true}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if stored == nil || !stored.DueRemindersDisabled || stored.GeneralDisabled {
		t.Errorf("stored = %+v, want only due reminders disabled", stored)
	}
}

func TestHandleRegisterDevice_Unauthorized(t *testing.T) {
	handler := newDeviceHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/devices/", bytes.NewBufferString(`{"token":"t"}`))
	rr := httptest.NewRecorder()
	handler.HandleRegisterDevice(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
