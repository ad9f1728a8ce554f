package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"settleup/internal/domain/notification"
	"settleup/internal/shared/middleware"
)

type DeviceHandler struct {
	notificationService *notification.Service
}

func NewDeviceHandler(notificationService *notification.Service) *DeviceHandler {
	return &DeviceHandler{notificationService: notificationService}
}

// --- Request types ---

type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type UnregisterDeviceRequest struct {
	Token string `json:"token"`
}

type UpdateNotificationPrefsRequest struct {
	DueRemindersDisabled *bool `json:"dueRemindersDisabled"`
	GeneralDisabled      *bool `json:"generalDisabled"`
}

// --- Handlers ---

// HandleDevices dispatches POST (register) and DELETE (unregister)
// on /api/devices/
func (h *DeviceHandler) HandleDevices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.HandleRegisterDevice(w, r)
	case http.MethodDelete:
		h.HandleUnregisterDevice(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRegisterDevice handles POST /api/devices/
func (h *DeviceHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.notificationService.RegisterDevice(r.Context(), notification.RegisterDeviceParams{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		if errors.Is(err, notification.ErrInvalidToken) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error registering device for user %s: %v", userID, err)
		http.Error(w, "Failed to register device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "token": token.Token})
}

// HandleUnregisterDevice handles DELETE /api/devices/
func (h *DeviceHandler) HandleUnregisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req UnregisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.notificationService.UnregisterDevice(r.Context(), userID, req.Token); err != nil {
		if errors.Is(err, notification.ErrInvalidToken) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error unregistering device for user %s: %v", userID, err)
		http.Error(w, "Failed to unregister device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// HandleNotificationPreferences handles GET/POST /api/devices/preferences
func (h *DeviceHandler) HandleNotificationPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		pref, err := h.notificationService.GetPreference(r.Context(), userID)
		if err != nil {
			log.Printf("Error getting notification preferences for user %s: %v", userID, err)
			http.Error(w, "Failed to get preferences", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pref)

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		var req UpdateNotificationPrefsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		pref, err := h.notificationService.GetPreference(r.Context(), userID)
		if err != nil {
			log.Printf("Error loading notification preferences for user %s: %v", userID, err)
			http.Error(w, "Failed to update preferences", http.StatusInternalServerError)
			return
		}

		if req.DueRemindersDisabled != nil {
			pref.DueRemindersDisabled = *req.DueRemindersDisabled
		}
		if req.GeneralDisabled != nil {
			pref.GeneralDisabled = *req.GeneralDisabled
		}

		if err := h.notificationService.UpdatePreference(r.Context(), userID, pref); err != nil {
			log.Printf("Error updating notification preferences for user %s: %v", userID, err)
			http.Error(w, "Failed to update preferences", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pref)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
