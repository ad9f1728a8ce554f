package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"settleup/internal/domain/currency"
	"settleup/internal/shared/middleware"
)

// RegionSource turns client-supplied coordinates into a region
// detector. The geolocation HTTP client implements it; tests inject
// fakes.
type RegionSource interface {
	At(lat, lon float64) currency.Detector
}

type CurrencyHandler struct {
	currencyService *currency.Service
	regions         RegionSource
}

func NewCurrencyHandler(currencyService *currency.Service, regions RegionSource) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService, regions: regions}
}

// --- Request/Response types ---

type CurrencyCodeRequest struct {
	Code string `json:"code"`
}

type CurrencyInfoResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// --- Handlers ---

// HandleCurrencies handles GET /api/currencies/ (supported list)
func (h *CurrencyHandler) HandleCurrencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	infos := currency.All()
	items := make([]CurrencyInfoResponse, 0, len(infos))
	for _, info := range infos {
		items = append(items, CurrencyInfoResponse{Code: info.Code, Symbol: info.Symbol, Name: info.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"currencies": items})
}

// HandlePreferences handles GET /api/currencies/preferences
func (h *CurrencyHandler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pref, err := h.currencyService.Preferences(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting currency preferences for user %s: %v", userID, err)
		http.Error(w, "Failed to get currency preferences", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

// HandleSelect handles POST /api/currencies/select
func (h *CurrencyHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.currencyService.Select)
}

// HandleAdd handles POST /api/currencies/available
func (h *CurrencyHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.currencyService.Add)
}

// HandleRemove handles DELETE /api/currencies/available/{code}
func (h *CurrencyHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	code := r.PathValue("code")
	if code == "" {
		http.Error(w, "Currency code is required", http.StatusBadRequest)
		return
	}

	pref, err := h.currencyService.Remove(r.Context(), userID, code)
	if err != nil {
		h.writeCurrencyError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

// HandleDetect handles GET /api/currencies/detect?lat=..&lon=..
// Resolves the client's position to a suggested currency; any failure
// falls back to the default instead of erroring.
func (h *CurrencyHandler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := currency.DefaultCode
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr == nil && lonErr == nil && h.regions != nil {
		code = currency.Detect(r.Context(), h.regions.At(lat, lon))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"code": code})
}

// --- Helpers ---

type preferenceMutation func(ctx context.Context, userID, code string) (*currency.Preference, error)

// mutate handles the shared decode/authorize/respond flow for the
// select and add operations.
func (h *CurrencyHandler) mutate(w http.ResponseWriter, r *http.Request, op preferenceMutation) {
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
	var req CurrencyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		http.Error(w, "Currency code is required", http.StatusBadRequest)
		return
	}

	pref, err := op(r.Context(), userID, req.Code)
	if err != nil {
		h.writeCurrencyError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

func (h *CurrencyHandler) writeCurrencyError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, currency.ErrUnknownCurrency):
		http.Error(w, "Unknown currency code", http.StatusBadRequest)
	case errors.Is(err, currency.ErrAlreadyAvailable):
		http.Error(w, "Currency already available", http.StatusConflict)
	case errors.Is(err, currency.ErrRemoveDefault), errors.Is(err, currency.ErrRemoveSelected):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("Error updating currency preferences for user %s: %v", userID, err)
		http.Error(w, "Failed to update currency preferences", http.StatusInternalServerError)
	}
}
