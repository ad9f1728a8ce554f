package main

import (
	"log"
	"net/http"

	httphandlers "settleup/internal/interfaces/http"
	"settleup/internal/shared/config"
	"settleup/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler
// with middleware applied.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Protected routes
	authMiddleware := middleware.Auth(deps.Authenticator)

	mux.Handle("/api/cards/", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleCards)))
	mux.Handle("/api/cards/summary", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleSummary)))
	mux.Handle("/api/cards/upcoming", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleUpcoming)))
	mux.Handle("/api/cards/stream", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleCardsStream)))
	mux.Handle("/api/cards/{id}", authMiddleware(http.HandlerFunc(deps.CardHandler.HandleCardByID)))
	mux.Handle("/api/cards/{id}/reminder", authMiddleware(http.HandlerFunc(deps.ReminderHandler.HandleReminder)))
	mux.Handle("/api/cards/{id}/reminder.ics", authMiddleware(http.HandlerFunc(deps.ReminderHandler.HandleReminderICS)))

	mux.Handle("/api/currencies/", http.HandlerFunc(deps.CurrencyHandler.HandleCurrencies))
	mux.Handle("/api/currencies/detect", http.HandlerFunc(deps.CurrencyHandler.HandleDetect))
	mux.Handle("/api/currencies/preferences", authMiddleware(http.HandlerFunc(deps.CurrencyHandler.HandlePreferences)))
	mux.Handle("/api/currencies/select", authMiddleware(http.HandlerFunc(deps.CurrencyHandler.HandleSelect)))
	mux.Handle("/api/currencies/available", authMiddleware(http.HandlerFunc(deps.CurrencyHandler.HandleAdd)))
	mux.Handle("/api/currencies/available/{code}", authMiddleware(http.HandlerFunc(deps.CurrencyHandler.HandleRemove)))

	mux.Handle("/api/scan/card", authMiddleware(http.HandlerFunc(deps.ScanHandler.HandleScanCard)))
	mux.Handle("/api/scan/statement", authMiddleware(http.HandlerFunc(deps.ScanHandler.HandleScanStatement)))
	mux.Handle("/api/scan/text", authMiddleware(http.HandlerFunc(deps.ScanHandler.HandleImportText)))

	mux.Handle("/api/devices/", authMiddleware(http.HandlerFunc(deps.DeviceHandler.HandleDevices)))
	mux.Handle("/api/devices/preferences", authMiddleware(http.HandlerFunc(deps.DeviceHandler.HandleNotificationPreferences)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
