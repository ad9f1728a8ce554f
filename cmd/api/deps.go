package main

import (
	"context"
	"log"

	"settleup/internal/domain/card"
	"settleup/internal/domain/currency"
	"settleup/internal/domain/notification"
	"settleup/internal/infrastructure/firebase"
	fsrepo "settleup/internal/infrastructure/firestore"
	"settleup/internal/infrastructure/gemini"
	"settleup/internal/infrastructure/geo"
	httphandlers "settleup/internal/interfaces/http"
	"settleup/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Firebase *firebase.App

	// Handlers
	CardHandler     *httphandlers.CardHandler
	ReminderHandler *httphandlers.ReminderHandler
	CurrencyHandler *httphandlers.CurrencyHandler
	ScanHandler     *httphandlers.ScanHandler
	DeviceHandler   *httphandlers.DeviceHandler

	// Auth
	Authenticator *firebase.Authenticator

	// Domain services (for the scheduler job provider)
	CardService         *card.Service
	CurrencyService     *currency.Service
	NotificationService *notification.Service

	closeFuncs []func() error
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	app, err := firebase.NewApp(ctx, cfg.Firebase)
	if err != nil {
		return nil, err
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to Firestore")

	authenticator, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	cardRepo := fsrepo.NewCardRepository(fsClient)
	settingsRepo := fsrepo.NewSettingsRepository(fsClient)
	deviceRepo := fsrepo.NewDeviceRepository(fsClient)

	// FCM messenger. Tokens the provider rejects get deactivated in
	// place so the next fan-out skips them.
	messenger, err := app.Messaging(ctx, deviceRepo.DeactivateByToken)
	if err != nil {
		return nil, err
	}

	// Initialize domain services
	cardService := card.NewService(cardRepo)
	currencyService := currency.NewService(settingsRepo)
	notificationService := notification.NewService(deviceRepo, messenger)

	// External extraction and geocoding clients
	extractor := gemini.NewClient(cfg.Gemini)
	regions := geo.NewClient(cfg.Geo)

	return &Dependencies{
		Firebase:            app,
		CardHandler:         httphandlers.NewCardHandler(cardService, currencyService),
		ReminderHandler:     httphandlers.NewReminderHandler(cardService, currencyService),
		CurrencyHandler:     httphandlers.NewCurrencyHandler(currencyService, regions),
		ScanHandler:         httphandlers.NewScanHandler(extractor),
		DeviceHandler:       httphandlers.NewDeviceHandler(notificationService),
		Authenticator:       authenticator,
		CardService:         cardService,
		CurrencyService:     currencyService,
		NotificationService: notificationService,
		closeFuncs:          []func() error{fsClient.Close},
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	for _, fn := range d.closeFuncs {
		if err := fn(); err != nil {
			log.Printf("Error closing dependency: %v", err)
		}
	}
}
