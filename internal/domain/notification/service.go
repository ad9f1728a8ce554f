package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Service contains the business logic for push notification operations
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service. A nil messenger
// disables delivery; registration and preferences still work.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user.
// Re-registering an existing token refreshes it.
func (s *Service) RegisterDevice(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.UpsertDeviceToken(ctx, params)
}

// UnregisterDevice marks a device token inactive so the scheduled
// reminder run stops targeting it.
func (s *Service) UnregisterDevice(ctx context.Context, userID, token string) error {
	if userID == "" {
		return errors.New("user ID is required")
	}
	if token == "" {
		return ErrInvalidToken
	}

	return s.repo.DeactivateToken(ctx, userID, token)
}

// GetPreference returns the notification preference for a user.
// Returns the default (all-enabled) preference if none has been saved.
func (s *Service) GetPreference(ctx context.Context, userID string) (Preference, error) {
	if userID == "" {
		return Preference{}, errors.New("user ID is required")
	}

	pref, err := s.repo.GetPreference(ctx, userID)
	if err != nil || pref == nil {
		return Preference{}, nil
	}

	return *pref, nil
}

// UpdatePreference replaces the notification preference for a user
func (s *Service) UpdatePreference(ctx context.Context, userID string, pref Preference) error {
	if userID == "" {
		return errors.New("user ID is required")
	}

	return s.repo.PutPreference(ctx, userID, pref)
}

// SendToUser sends a push notification to all of a user's active
// devices in one multicast. Respects the user's category preference;
// tokens the provider rejects are deactivated by the messenger so
// they are not retried.
func (s *Service) SendToUser(ctx context.Context, userID, category, title, body string) error {
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}

	pref, err := s.GetPreference(ctx, userID)
	if err != nil {
		return err
	}
	if !pref.IsCategoryEnabled(category) {
		log.Printf("Notification skipped for user %s: category %q disabled", userID, category)
		return nil
	}

	tokens, err := s.repo.GetActiveTokens(ctx, userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.Printf("No active device tokens for user %s", userID)
		return nil
	}

	if s.messenger == nil {
		return nil
	}

	targets := make([]string, 0, len(tokens))
	for _, t := range tokens {
		targets = append(targets, t.Token)
	}

	data := map[string]string{"route": category}
	if err := s.messenger.SendMulticast(ctx, targets, title, body, data); err != nil {
		return fmt.Errorf("failed to deliver notification to user %s: %w", userID, err)
	}

	return nil
}

// ListUserIDs returns users with at least one active device, for the
// scheduled reminder fan-out.
func (s *Service) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListUserIDsWithTokens(ctx)
}
