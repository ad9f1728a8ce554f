package card

import (
	"context"
	"errors"
	"time"
)

// Service contains the business logic for card operations.
type Service struct {
	repo Repository
}

// NewService creates a new card service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCard validates and creates a new card record for the user.
// Validation failure rejects the creation outright; no partial record
// is persisted.
func (s *Service) CreateCard(ctx context.Context, userID string, params CreateParams) (*Card, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, params.Normalized())
}

// ListCards returns the user's full card collection.
func (s *Service) ListCards(ctx context.Context, userID string) ([]Card, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetCard retrieves a single card owned by the user.
func (s *Service) GetCard(ctx context.Context, userID, cardID string) (*Card, error) {
	if cardID == "" {
		return nil, errors.New("card ID is required")
	}
	return s.repo.GetByID(ctx, userID, cardID)
}

// DeleteCard permanently removes a card. There is no soft delete and
// no undo.
func (s *Service) DeleteCard(ctx context.Context, userID, cardID string) error {
	if cardID == "" {
		return errors.New("card ID is required")
	}
	return s.repo.Delete(ctx, userID, cardID)
}

// UpdateNotes replaces the card's free-text notes. Notes are the only
// mutable field after creation.
func (s *Service) UpdateNotes(ctx context.Context, userID, cardID, notes string) error {
	if cardID == "" {
		return errors.New("card ID is required")
	}
	return s.repo.UpdateNotes(ctx, userID, cardID, notes)
}

// Summary computes the dashboard totals for the user's collection.
func (s *Service) Summary(ctx context.Context, userID string) (Stats, error) {
	cards, err := s.ListCards(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return Totals(cards), nil
}

// UpcomingCards returns cards due within the rolling window, earliest
// first.
func (s *Service) UpcomingCards(ctx context.Context, userID string, windowDays int) ([]Card, error) {
	cards, err := s.ListCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Upcoming(cards, windowDays, time.Now()), nil
}

// WatchCards subscribes to full snapshot updates for the user.
func (s *Service) WatchCards(ctx context.Context, userID string, fn SnapshotFunc) (StopFunc, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.repo.Watch(ctx, userID, fn)
}
