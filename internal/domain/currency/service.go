package currency

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Domain errors
var (
	ErrUnknownCurrency  = errors.New("unknown currency code")
	ErrRemoveDefault    = errors.New("USD cannot be removed")
	ErrRemoveSelected   = errors.New("selected currency cannot be removed")
	ErrAlreadyAvailable = errors.New("currency already available")
)

// Preference is a user's currency selection plus the set of codes they
// have enabled. USD is always present.
type Preference struct {
	Selected  string   `json:"selectedCurrency"`
	Available []string `json:"availableCurrencies"`
}

// Repository persists per-user currency preferences in the settings
// partition of the document store.
type Repository interface {
	Get(ctx context.Context, userID string) (*Preference, error)
	Put(ctx context.Context, userID string, pref Preference) error
}

// Service contains the business logic for currency preferences.
type Service struct {
	repo Repository
}

// NewService creates a new currency preference service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Preferences returns the user's stored preference, normalized so the
// default currency is always present and something is always selected.
func (s *Service) Preferences(ctx context.Context, userID string) (*Preference, error) {
	pref, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency preference: %w", err)
	}
	if pref == nil {
		// No stored preference yet: start from the default.
		return &Preference{Selected: DefaultCode, Available: []string{DefaultCode}}, nil
	}
	normalize(pref)
	return pref, nil
}

// Select makes code the active display currency. The code must be
// supported; it is added to the available set if missing.
func (s *Service) Select(ctx context.Context, userID, code string) (*Preference, error) {
	if _, ok := Lookup(code); !ok {
		return nil, ErrUnknownCurrency
	}

	pref, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(pref.Available, code) {
		pref.Available = append(pref.Available, code)
	}
	pref.Selected = code

	if err := s.repo.Put(ctx, userID, *pref); err != nil {
		return nil, err
	}
	return pref, nil
}

// Add enables a currency for the user.
func (s *Service) Add(ctx context.Context, userID, code string) (*Preference, error) {
	if _, ok := Lookup(code); !ok {
		return nil, ErrUnknownCurrency
	}

	pref, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if slices.Contains(pref.Available, code) {
		return nil, ErrAlreadyAvailable
	}
	pref.Available = append(pref.Available, code)

	if err := s.repo.Put(ctx, userID, *pref); err != nil {
		return nil, err
	}
	return pref, nil
}

// Remove disables a currency. USD and the currently selected currency
// are irremovable.
func (s *Service) Remove(ctx context.Context, userID, code string) (*Preference, error) {
	if code == DefaultCode {
		return nil, ErrRemoveDefault
	}

	pref, err := s.Preferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if code == pref.Selected {
		return nil, ErrRemoveSelected
	}

	pref.Available = slices.DeleteFunc(pref.Available, func(c string) bool {
		return c == code
	})

	if err := s.repo.Put(ctx, userID, *pref); err != nil {
		return nil, err
	}
	return pref, nil
}

func normalize(pref *Preference) {
	if !slices.Contains(pref.Available, DefaultCode) {
		pref.Available = append([]string{DefaultCode}, pref.Available...)
	}
	if pref.Selected == "" {
		pref.Selected = DefaultCode
	}
	if !slices.Contains(pref.Available, pref.Selected) {
		pref.Available = append(pref.Available, pref.Selected)
	}
}
