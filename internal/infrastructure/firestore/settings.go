package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"settleup/internal/domain/currency"
)

const (
	collSettings = "settings"
	docCurrency  = "currency"
)

// SettingsRepository implements currency.Repository. Preferences live
// in a fixed document under the user's settings subcollection.
type SettingsRepository struct {
	client *firestore.Client
}

func NewSettingsRepository(client *firestore.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) currencyDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(collUsers).Doc(userID).Collection(collSettings).Doc(docCurrency)
}

func (r *SettingsRepository) Get(ctx context.Context, userID string) (*currency.Preference, error) {
	doc, err := r.currencyDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get currency preference: %w", err)
	}

	var pref currency.Preference
	if err := doc.DataTo(&pref); err != nil {
		return nil, fmt.Errorf("failed to decode currency preference: %w", err)
	}
	return &pref, nil
}

func (r *SettingsRepository) Put(ctx context.Context, userID string, pref currency.Preference) error {
	if _, err := r.currencyDoc(userID).Set(ctx, pref); err != nil {
		return fmt.Errorf("failed to store currency preference: %w", err)
	}
	return nil
}
