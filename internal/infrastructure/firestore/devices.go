package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"settleup/internal/domain/notification"
)

const (
	collDeviceTokens = "deviceTokens"
	docNotifications = "notifications"
)

// DeviceRepository implements notification.Repository. Tokens are
// keyed by their value so re-registration is an upsert.
type DeviceRepository struct {
	client *firestore.Client
}

func NewDeviceRepository(client *firestore.Client) *DeviceRepository {
	return &DeviceRepository{client: client}
}

func (r *DeviceRepository) tokens(userID string) *firestore.CollectionRef {
	return r.client.Collection(collUsers).Doc(userID).Collection(collDeviceTokens)
}

func (r *DeviceRepository) UpsertDeviceToken(ctx context.Context, params notification.RegisterDeviceParams) (*notification.DeviceToken, error) {
	token := notification.DeviceToken{
		Token:    params.Token,
		Platform: params.Platform,
		Active:   true,
	}

	if _, err := r.tokens(params.UserID).Doc(params.Token).Set(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store device token: %w", err)
	}
	return &token, nil
}

func (r *DeviceRepository) GetActiveTokens(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	iter := r.tokens(userID).Where("active", "==", true).Documents(ctx)
	defer iter.Stop()

	var tokens []notification.DeviceToken
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list device tokens: %w", err)
		}

		var t notification.DeviceToken
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode device token %s: %w", doc.Ref.ID, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (r *DeviceRepository) DeactivateToken(ctx context.Context, userID, token string) error {
	_, err := r.tokens(userID).Doc(token).Update(ctx, []firestore.Update{
		{Path: "active", Value: false},
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}
	return nil
}

// ListUserIDsWithTokens scans the device token collection group and
// returns the distinct owners of active tokens.
func (r *DeviceRepository) ListUserIDsWithTokens(ctx context.Context) ([]string, error) {
	iter := r.client.CollectionGroup(collDeviceTokens).Where("active", "==", true).Documents(ctx)
	defer iter.Stop()

	seen := map[string]struct{}{}
	var userIDs []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan device tokens: %w", err)
		}

		// users/{uid}/deviceTokens/{token}
		userRef := doc.Ref.Parent.Parent
		if userRef == nil {
			continue
		}
		if _, ok := seen[userRef.ID]; ok {
			continue
		}
		seen[userRef.ID] = struct{}{}
		userIDs = append(userIDs, userRef.ID)
	}
	return userIDs, nil
}

// DeactivateByToken deactivates a token without knowing its owner.
// Used when the push provider reports a token as dead outside a
// per-user flow. Tokens are keyed by value, so the collection group
// holds at most a handful of matches.
func (r *DeviceRepository) DeactivateByToken(ctx context.Context, token string) error {
	iter := r.client.CollectionGroup(collDeviceTokens).Where("token", "==", token).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to look up device token: %w", err)
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "active", Value: false},
		}); err != nil && status.Code(err) != codes.NotFound {
			return fmt.Errorf("failed to deactivate device token: %w", err)
		}
	}
	return nil
}

func (r *DeviceRepository) notificationsDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(collUsers).Doc(userID).Collection(collSettings).Doc(docNotifications)
}

func (r *DeviceRepository) GetPreference(ctx context.Context, userID string) (*notification.Preference, error) {
	doc, err := r.notificationsDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification preference: %w", err)
	}

	var pref notification.Preference
	if err := doc.DataTo(&pref); err != nil {
		return nil, fmt.Errorf("failed to decode notification preference: %w", err)
	}
	return &pref, nil
}

func (r *DeviceRepository) PutPreference(ctx context.Context, userID string, pref notification.Preference) error {
	if _, err := r.notificationsDoc(userID).Set(ctx, pref); err != nil {
		return fmt.Errorf("failed to store notification preference: %w", err)
	}
	return nil
}
