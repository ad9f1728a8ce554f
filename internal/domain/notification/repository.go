package notification

import "context"

// Repository persists device tokens and preferences in the document
// store, partitioned per user.
type Repository interface {
	UpsertDeviceToken(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error)
	GetActiveTokens(ctx context.Context, userID string) ([]DeviceToken, error)
	DeactivateToken(ctx context.Context, userID, token string) error

	// ListUserIDsWithTokens returns users with at least one active
	// device, for the scheduled reminder fan-out.
	ListUserIDsWithTokens(ctx context.Context) ([]string, error)

	GetPreference(ctx context.Context, userID string) (*Preference, error)
	PutPreference(ctx context.Context, userID string, pref Preference) error
}
