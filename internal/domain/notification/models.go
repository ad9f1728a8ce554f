package notification

import (
	"errors"
	"time"
)

// Notification categories. Each maps to a client route and a
// preference toggle.
const (
	CategoryDueReminder = "due-reminder"
	CategoryGeneral     = "general"
)

var categories = map[string]struct{}{
	CategoryDueReminder: {},
	CategoryGeneral:     {},
}

// Domain errors
var (
	ErrInvalidCategory = errors.New("invalid notification category")
	ErrInvalidToken    = errors.New("device token is required")
)

// IsValidCategory checks if the provided category is known.
func IsValidCategory(c string) bool {
	_, ok := categories[c]
	return ok
}

// DeviceToken is a registered push-messaging endpoint for one of the
// user's devices.
type DeviceToken struct {
	Token     string    `json:"token" firestore:"token"`
	Platform  string    `json:"platform" firestore:"platform"`
	Active    bool      `json:"active" firestore:"active"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Preference holds a user's per-category notification toggles.
// The zero value enables everything.
type Preference struct {
	DueRemindersDisabled bool `json:"dueRemindersDisabled" firestore:"dueRemindersDisabled"`
	GeneralDisabled      bool `json:"generalDisabled" firestore:"generalDisabled"`
}

// IsCategoryEnabled reports whether the user accepts the category.
func (p Preference) IsCategoryEnabled(category string) bool {
	switch category {
	case CategoryDueReminder:
		return !p.DueRemindersDisabled
	case CategoryGeneral:
		return !p.GeneralDisabled
	default:
		return false
	}
}

// RegisterDeviceParams contains parameters for registering a device.
type RegisterDeviceParams struct {
	UserID   string
	Token    string
	Platform string
}

// Validate validates the registration parameters.
func (p RegisterDeviceParams) Validate() error {
	if p.UserID == "" {
		return errors.New("user ID is required")
	}
	if p.Token == "" {
		return ErrInvalidToken
	}
	return nil
}
