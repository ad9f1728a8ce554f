package notification

import "context"

// Messenger delivers a push notification to a set of device tokens in
// one multicast. Implemented by the Firebase FCM client in the
// infrastructure layer; nil disables delivery. The implementation is
// responsible for deactivating tokens the provider rejects.
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}
