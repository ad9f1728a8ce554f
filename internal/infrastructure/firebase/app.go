package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"settleup/internal/shared/config"
)

// App wraps the Firebase SDK clients the service depends on: identity
// verification, Firestore and Cloud Messaging.
type App struct {
	app *firebase.App
}

// NewApp initializes the Firebase app. With no credentials file the
// SDK falls back to application default credentials.
func NewApp(ctx context.Context, cfg config.FirebaseConfig) (*App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	return &App{app: app}, nil
}

// Firestore returns a Firestore client bound to the app's project.
func (a *App) Firestore(ctx context.Context) (*firestore.Client, error) {
	client, err := a.app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}
	return client, nil
}

// Auth returns an Authenticator for verifying ID tokens.
func (a *App) Auth(ctx context.Context) (*Authenticator, error) {
	client, err := a.app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &Authenticator{client: client}, nil
}

// Messaging returns an FCM messenger. deactivator may be nil.
func (a *App) Messaging(ctx context.Context, deactivator TokenDeactivator) (*Messenger, error) {
	client, err := a.app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}
	return &Messenger{msgClient: client, deactivator: deactivator}, nil
}

// Authenticator verifies Firebase ID tokens.
type Authenticator struct {
	client *auth.Client
}

// VerifyIDToken validates the token signature and expiry and returns
// the Firebase UID it belongs to.
func (a *Authenticator) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("invalid ID token: %w", err)
	}
	return token.UID, nil
}
