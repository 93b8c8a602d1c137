package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// App is the process-wide Firebase handle. It is constructed once at startup
// and injected into every component that talks to the platform.
type App struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client

	app *fb.App
}

// New initializes the Firebase app and the Firestore, Auth and Messaging clients.
func New(ctx context.Context, projectID, credentialsFile string) (*App, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *fb.Config
	if projectID != "" {
		cfg = &fb.Config{ProjectID: projectID}
	}

	app, err := fb.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &App{
		Firestore: fsClient,
		Auth:      authClient,
		Messaging: messagingClient,
		app:       app,
	}, nil
}

// Close releases the Firestore connection.
func (a *App) Close() error {
	return a.Firestore.Close()
}
