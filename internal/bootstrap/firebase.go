package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

// InitFirestore opens Firestore through the Firebase app so credentials and project resolution
// follow the Firebase defaults (GOOGLE_APPLICATION_CREDENTIALS, emulator host, ...).
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return app.Firestore(ctx)
}
