package store

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/buildboard/internal/errs"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/pkg/logger"
)

const settingsCollection = "settings"

// settingsStore keeps the shared key/value settings in Firestore, one document per key.
type settingsStore struct {
	client *firestore.Client
}

func NewSettingsStore(client *firestore.Client) *settingsStore {
	return &settingsStore{client: client}
}

func (s *settingsStore) collection() *firestore.CollectionRef {
	return s.client.Collection(settingsCollection)
}

// ListSettings returns every stored setting. The session is not used: access is governed by the
// service account the client was created with.
func (s *settingsStore) ListSettings(ctx context.Context, _ models.Session) ([]models.Setting, error) {
	docs, err := s.collection().Documents(ctx).GetAll()
	if err != nil {
		return nil, firestoreError("read", "failed to list settings", err)
	}
	out := make([]models.Setting, 0, len(docs))
	for _, d := range docs {
		var doc models.SettingDoc
		if err := d.DataTo(&doc); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse setting data", err)
		}
		if doc.Key == "" {
			doc.Key = d.Ref.ID
		}
		out = append(out, models.Setting{Key: doc.Key, Value: models.TextValue(doc.Value)})
	}
	return out, nil
}

// PutSetting upserts key with value encoded as JSON text.
func (s *settingsStore) PutSetting(ctx context.Context, _ models.Session, key string, value any) error {
	if key == "" {
		return errs.NewValidationError("setting key is required")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return errs.NewValidationError("setting value is not JSON encodable: " + err.Error())
	}
	doc := models.SettingDoc{
		Key:       key,
		Value:     string(payload),
		UpdatedAt: time.Now(),
	}
	if _, err := s.collection().Doc(key).Set(ctx, doc); err != nil {
		return firestoreError("update", "failed to save setting", err)
	}
	logger.FromContext(ctx).Debug("setting saved", "key", key)
	return nil
}

func firestoreError(op, message string, err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return errs.NewExternalServiceError("firestore", message, true, err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return errs.NewExternalServiceError("firestore", message, false, err)
	}
	return errs.NewDatabaseError(op, message, err)
}
