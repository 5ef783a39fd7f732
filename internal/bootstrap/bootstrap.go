package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"

	settingsclient "github.com/GregMSThompson/buildboard/internal/client/settings"
	"github.com/GregMSThompson/buildboard/internal/config"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/internal/store"
	"github.com/GregMSThompson/buildboard/pkg/logger"
)

// SettingsStore is satisfied by both the REST adapter and the Firestore store.
type SettingsStore interface {
	ListSettings(ctx context.Context, sess models.Session) ([]models.Setting, error)
	PutSetting(ctx context.Context, sess models.Session, key string, value any) error
}

// LocalCache is the device-local store.
type LocalCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

type Bootstrap struct {
	Log       *slog.Logger
	Local     LocalCache
	Settings  SettingsStore
	Firestore *firestore.Client
}

// Run never returns a nil Bootstrap, so callers can log through bs.Log on error.
func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewStderrHandler)

	// a cache that cannot be opened (locked by another run, unwritable path) only disables
	// local storage; layouts still load from and save to the settings store
	local, err := store.OpenLocalStore(cfg.CachePath)
	if err != nil {
		bs.Log.Warn("local cache unavailable, continuing without it", "path", cfg.CachePath, "error", err)
		bs.Local = store.NewUnavailableStore(err)
	} else {
		bs.Local = local
	}

	switch cfg.SettingsBackend {
	case config.SettingsBackendFirestore:
		bs.Firestore, err = InitFirestore(ctx, cfg.ProjectID)
		if err != nil {
			if cerr := bs.Local.Close(); cerr != nil {
				bs.Log.Warn("failed to close local cache", "error", cerr)
			}
			bs.Local = nil
			return bs, err
		}
		bs.Settings = store.NewSettingsStore(bs.Firestore)
	default:
		bs.Settings = settingsclient.NewAdapter(cfg.APIURL, cfg.APIPrefix, cfg.HTTPTimeout)
	}

	return bs, nil
}

func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Local != nil {
		errList = append(errList, bs.Local.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	return errors.Join(errList...)
}
