package services

import (
	"context"
	"encoding/json"

	"github.com/GregMSThompson/buildboard/internal/layout"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/pkg/logger"
)

// localCache is the device-local durable store.
type localCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// settingsStore is the shared key/value settings collection.
type settingsStore interface {
	ListSettings(ctx context.Context, sess models.Session) ([]models.Setting, error)
	PutSetting(ctx context.Context, sess models.Session, key string, value any) error
}

type dashboardService struct {
	cache    localCache
	settings settingsStore
}

func NewDashboardService(cache localCache, settings settingsStore) *dashboardService {
	return &dashboardService{cache: cache, settings: settings}
}

// LoadLayout never fails. A usable local copy wins and the settings store is not asked;
// otherwise the shared setting is used, and anything that goes wrong yields the default layout.
// Nothing is written back on this path.
func (s *dashboardService) LoadLayout(ctx context.Context, sess models.Session) models.DashboardConfig {
	if cfg, ok := s.loadLocal(ctx); ok {
		return cfg
	}
	return s.loadShared(ctx, sess)
}

// SaveLayout stores the normalized layout locally, then in the settings store. Only the settings
// store failure is returned; the local copy is kept either way.
func (s *dashboardService) SaveLayout(ctx context.Context, sess models.Session, cfg models.DashboardConfig) (models.DashboardConfig, error) {
	log := logger.FromContext(ctx)

	normalized := layout.Normalize(&cfg)
	s.saveLocal(ctx, normalized)

	if err := s.settings.PutSetting(ctx, sess, models.DashboardConfigKey, normalized); err != nil {
		log.Error("failed to save dashboard layout", "error", err)
		return normalized, err
	}
	log.Info("dashboard layout saved", "order", normalized.Order, "hidden", normalized.Hidden)
	return normalized, nil
}

// ResetLayout saves the default layout.
func (s *dashboardService) ResetLayout(ctx context.Context, sess models.Session) (models.DashboardConfig, error) {
	return s.SaveLayout(ctx, sess, models.DefaultDashboardConfig())
}

func (s *dashboardService) loadLocal(ctx context.Context) (models.DashboardConfig, bool) {
	log := logger.FromContext(ctx)

	raw, found, err := s.cache.Get(ctx, models.DashboardConfigKey)
	if err != nil {
		log.Warn("local layout unavailable", "error", err)
		return models.DashboardConfig{}, false
	}
	if !found || raw == "" {
		return models.DashboardConfig{}, false
	}
	parsed, err := layout.Parse([]byte(raw))
	if err != nil {
		log.Warn("local layout is corrupt", "error", err)
		return models.DashboardConfig{}, false
	}
	log.Debug("dashboard layout loaded from local cache")
	return layout.Normalize(parsed), true
}

func (s *dashboardService) loadShared(ctx context.Context, sess models.Session) models.DashboardConfig {
	log := logger.FromContext(ctx)

	rows, err := s.settings.ListSettings(ctx, sess)
	if err != nil {
		log.Warn("settings store unavailable, using default layout", "error", err)
		return models.DefaultDashboardConfig()
	}
	for _, row := range rows {
		if row.Key != models.DashboardConfigKey {
			continue
		}
		doc, err := row.Value.Document()
		if err != nil {
			log.Warn("stored layout is empty, using default layout", "error", err)
			return models.DefaultDashboardConfig()
		}
		parsed, err := layout.Parse(doc)
		if err != nil {
			log.Warn("stored layout is corrupt, using default layout", "error", err)
			return models.DefaultDashboardConfig()
		}
		log.Debug("dashboard layout loaded from settings store")
		return layout.Normalize(parsed)
	}
	log.Debug("no stored layout, using default layout")
	return models.DefaultDashboardConfig()
}

func (s *dashboardService) saveLocal(ctx context.Context, cfg models.DashboardConfig) {
	log := logger.FromContext(ctx)

	b, err := json.Marshal(cfg)
	if err != nil {
		log.Warn("failed to encode layout for local cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, models.DashboardConfigKey, string(b)); err != nil {
		log.Warn("failed to write local layout", "error", err)
	}
}
