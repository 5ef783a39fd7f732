// Package layout turns stored or user supplied dashboard layouts into canonical ones.
package layout

import (
	"github.com/GregMSThompson/buildboard/internal/models"
)

var knownKeys = func() map[models.WidgetKey]struct{} {
	m := make(map[models.WidgetKey]struct{}, len(models.DefaultWidgetOrder))
	for _, k := range models.DefaultWidgetOrder {
		m[k] = struct{}{}
	}
	return m
}()

// Known reports whether k is one of the dashboard widgets.
func Known(k models.WidgetKey) bool {
	_, ok := knownKeys[k]
	return ok
}

// Keys returns the widget keys in default order.
func Keys() []models.WidgetKey {
	return models.DefaultDashboardConfig().Order
}

// Normalize never fails. Unknown and repeated keys are dropped, the caller's order is kept,
// and widgets the caller did not mention follow in default order.
func Normalize(in *models.DashboardConfig) models.DashboardConfig {
	if in == nil {
		return models.DefaultDashboardConfig()
	}
	order := StableDedup(in.Order, Known)
	return models.DashboardConfig{
		Order:  CompletePermutation(order, models.DefaultWidgetOrder),
		Hidden: StableDedup(in.Hidden, Known),
	}
}
