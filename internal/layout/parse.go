package layout

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/GregMSThompson/buildboard/internal/models"
)

// Parse decodes JSON text into a layout without judging its contents. Only invalid JSON is an
// error: a non-object document yields an empty layout, a field that is not an array is ignored,
// and array elements that are not strings are skipped.
func Parse(data []byte) (*models.DashboardConfig, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("dashboard config is not valid JSON")
	}
	cfg := &models.DashboardConfig{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return cfg, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode dashboard config: %w", err)
	}
	cfg.Order = keyList(fields["order"])
	cfg.Hidden = keyList(fields["hidden"])
	return cfg, nil
}

func keyList(raw json.RawMessage) []models.WidgetKey {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]models.WidgetKey, 0, len(items))
	for _, it := range items {
		if len(it) == 0 || it[0] != '"' {
			continue
		}
		var s string
		if err := json.Unmarshal(it, &s); err != nil {
			continue
		}
		out = append(out, models.WidgetKey(s))
	}
	return out
}
