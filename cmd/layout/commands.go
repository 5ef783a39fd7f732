package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/GregMSThompson/buildboard/internal/layout"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/pkg/logger"
)

const usage = `usage: layout <command> [flags]

commands:
  show                              print the current dashboard layout
  save [-order k1,k2] [-hidden k3]  store a new layout; unmentioned widgets keep default order
  reset                             store the default layout
  keys                              list widget keys in default order
`

type dashboardService interface {
	LoadLayout(ctx context.Context, sess models.Session) models.DashboardConfig
	SaveLayout(ctx context.Context, sess models.Session, cfg models.DashboardConfig) (models.DashboardConfig, error)
	ResetLayout(ctx context.Context, sess models.Session) (models.DashboardConfig, error)
}

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func runCommand(ctx context.Context, svc dashboardService, sess models.Session, args []string, out io.Writer) error {
	if len(args) == 0 {
		return &usageError{msg: "missing command"}
	}

	switch args[0] {
	case "keys":
		for _, k := range layout.Keys() {
			fmt.Fprintln(out, k)
		}
		return nil

	case "show":
		return writeLayout(out, svc.LoadLayout(ctx, sess))

	case "save":
		cfg, err := parseSaveFlags(ctx, args[1:])
		if err != nil {
			return err
		}
		saved, err := svc.SaveLayout(ctx, sess, cfg)
		if err != nil {
			return err
		}
		return writeLayout(out, saved)

	case "reset":
		saved, err := svc.ResetLayout(ctx, sess)
		if err != nil {
			return err
		}
		return writeLayout(out, saved)
	}
	return &usageError{msg: fmt.Sprintf("unknown command %q", args[0])}
}

func parseSaveFlags(ctx context.Context, args []string) (models.DashboardConfig, error) {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	order := fs.String("order", "", "comma separated widget keys, in render order")
	hidden := fs.String("hidden", "", "comma separated widget keys to hide")
	if err := fs.Parse(args); err != nil {
		return models.DashboardConfig{}, &usageError{msg: err.Error()}
	}

	cfg := models.DashboardConfig{
		Order:  splitKeys(*order),
		Hidden: splitKeys(*hidden),
	}
	warnUnknown(ctx, cfg.Order, cfg.Hidden)
	return cfg, nil
}

func splitKeys(s string) []models.WidgetKey {
	var out []models.WidgetKey
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, models.WidgetKey(part))
		}
	}
	return out
}

// warnUnknown surfaces keys the normalizer will drop, since a typo would otherwise vanish silently.
func warnUnknown(ctx context.Context, lists ...[]models.WidgetKey) {
	log := logger.FromContext(ctx)
	for _, list := range lists {
		for _, k := range list {
			if !layout.Known(k) {
				log.Warn("ignoring unknown widget key", "key", k)
			}
		}
	}
}

func writeLayout(out io.Writer, cfg models.DashboardConfig) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
