package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/GregMSThompson/buildboard/internal/bootstrap"
	"github.com/GregMSThompson/buildboard/internal/config"
	"github.com/GregMSThompson/buildboard/internal/errs"
	"github.com/GregMSThompson/buildboard/internal/models"
	"github.com/GregMSThompson/buildboard/internal/services"
	"github.com/GregMSThompson/buildboard/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code. Errors are reported on stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// config
	cfg, err := config.New()
	if err != nil {
		return errs.NewErrorHandler(logger.New("info", logger.NewStderrHandler), stderr).HandleError(err)
	}

	// bootstrap
	bs, err := bootstrap.Run(ctx, cfg)
	defer func() {
		if cerr := bs.Close(); cerr != nil {
			bs.Log.Warn("failed to close resources", "error", cerr)
		}
	}()
	if err != nil {
		return errs.NewErrorHandler(bs.Log, stderr).HandleError(err)
	}

	log, ctx := logger.With(logger.ToContext(ctx, bs.Log), "run_id", uuid.NewString())

	// services
	dserv := services.NewDashboardService(bs.Local, bs.Settings)
	sess := models.Session{Token: cfg.AuthToken}

	err = runCommand(ctx, dserv, sess, args, stdout)
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ue.Error())
		fmt.Fprint(stderr, usage)
		return 2
	}
	return errs.NewErrorHandler(log, stderr).HandleError(err)
}
