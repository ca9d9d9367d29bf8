package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/insta-profile-sync/internal/app"
	"github.com/orgball2608/insta-profile-sync/internal/roster"
	"github.com/orgball2608/insta-profile-sync/internal/syncer"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"go.uber.org/fx"
)

// Runner starts just enough of the application for one command.
type Runner interface {
	WithRoster(ctx context.Context, fn func(roster.Roster) error) error
	WithSyncer(ctx context.Context, fn func(syncer.Syncer) error) error
	Serve(ctx context.Context) error
}

type fxRunner struct{}

func (fxRunner) WithRoster(ctx context.Context, fn func(roster.Roster) error) error {
	var r roster.Roster
	return runApp(ctx, fx.Populate(&r), func() error { return fn(r) })
}

func (fxRunner) WithSyncer(ctx context.Context, fn func(syncer.Syncer) error) error {
	var s syncer.Syncer
	return runApp(ctx, fx.Populate(&s), func() error { return fn(s) })
}

func runApp(ctx context.Context, populate fx.Option, fn func() error) (err error) {
	a := fx.New(
		fx.NopLogger,
		app.Core,
		populate,
	)
	if err := a.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() {
		if stopErr := a.Stop(context.WithoutCancel(ctx)); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	return fn()
}

func (fxRunner) Serve(ctx context.Context) error {
	log := logger.New(logger.Opts{})

	a := fx.New(
		fx.Logger(log),
		app.Server,
	)

	if err := a.Start(ctx); err != nil {
		log.Error("Failed to start application", "error", err)
		return err
	}

	<-ctx.Done()

	if err := a.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		return err
	}
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], fxRunner{}, os.Stdout, os.Stderr)
}
