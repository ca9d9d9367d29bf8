package app

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/insta-profile-sync/internal/committer/committerimpl"
	"github.com/orgball2608/insta-profile-sync/internal/downloader/downloaderimpl"
	"github.com/orgball2608/insta-profile-sync/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-profile-sync/internal/migrations"
	"github.com/orgball2608/insta-profile-sync/internal/ratelimit"
	"github.com/orgball2608/insta-profile-sync/internal/reconciler/reconcilerimpl"
	repositories "github.com/orgball2608/insta-profile-sync/internal/repositories/fx"
	"github.com/orgball2608/insta-profile-sync/internal/roster/rosterimpl"
	"github.com/orgball2608/insta-profile-sync/internal/storage"
	"github.com/orgball2608/insta-profile-sync/internal/syncer/syncerimpl"
	"github.com/orgball2608/insta-profile-sync/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"
	"go.uber.org/fx"
)

// Core is everything a command needs. fx only builds the parts that the
// populated or invoked types depend on.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		clockwork.NewRealClock,
	),
	pgx.Module,
	repositories.Module,
	storage.Module,
	ratelimit.Module,
	instagramimpl.Module,
	telegramimpl.Module,
	reconcilerimpl.Module,
	downloaderimpl.Module,
	committerimpl.Module,
	syncerimpl.Module,
	rosterimpl.Module,
	fx.Invoke(migrate),
)

// Server runs the scheduler and the health endpoint until the app stops.
var Server = fx.Options(
	Core,
	fx.Invoke(registerServer, registerScheduler),
)

func migrate(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrations.Up(ctx, cfg.GetDSN()); err != nil {
				log.Error("Migration failed", "error", err)
				return err
			}
			log.Debug("Database schema is up to date")
			return nil
		},
	})
}
