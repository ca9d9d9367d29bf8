package rosterimpl

import (
	"github.com/orgball2608/insta-profile-sync/internal/repositories/media"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/syncrun"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/target"
	"github.com/orgball2608/insta-profile-sync/internal/roster"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	TargetRepo  target.Repository
	MediaRepo   media.Repository
	SyncRunRepo syncrun.Repository
	Logger      logger.Logger
}

type RosterImpl struct {
	TargetRepo  target.Repository
	MediaRepo   media.Repository
	SyncRunRepo syncrun.Repository
	Logger      logger.Logger
}

func New(opts Opts) *RosterImpl {
	return &RosterImpl{
		TargetRepo:  opts.TargetRepo,
		MediaRepo:   opts.MediaRepo,
		SyncRunRepo: opts.SyncRunRepo,
		Logger:      opts.Logger.WithComponent("Roster"),
	}
}

var _ roster.Roster = (*RosterImpl)(nil)
