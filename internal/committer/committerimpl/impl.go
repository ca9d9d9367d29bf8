package committerimpl

import (
	"context"
	"fmt"
	"time"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/orgball2608/insta-profile-sync/internal/committer"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/media"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/syncrun"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/target"
	"github.com/orgball2608/insta-profile-sync/internal/storage"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"
	"go.uber.org/fx"
)

type Remover interface {
	Remove(relPath string) error
}

var _ Remover = (*storage.Store)(nil)

type CommitterImpl struct {
	DB          pgx.DB
	TargetRepo  target.Repository
	MediaRepo   media.Repository
	SyncRunRepo syncrun.Repository
	Files       Remover
	Config      *config.Config
	Logger      logger.Logger
}

type Opts struct {
	fx.In

	DB          pgx.DB
	TargetRepo  target.Repository
	MediaRepo   media.Repository
	SyncRunRepo syncrun.Repository
	Store       *storage.Store
	Config      *config.Config
	Logger      logger.Logger
}

func New(opts Opts) *CommitterImpl {
	return &CommitterImpl{
		DB:          opts.DB,
		TargetRepo:  opts.TargetRepo,
		MediaRepo:   opts.MediaRepo,
		SyncRunRepo: opts.SyncRunRepo,
		Files:       opts.Store,
		Config:      opts.Config,
		Logger:      opts.Logger.WithComponent("Committer"),
	}
}

var _ committer.Committer = (*CommitterImpl)(nil)

// writeContext detaches from the caller so an interrupt that stops the
// downloads still lets the already fetched prefix be recorded.
func (c *CommitterImpl) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.Config.Sync.CommitTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

func (c *CommitterImpl) Commit(ctx context.Context, result domain.SyncResult) error {
	username := result.Target.Username
	ctx, cancel := c.writeContext(ctx)
	defer cancel()

	var checkpoint domain.Checkpoint
	inserted := 0

	err := pgx.WithTx(ctx, c.DB, func(tx pgxv5.Tx) error {
		targets := c.TargetRepo.WithTx(tx)
		mediaRepo := c.MediaRepo.WithTx(tx)
		runs := c.SyncRunRepo.WithTx(tx)

		current, err := targets.GetForUpdate(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to lock target %s: %w", username, err)
		}

		for _, item := range result.Committed {
			created, err := mediaRepo.Create(ctx, item)
			if err != nil {
				return err
			}
			if created {
				inserted++
			}
		}

		checkpoint = current.LastCheckpoint.Advance(result.CommittedPositions(), result.PassComplete)

		syncedAt := result.Run.StartedAt
		if result.Run.FinishedAt != nil {
			syncedAt = *result.Run.FinishedAt
		}
		if err := targets.UpdateSyncState(ctx, target.SyncState{
			Username:   username,
			Checkpoint: checkpoint,
			SyncedAt:   syncedAt,
			Profile:    result.Profile,
		}); err != nil {
			return err
		}

		return runs.Create(ctx, result.Run)
	})
	if err != nil {
		c.removeFiles(ctx, username, result.Committed)
		return errors.Classify(fmt.Errorf("failed to commit sync of %s: %w", username, err), errors.KindStorage)
	}

	c.Logger.Info("Committed sync",
		"username", username,
		"items", inserted,
		"outcome", result.Run.Outcome,
		"floor", checkpoint.Floor.RemoteID,
		"resume", checkpoint.Resume.RemoteID,
	)
	return nil
}

func (c *CommitterImpl) RecordRun(ctx context.Context, run domain.SyncRun) error {
	ctx, cancel := c.writeContext(ctx)
	defer cancel()

	if err := c.SyncRunRepo.Create(ctx, run); err != nil {
		return errors.Classify(fmt.Errorf("failed to record run of %s: %w", run.TargetUsername, err), errors.KindStorage)
	}
	return nil
}

// removeFiles deletes the files of a rolled back commit. Paths are derived
// from the remote id, so a file whose item is already recorded belongs to
// that row and stays.
func (c *CommitterImpl) removeFiles(ctx context.Context, username string, items []domain.MediaItem) {
	known, err := c.MediaRepo.KnownIDs(ctx, username)
	if err != nil {
		c.Logger.Error("Failed to load recorded media after rollback, keeping files",
			"username", username,
			"files", len(items),
			"error", err,
		)
		return
	}

	for _, item := range items {
		if item.LocalPath == "" {
			continue
		}
		if _, ok := known[item.RemoteID]; ok {
			continue
		}
		if err := c.Files.Remove(item.LocalPath); err != nil {
			c.Logger.Error("Failed to remove file after rollback", "path", item.LocalPath, "error", err)
		}
	}
}
