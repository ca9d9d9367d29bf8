package downloaderimpl

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/downloader"
	"github.com/orgball2608/insta-profile-sync/internal/instagram"
	"github.com/orgball2608/insta-profile-sync/internal/ratelimit"
	"github.com/orgball2608/insta-profile-sync/internal/storage"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/orgball2608/insta-profile-sync/pkg/retry"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

// Store is the part of the storage layer the downloader needs.
type Store interface {
	Stage(ctx context.Context, username string, media domain.RemoteMedia, r io.Reader, expected int64) (*storage.Staged, error)
	Promote(staged *storage.Staged) error
	Discard(staged *storage.Staged)
}

var _ Store = (*storage.Store)(nil)

// DownloaderImpl runs every plan of an invocation on one shared ants pool,
// so Sync.Concurrency bounds the in-flight downloads across all targets.
type DownloaderImpl struct {
	Instagram instagram.Client
	Store     Store
	Limiter   ratelimit.Limiter
	Clock     clockwork.Clock
	Config    *config.Config
	Logger    logger.Logger

	pool *ants.Pool
}

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Instagram instagram.Client
	Store     *storage.Store
	Limiter   ratelimit.Limiter
	Clock     clockwork.Clock
	Config    *config.Config
	Logger    logger.Logger
}

func New(opts Opts) (*DownloaderImpl, error) {
	d, err := NewDownloader(opts.Instagram, opts.Store, opts.Limiter, opts.Clock, opts.Config, opts.Logger)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			d.Release()
			return nil
		},
	})
	return d, nil
}

func NewDownloader(
	client instagram.Client,
	store Store,
	limiter ratelimit.Limiter,
	clock clockwork.Clock,
	cfg *config.Config,
	log logger.Logger,
) (*DownloaderImpl, error) {
	pool, err := ants.NewPool(cfg.Sync.Concurrency, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create download pool: %w", err)
	}

	return &DownloaderImpl{
		Instagram: client,
		Store:     store,
		Limiter:   limiter,
		Clock:     clock,
		Config:    cfg,
		Logger:    log.WithComponent("Downloader"),
		pool:      pool,
	}, nil
}

func (d *DownloaderImpl) Release() {
	d.pool.Release()
}

var _ downloader.Downloader = (*DownloaderImpl)(nil)

type outcome struct {
	staged *storage.Staged
	err    error
}

// execution tracks the stop position of one plan. Items after the stop
// index are skipped or canceled; items before it run to completion.
type execution struct {
	mu      sync.Mutex
	stopAt  int
	cancels []context.CancelFunc
}

func newExecution(n int) *execution {
	return &execution{stopAt: n, cancels: make([]context.CancelFunc, n)}
}

func (e *execution) start(ctx context.Context, idx int) (context.Context, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx > e.stopAt {
		return nil, false
	}
	itemCtx, cancel := context.WithCancel(ctx)
	e.cancels[idx] = cancel
	return itemCtx, true
}

func (e *execution) finish(idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cancel := e.cancels[idx]; cancel != nil {
		cancel()
		e.cancels[idx] = nil
	}
}

func (e *execution) stop(idx int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx >= e.stopAt {
		return
	}
	e.stopAt = idx
	for j := idx + 1; j < len(e.cancels); j++ {
		if cancel := e.cancels[j]; cancel != nil {
			cancel()
			e.cancels[j] = nil
		}
	}
}

// Execute downloads the plan items concurrently and hands back results in
// plan order. The first failure other than a gone item stops the plan: no
// later item is attempted and nothing after it is kept. A gone post does
// not stop the plan but leaves it unprocessed, so the checkpoint floor
// never moves past it.
func (d *DownloaderImpl) Execute(ctx context.Context, plan *domain.Plan) (*downloader.Result, error) {
	username := plan.Target.Username
	log := d.Logger.With("username", username)
	items := plan.Items

	result := &downloader.Result{}
	if len(items) == 0 {
		result.Processed = true
		return result, nil
	}

	exec := newExecution(len(items))
	results := make([]chan outcome, len(items))
	for i := range results {
		results[i] = make(chan outcome, 1)
	}

	go func() {
		for i := range items {
			idx := i
			err := d.pool.Submit(func() {
				results[idx] <- d.work(ctx, exec, username, idx, items[idx])
			})
			if err != nil {
				results[idx] <- outcome{err: fmt.Errorf("failed to submit download: %w", err)}
			}
		}
	}()

	stopped, gap := false, false
	for i, item := range items {
		res := <-results[i]

		if stopped {
			d.Store.Discard(res.staged)
			continue
		}

		if res.err == nil {
			if err := d.Store.Promote(res.staged); err != nil {
				d.Store.Discard(res.staged)
				res.err = err
			} else {
				result.Items = append(result.Items, domain.MediaItem{
					TargetUsername: username,
					RemoteID:       item.RemoteID,
					Kind:           item.Kind,
					Source:         item.Source,
					CapturedAt:     item.CapturedAt,
					LocalPath:      res.staged.RelPath,
					SizeBytes:      res.staged.Size,
					DownloadedAt:   d.Clock.Now().UTC(),
				})
				if !gap {
					result.Contiguous = len(result.Items)
				}
				continue
			}
		}

		if errors.IsNotFound(res.err) {
			result.Failed++
			if item.Source.Ordered() {
				gap = true
			}
			log.Warn("Media is gone, skipping", "remote_id", item.RemoteID, "error", res.err)
			continue
		}

		stopped = true
		exec.stop(i)
		result.Err = res.err

		switch errors.KindOf(res.err) {
		case errors.KindRateLimited:
			d.Limiter.Throttle()
			log.Warn("Rate limited, deferring the rest of the plan", "remote_id", item.RemoteID, "remaining", len(items)-i)
		case errors.KindCanceled:
			log.Info("Sync canceled", "remaining", len(items)-i)
		default:
			result.Failed++
			log.Error("Download failed, stopping plan", "remote_id", item.RemoteID, "error", res.err)
		}
	}

	result.Processed = !stopped && !gap
	return result, nil
}

func (d *DownloaderImpl) work(ctx context.Context, exec *execution, username string, idx int, item domain.RemoteMedia) outcome {
	itemCtx, ok := exec.start(ctx, idx)
	if !ok {
		return outcome{err: context.Canceled}
	}
	defer exec.finish(idx)

	staged, err := d.fetch(itemCtx, username, item)
	if err != nil && !errors.IsNotFound(err) {
		// Later items must not run once this one is known to block the plan.
		exec.stop(idx)
	}
	return outcome{staged: staged, err: err}
}

func (d *DownloaderImpl) fetch(ctx context.Context, username string, item domain.RemoteMedia) (*storage.Staged, error) {
	var staged *storage.Staged

	err := retry.Do(ctx, d.Logger, "download "+item.RemoteID, func() error {
		if err := d.Limiter.Wait(ctx); err != nil {
			return err
		}

		attemptCtx, cancel := d.attemptContext(ctx)
		defer cancel()

		body, size, err := d.Instagram.Download(attemptCtx, item)
		if err != nil {
			return err
		}
		defer body.Close()

		staged, err = d.Store.Stage(attemptCtx, username, item, body, size)
		return err
	}, retry.FromConfig(d.Config))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return staged, nil
}

func (d *DownloaderImpl) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.Config.Sync.ItemTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.Config.Sync.ItemTimeout)
}
