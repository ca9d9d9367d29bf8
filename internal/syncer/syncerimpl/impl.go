package syncerimpl

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/insta-profile-sync/internal/committer"
	"github.com/orgball2608/insta-profile-sync/internal/downloader"
	"github.com/orgball2608/insta-profile-sync/internal/ratelimit"
	"github.com/orgball2608/insta-profile-sync/internal/reconciler"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/media"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/target"
	"github.com/orgball2608/insta-profile-sync/internal/storage"
	"github.com/orgball2608/insta-profile-sync/internal/syncer"
	"github.com/orgball2608/insta-profile-sync/internal/telegram"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"go.uber.org/fx"
)

// Files is the part of the storage layer the syncer needs.
type Files interface {
	SweepTemp(username string) (int, error)
	Remove(relPath string) error
}

var _ Files = (*storage.Store)(nil)

type SyncerImpl struct {
	TargetRepo target.Repository
	MediaRepo  media.Repository
	Reconciler reconciler.Reconciler
	Downloader downloader.Downloader
	Committer  committer.Committer
	Files      Files
	Limiter    ratelimit.Limiter
	Notifier   telegram.Notifier
	Clock      clockwork.Clock
	Config     *config.Config
	Logger     logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Opts struct {
	fx.In

	TargetRepo target.Repository
	MediaRepo  media.Repository
	Reconciler reconciler.Reconciler
	Downloader downloader.Downloader
	Committer  committer.Committer
	Store      *storage.Store
	Limiter    ratelimit.Limiter
	Notifier   telegram.Notifier
	Clock      clockwork.Clock
	Config     *config.Config
	Logger     logger.Logger
}

func New(opts Opts) *SyncerImpl {
	return &SyncerImpl{
		TargetRepo: opts.TargetRepo,
		MediaRepo:  opts.MediaRepo,
		Reconciler: opts.Reconciler,
		Downloader: opts.Downloader,
		Committer:  opts.Committer,
		Files:      opts.Store,
		Limiter:    opts.Limiter,
		Notifier:   opts.Notifier,
		Clock:      opts.Clock,
		Config:     opts.Config,
		Logger:     opts.Logger.WithComponent("Syncer"),
		locks:      make(map[string]*sync.Mutex),
	}
}

var _ syncer.Syncer = (*SyncerImpl)(nil)

// lock serializes work on one target, so two runs never advance the same
// checkpoint concurrently.
func (s *SyncerImpl) lock(username string) func() {
	s.mu.Lock()
	l, ok := s.locks[username]
	if !ok {
		l = &sync.Mutex{}
		s.locks[username] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
