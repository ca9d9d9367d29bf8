package reconcilerimpl

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/instagram"
	"github.com/orgball2608/insta-profile-sync/internal/ratelimit"
	"github.com/orgball2608/insta-profile-sync/internal/reconciler"
	"github.com/orgball2608/insta-profile-sync/internal/repositories/media"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/orgball2608/insta-profile-sync/pkg/retry"
	"go.uber.org/fx"
)

type ReconcilerImpl struct {
	Instagram instagram.Client
	MediaRepo media.Repository
	Limiter   ratelimit.Limiter
	Clock     clockwork.Clock
	Config    *config.Config
	Logger    logger.Logger
}

type Opts struct {
	fx.In

	Instagram instagram.Client
	MediaRepo media.Repository
	Limiter   ratelimit.Limiter
	Clock     clockwork.Clock
	Config    *config.Config
	Logger    logger.Logger
}

func New(opts Opts) *ReconcilerImpl {
	return &ReconcilerImpl{
		Instagram: opts.Instagram,
		MediaRepo: opts.MediaRepo,
		Limiter:   opts.Limiter,
		Clock:     opts.Clock,
		Config:    opts.Config,
		Logger:    opts.Logger.WithComponent("Reconciler"),
	}
}

var _ reconciler.Reconciler = (*ReconcilerImpl)(nil)

func (r *ReconcilerImpl) Plan(ctx context.Context, target domain.Target) (*domain.Plan, error) {
	log := r.Logger.With("username", target.Username)

	profile, err := r.fetchProfile(ctx, target.Username)
	if err != nil {
		return nil, err
	}

	known, err := r.MediaRepo.KnownIDs(ctx, target.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load known media for %s: %w", target.Username, err)
	}

	c := &collector{
		known: known,
		seen:  make(map[string]struct{}),
		limit: r.Config.Sync.MaxItemsPerRun,
	}

	if pic, ok := profile.Picture(r.Clock.Now()); ok {
		c.add(pic)
	}

	// The profile picture stays visible when the media is not.
	if !profile.Accessible() {
		plan := &domain.Plan{
			Target:  target,
			Profile: profile,
			Items:   c.items,
			Denied: errors.Classify(
				fmt.Errorf("profile %s is %s and the session has no access", target.Username, profile.Visibility()),
				errors.KindUnauthorized,
			),
		}
		log.Warn("Profile media not accessible", "visibility", profile.Visibility(), "planned", len(plan.Items))
		return plan, nil
	}
	if profile.Visibility() != target.Visibility {
		log.Info("Remote visibility changed", "stored", target.Visibility, "remote", profile.Visibility())
	}

	if err := r.collect(ctx, target, domain.SourcePosts, c); err != nil {
		return nil, err
	}
	if r.Config.Sync.Stories && !c.full() {
		if err := r.collect(ctx, target, domain.SourceStories, c); err != nil {
			return nil, err
		}
	}
	if r.Config.Sync.Highlights && !c.full() {
		if err := r.collect(ctx, target, domain.SourceHighlights, c); err != nil {
			return nil, err
		}
	}

	domain.SortNewestFirst(c.items)

	plan := &domain.Plan{
		Target:   target,
		Profile:  profile,
		Items:    c.items,
		Complete: !c.truncated,
	}

	log.Info("Planned sync",
		"planned", len(plan.Items),
		"complete", plan.Complete,
		"known", len(known),
		"floor", target.LastCheckpoint.Floor.RemoteID,
	)
	return plan, nil
}

func (r *ReconcilerImpl) fetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	var profile *domain.Profile
	err := retry.Do(ctx, r.Logger, "fetch profile "+username, func() error {
		if err := r.Limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		profile, err = r.Instagram.Profile(ctx, username)
		return err
	}, retry.FromConfig(r.Config))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", username, err)
	}
	return profile, nil
}

// pinnedSlots is how many posts a profile can pin to the head of its feed.
// Pinned posts come first whatever their age.
const pinnedSlots = 3

// collect pages through one source. The post feed is newest-first apart
// from pinned posts, so paging stops once more posts in a row than could be
// pinned lie below the checkpoint floor.
func (r *ReconcilerImpl) collect(ctx context.Context, target domain.Target, source domain.Source, c *collector) error {
	var it instagram.MediaIterator
	err := retry.Do(ctx, r.Logger, fmt.Sprintf("list %s of %s", source, target.Username), func() error {
		if err := r.Limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		it, err = r.Instagram.Media(ctx, target.Username, source)
		return err
	}, retry.FromConfig(r.Config))
	if err != nil {
		return fmt.Errorf("failed to list %s of %s: %w", source, target.Username, err)
	}

	covered := 0
	for {
		var page []domain.RemoteMedia
		err := retry.Do(ctx, r.Logger, fmt.Sprintf("page %s of %s", source, target.Username), func() error {
			if err := r.Limiter.Wait(ctx); err != nil {
				return err
			}
			var err error
			page, err = it.Next(ctx)
			return err
		}, retry.FromConfig(r.Config))
		if stderrors.Is(err, instagram.ErrExhausted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list %s of %s: %w", source, target.Username, err)
		}

		for _, item := range page {
			if source.Ordered() && target.LastCheckpoint.Covers(item.Position()) {
				covered++
				if covered > pinnedSlots {
					return nil
				}
				continue
			}
			covered = 0
			if !c.add(item) {
				return nil
			}
		}
	}
}

type collector struct {
	known     map[string]struct{}
	seen      map[string]struct{}
	items     []domain.RemoteMedia
	limit     int
	truncated bool
}

func (c *collector) full() bool {
	return c.limit > 0 && len(c.items) >= c.limit
}

// add records item unless it is already known. It returns false once the
// per-run cap is hit.
func (c *collector) add(item domain.RemoteMedia) bool {
	if _, ok := c.known[item.RemoteID]; ok {
		return true
	}
	if _, ok := c.seen[item.RemoteID]; ok {
		return true
	}
	if c.full() {
		c.truncated = true
		return false
	}
	c.seen[item.RemoteID] = struct{}{}
	c.items = append(c.items, item)
	return true
}
