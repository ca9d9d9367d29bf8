package instagramimpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/instagram"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
)

const (
	mediaTypeVideo    = 2
	mediaTypeCarousel = 8
)

func (ig *IgImpl) Media(ctx context.Context, username string, source domain.Source) (instagram.MediaIterator, error) {
	user, err := ig.visitProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	switch source {
	case domain.SourcePosts:
		return &feedIterator{feed: user.Feed(), seen: make(map[string]struct{})}, nil

	case domain.SourceStories:
		var stories *goinsta.StoryMedia
		err := call(ctx, func() error {
			var err error
			stories, err = user.Stories()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get stories for %s: %w", username, classify(err))
		}

		var page []domain.RemoteMedia
		if stories != nil {
			for _, item := range stories.Reel.Items {
				page = append(page, convertItem(item, domain.SourceStories, time.Time{})...)
			}
		}
		return &pageIterator{pages: [][]domain.RemoteMedia{page}}, nil

	case domain.SourceHighlights:
		var reels []*goinsta.Reel
		err := call(ctx, func() error {
			var err error
			reels, err = user.Highlights()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get highlights for %s: %w", username, classify(err))
		}

		pages := make([][]domain.RemoteMedia, 0, len(reels))
		for _, reel := range reels {
			var page []domain.RemoteMedia
			for _, item := range reel.Items {
				page = append(page, convertItem(item, domain.SourceHighlights, time.Time{})...)
			}
			pages = append(pages, page)
		}
		return &pageIterator{pages: pages}, nil

	default:
		return nil, fmt.Errorf("unknown media source %q", source)
	}
}

type feedIterator struct {
	feed *goinsta.FeedMedia
	seen map[string]struct{}
	done bool
}

func (it *feedIterator) Next(ctx context.Context) ([]domain.RemoteMedia, error) {
	if it.done {
		return nil, instagram.ErrExhausted
	}

	var more bool
	err := call(ctx, func() error {
		more = it.feed.Next()
		if more {
			return nil
		}
		if err := it.feed.Error(); err != nil && !stderrors.Is(err, goinsta.ErrNoMore) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed page: %w", classify(err))
	}

	var page []domain.RemoteMedia
	for _, item := range it.feed.Items {
		for _, media := range convertItem(item, domain.SourcePosts, time.Time{}) {
			if _, ok := it.seen[media.RemoteID]; ok {
				continue
			}
			it.seen[media.RemoteID] = struct{}{}
			page = append(page, media)
		}
	}

	if !more {
		it.done = true
		if len(page) == 0 {
			return nil, instagram.ErrExhausted
		}
	}
	return page, nil
}

type pageIterator struct {
	pages [][]domain.RemoteMedia
	pos   int
}

func (it *pageIterator) Next(ctx context.Context) ([]domain.RemoteMedia, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if it.pos >= len(it.pages) {
		return nil, instagram.ErrExhausted
	}
	page := it.pages[it.pos]
	it.pos++
	return page, nil
}

// convertItem flattens an item into downloadable media. Carousel children
// inherit the capture time of their parent.
func convertItem(item *goinsta.Item, source domain.Source, takenAt time.Time) []domain.RemoteMedia {
	if item == nil {
		return nil
	}
	if item.TakenAt != 0 {
		takenAt = time.Unix(item.TakenAt, 0).UTC()
	}

	if item.MediaType == mediaTypeCarousel && len(item.CarouselMedia) > 0 {
		var media []domain.RemoteMedia
		for i := range item.CarouselMedia {
			media = append(media, convertItem(&item.CarouselMedia[i], source, takenAt)...)
		}
		return media
	}

	remote := domain.RemoteMedia{
		RemoteID:   itemID(item),
		Source:     source,
		CapturedAt: takenAt,
	}

	switch {
	case len(item.Videos) > 0:
		remote.URL = item.Videos[0].URL
		remote.IsVideo = true
	case len(item.Images.Versions) > 0:
		remote.URL = item.Images.Versions[0].URL
	default:
		return nil
	}

	switch source {
	case domain.SourceStories:
		remote.Kind = domain.MediaKindStory
	case domain.SourceHighlights:
		remote.Kind = domain.MediaKindHighlight
	default:
		if remote.IsVideo || item.MediaType == mediaTypeVideo {
			remote.Kind = domain.MediaKindVideo
		} else {
			remote.Kind = domain.MediaKindPhoto
		}
	}

	return []domain.RemoteMedia{remote}
}

func itemID(item *goinsta.Item) string {
	if item.Pk != 0 {
		return strconv.FormatInt(item.Pk, 10)
	}

	id := fmt.Sprint(item.ID)
	if before, _, ok := strings.Cut(id, "_"); ok {
		return before
	}
	return id
}

// classify maps a client error onto the sync error kinds. goinsta reports
// most API failures only through the message text.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.KindOf(err) != errors.KindUnknown {
		return err
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.Classify(err, errors.KindTransient)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "login_required", "checkpoint_required", "challenge_required",
		"not authorized", "not_authorized", "private account", "is private"):
		return errors.Classify(err, errors.KindUnauthorized)
	case containsAny(msg, "please wait a few minutes", "too many requests", "429",
		"rate limit", "feedback_required", "spam"):
		return errors.Classify(err, errors.KindRateLimited)
	case containsAny(msg, "user not found", "not found", "404", "no longer available", "page isn't available"):
		return errors.Classify(err, errors.KindNotFound)
	case containsAny(msg, "timeout", "connection reset", "connection refused", "eof",
		"temporarily unavailable", "500", "502", "503", "504", "no such host"):
		return errors.Classify(err, errors.KindTransient)
	default:
		return err
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
