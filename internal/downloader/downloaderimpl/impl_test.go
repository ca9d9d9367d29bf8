package downloaderimpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/instagram"
	"github.com/orgball2608/insta-profile-sync/internal/storage"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/errors"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient serves downloads from memory. failures[id] is consumed one
// error per attempt before the item succeeds.
type fakeClient struct {
	mu       sync.Mutex
	failures map[string][]error
	attempts map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{failures: map[string][]error{}, attempts: map[string]int{}}
}

func (c *fakeClient) fail(id string, errs ...error) {
	c.failures[id] = errs
}

func (c *fakeClient) attemptsFor(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts[id]
}

func (c *fakeClient) Profile(context.Context, string) (*domain.Profile, error) {
	return &domain.Profile{}, nil
}

func (c *fakeClient) Media(context.Context, string, domain.Source) (instagram.MediaIterator, error) {
	return nil, stderrors.New("not used")
}

func (c *fakeClient) Download(ctx context.Context, media domain.RemoteMedia) (io.ReadCloser, int64, error) {
	c.mu.Lock()
	c.attempts[media.RemoteID]++
	var err error
	if errs := c.failures[media.RemoteID]; len(errs) > 0 {
		err = errs[0]
		if len(errs) > 1 {
			c.failures[media.RemoteID] = errs[1:]
		}
	}
	c.mu.Unlock()

	if err != nil {
		return nil, 0, err
	}
	if ctx.Err() != nil {
		return nil, 0, ctx.Err()
	}
	payload := "bytes-of-" + media.RemoteID
	return io.NopCloser(strings.NewReader(payload)), int64(len(payload)), nil
}

type countingLimiter struct {
	mu        sync.Mutex
	throttled int
	resets    int
}

func (l *countingLimiter) Wait(ctx context.Context) error { return ctx.Err() }

func (l *countingLimiter) Throttle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.throttled++
}

func (l *countingLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resets++
}

type fixture struct {
	d       *DownloaderImpl
	client  *fakeClient
	limiter *countingLimiter
	fs      afero.Fs
	store   *storage.Store
}

func newFixture(t *testing.T, concurrency int) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.Sync.Concurrency = concurrency
	cfg.Sync.MaxAttempts = 3
	cfg.Sync.BackoffInitial = time.Millisecond
	cfg.Sync.BackoffMax = 2 * time.Millisecond
	cfg.Sync.ItemTimeout = 5 * time.Second

	f := &fixture{
		client:  newFakeClient(),
		limiter: &countingLimiter{},
		fs:      afero.NewMemMapFs(),
	}
	f.store = storage.NewWithFs(f.fs, "/data", logger.NewNop())

	d, err := NewDownloader(f.client, f.store, f.limiter, clockwork.NewFakeClock(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(d.Release)
	f.d = d
	return f
}

func plan(n int) *domain.Plan {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]domain.RemoteMedia, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, domain.RemoteMedia{
			RemoteID:   fmt.Sprintf("p%d", i),
			Kind:       domain.MediaKindPhoto,
			Source:     domain.SourcePosts,
			CapturedAt: base.Add(-time.Duration(i) * time.Hour),
			URL:        "https://cdn/p",
		})
	}
	return &domain.Plan{Target: domain.Target{Username: "nasa"}, Items: items, Complete: true}
}

func remoteIDs(items []domain.MediaItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.RemoteID)
	}
	return out
}

func (f *fixture) tempFiles(t *testing.T) int {
	entries, err := afero.ReadDir(f.fs, "/data/nasa/.tmp")
	if err != nil {
		return 0
	}
	return len(entries)
}

func TestExecute_AllSucceedInPlanOrder(t *testing.T) {
	f := newFixture(t, 3)

	res, err := f.d.Execute(context.Background(), plan(5))
	require.NoError(t, err)
	assert.True(t, res.Processed)
	assert.NoError(t, res.Err)
	assert.Zero(t, res.Failed)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, remoteIDs(res.Items))
	assert.Equal(t, 5, res.Contiguous)

	for _, item := range res.Items {
		exists, err := f.store.Exists(item.LocalPath)
		require.NoError(t, err)
		assert.True(t, exists, item.LocalPath)
		assert.Equal(t, int64(len("bytes-of-"+item.RemoteID)), item.SizeBytes)
	}
	assert.Zero(t, f.tempFiles(t))
}

func TestExecute_EmptyPlan(t *testing.T) {
	f := newFixture(t, 2)

	res, err := f.d.Execute(context.Background(), &domain.Plan{Target: domain.Target{Username: "nasa"}})
	require.NoError(t, err)
	assert.True(t, res.Processed)
	assert.Empty(t, res.Items)
}

func TestExecute_StopsAtFirstPermanentFailure(t *testing.T) {
	f := newFixture(t, 1)
	f.client.fail("p5", stderrors.New("unexpected media format"))

	res, err := f.d.Execute(context.Background(), plan(10))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, remoteIDs(res.Items))
	assert.Equal(t, 4, res.Contiguous)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, res.Processed)
	assert.Error(t, res.Err)
	assert.Equal(t, 3, f.client.attemptsFor("p5"), "retried up to the attempt ceiling")
	for i := 6; i <= 10; i++ {
		assert.Zero(t, f.client.attemptsFor(fmt.Sprintf("p%d", i)), "items after the failure are never attempted")
	}
}

func TestExecute_ConcurrentFailureKeepsNothingAfterIt(t *testing.T) {
	f := newFixture(t, 4)
	f.client.fail("p2", stderrors.New("unexpected media format"))

	res, err := f.d.Execute(context.Background(), plan(8))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, remoteIDs(res.Items))
	assert.False(t, res.Processed)

	for i := 3; i <= 8; i++ {
		name := storage.FileName("nasa", plan(8).Items[i-1])
		exists, err := afero.Exists(f.fs, "/data/nasa/"+name)
		require.NoError(t, err)
		assert.False(t, exists, "p%d must not be kept after the stop", i)
	}
	assert.Zero(t, f.tempFiles(t))
}

func TestExecute_TransientIsRetried(t *testing.T) {
	f := newFixture(t, 1)
	transient := errors.Classify(stderrors.New("connection reset by peer"), errors.KindTransient)
	f.client.fail("p1", transient, transient, nil)

	res, err := f.d.Execute(context.Background(), plan(2))
	require.NoError(t, err)
	assert.True(t, res.Processed)
	assert.Equal(t, []string{"p1", "p2"}, remoteIDs(res.Items))
	assert.Equal(t, 3, f.client.attemptsFor("p1"))
}

func TestExecute_TransientExhaustedStopsPlan(t *testing.T) {
	f := newFixture(t, 1)
	transient := errors.Classify(stderrors.New("connection reset by peer"), errors.KindTransient)
	f.client.fail("p2", transient)

	res, err := f.d.Execute(context.Background(), plan(4))
	require.NoError(t, err)
	assert.Equal(t, 3, f.client.attemptsFor("p2"), "three attempts in total")
	assert.Equal(t, []string{"p1"}, remoteIDs(res.Items))
	assert.Equal(t, 1, res.Failed)
	assert.True(t, errors.IsRetryable(res.Err))
	assert.Zero(t, f.client.attemptsFor("p3"))
}

func TestExecute_RateLimitDefersRemainder(t *testing.T) {
	f := newFixture(t, 1)
	f.client.fail("p3", errors.Classify(stderrors.New("429"), errors.KindRateLimited))

	res, err := f.d.Execute(context.Background(), plan(8))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, remoteIDs(res.Items))
	assert.False(t, res.Processed)
	assert.Zero(t, res.Failed, "deferred items are not failures")
	assert.True(t, errors.IsRateLimited(res.Err))
	assert.Equal(t, 1, f.client.attemptsFor("p3"))
	assert.Zero(t, f.client.attemptsFor("p4"))
	assert.Equal(t, 1, f.limiter.throttled)
}

func TestExecute_GoneItemIsSkipped(t *testing.T) {
	f := newFixture(t, 2)
	f.client.fail("p2", errors.Classify(stderrors.New("received status code 404"), errors.KindNotFound))

	res, err := f.d.Execute(context.Background(), plan(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, remoteIDs(res.Items))
	assert.Equal(t, 1, res.Contiguous)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, res.Processed, "a missing post keeps the pass open")
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, f.client.attemptsFor("p2"))
}

func TestExecute_GoneStoryKeepsPassComplete(t *testing.T) {
	f := newFixture(t, 1)
	p := plan(3)
	p.Items[1].Source = domain.SourceStories
	p.Items[1].Kind = domain.MediaKindStory
	f.client.fail("p2", errors.Classify(stderrors.New("received status code 410"), errors.KindNotFound))

	res, err := f.d.Execute(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, remoteIDs(res.Items))
	assert.Equal(t, 2, res.Contiguous)
	assert.True(t, res.Processed)
}

func TestExecute_GonePostKeepsFloorBelowIt(t *testing.T) {
	f := newFixture(t, 1)
	f.client.fail("p5", errors.Classify(stderrors.New("received status code 404"), errors.KindNotFound))
	p := plan(10)
	floor := domain.Position{TakenAt: p.Items[9].CapturedAt.Add(-time.Hour), RemoteID: "p0"}

	res, err := f.d.Execute(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, res.Items, 9)

	result := domain.SyncResult{
		Committed:    res.Items,
		Contiguous:   res.Contiguous,
		PassComplete: p.Complete && res.Processed,
	}
	next := domain.Checkpoint{Floor: floor}.Advance(result.CommittedPositions(), result.PassComplete)

	assert.Equal(t, floor, next.Floor)
	assert.False(t, next.Covers(p.Items[4].Position()), "the missing post is listed again next run")
	assert.Equal(t, "p1", next.Top.RemoteID)
	assert.Equal(t, "p4", next.Resume.RemoteID)
}

func TestExecute_ForbiddenIsRetriedThenStops(t *testing.T) {
	f := newFixture(t, 1)
	f.client.fail("p2", errors.Classify(stderrors.New("received status code 403"), errors.KindTransient))

	res, err := f.d.Execute(context.Background(), plan(4))
	require.NoError(t, err)
	assert.Equal(t, 3, f.client.attemptsFor("p2"))
	assert.Equal(t, []string{"p1"}, remoteIDs(res.Items))
	assert.False(t, res.Processed)
	assert.Zero(t, f.client.attemptsFor("p3"))
}

func TestExecute_UnclassifiedErrorIsRetried(t *testing.T) {
	f := newFixture(t, 1)
	f.client.fail("p2", stderrors.New("received unexpected status code 400"), nil)

	res, err := f.d.Execute(context.Background(), plan(3))
	require.NoError(t, err)
	assert.Equal(t, 2, f.client.attemptsFor("p2"))
	assert.Equal(t, []string{"p1", "p2", "p3"}, remoteIDs(res.Items))
	assert.True(t, res.Processed)
}

// flakyStore fails Stage a set number of times per item.
type flakyStore struct {
	*storage.Store

	mu       sync.Mutex
	failures map[string]int
}

func (s *flakyStore) Stage(ctx context.Context, username string, media domain.RemoteMedia, r io.Reader, expected int64) (*storage.Staged, error) {
	s.mu.Lock()
	n := s.failures[media.RemoteID]
	if n > 0 {
		s.failures[media.RemoteID] = n - 1
	}
	s.mu.Unlock()

	if n > 0 {
		return nil, errors.Classify(stderrors.New("no space left on device"), errors.KindStorage)
	}
	return s.Store.Stage(ctx, username, media, r, expected)
}

func TestExecute_LocalWriteErrorIsRetried(t *testing.T) {
	f := newFixture(t, 1)
	f.d.Store = &flakyStore{Store: f.store, failures: map[string]int{"p1": 2}}

	res, err := f.d.Execute(context.Background(), plan(2))
	require.NoError(t, err)
	assert.Equal(t, 3, f.client.attemptsFor("p1"))
	assert.Equal(t, []string{"p1", "p2"}, remoteIDs(res.Items))
	assert.True(t, res.Processed)
}

func TestExecute_UnauthorizedStops(t *testing.T) {
	f := newFixture(t, 1)
	f.client.fail("p2", errors.Classify(stderrors.New("login_required"), errors.KindUnauthorized))

	res, err := f.d.Execute(context.Background(), plan(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, remoteIDs(res.Items))
	assert.True(t, errors.IsUnauthorized(res.Err))
	assert.Zero(t, f.client.attemptsFor("p3"))
}

func TestExecute_Canceled(t *testing.T) {
	f := newFixture(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.d.Execute(ctx, plan(4))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Zero(t, res.Failed)
	assert.False(t, res.Processed)
	assert.Zero(t, f.tempFiles(t))
}
