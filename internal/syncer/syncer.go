package syncer

import (
	"context"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=syncer.go -destination=mocks/mock.go
type Syncer interface {
	// Sync reconciles, downloads and commits every target of the given
	// visibility. One target failing never stops the others.
	Sync(ctx context.Context, visibility domain.Visibility) (domain.RunReport, error)
	SyncTarget(ctx context.Context, target domain.Target) domain.SyncRun
	// Clean deletes media files downloaded more than days ago and clears
	// their local path. It returns the number of files removed.
	Clean(ctx context.Context, days int) (int, error)
	// Schedule runs Sync at random intervals, and Clean daily, until ctx
	// is done.
	Schedule(ctx context.Context) error
}
