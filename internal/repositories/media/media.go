package media

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"
)

var ErrNotFound = errors.New("media item not found")

//go:generate go run go.uber.org/mock/mockgen -source=media.go -destination=mocks/mock.go
type Repository interface {
	WithTx(q pgx.Querier) Repository

	// Create reports false when the item was already recorded.
	Create(ctx context.Context, item domain.MediaItem) (bool, error)
	KnownIDs(ctx context.Context, username string) (map[string]struct{}, error)
	CountByUsername(ctx context.Context, username string) (int, error)
	// ListDownloadedBefore returns items that still have a file on disk.
	ListDownloadedBefore(ctx context.Context, before time.Time) ([]domain.MediaItem, error)
	ClearLocalPath(ctx context.Context, id int64) error
}
