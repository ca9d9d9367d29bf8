package instagram

import (
	"context"
	"errors"
	"io"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

// ErrExhausted is returned by MediaIterator.Next once the listing has no
// more pages.
var ErrExhausted = errors.New("listing exhausted")

// MediaIterator pages through one listing of a profile. Post pages come
// newest-first.
type MediaIterator interface {
	Next(ctx context.Context) ([]domain.RemoteMedia, error)
}

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	Profile(ctx context.Context, username string) (*domain.Profile, error)
	Media(ctx context.Context, username string, source domain.Source) (MediaIterator, error)
	// Download opens the media bytes. The size is -1 when unknown.
	Download(ctx context.Context, media domain.RemoteMedia) (io.ReadCloser, int64, error)
}
