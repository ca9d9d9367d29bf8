package roster

import (
	"context"
	"errors"
	"io"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

var (
	ErrAlreadyTracked = errors.New("target is already tracked")
	ErrNotTracked     = errors.New("target is not tracked")
)

// ImportResult lists what an import changed. Usernames already on the
// roster are skipped, never overwritten.
type ImportResult struct {
	Added   []string
	Skipped []string
}

//go:generate go run go.uber.org/mock/mockgen -source=roster.go -destination=mocks/mock.go
type Roster interface {
	Add(ctx context.Context, username string, visibility domain.Visibility) (*domain.Target, error)
	// Remove deletes the target together with its media rows and sync runs.
	// Files on disk are kept.
	Remove(ctx context.Context, username string) error
	// List returns targets ordered by username.
	List(ctx context.Context, visibility domain.Visibility) ([]domain.TargetSummary, error)
	// Import reads a JSON or YAML roster file. A plain list uses the given
	// visibility; a {public, private} mapping carries its own.
	Import(ctx context.Context, r io.Reader, visibility domain.Visibility) (ImportResult, error)
}
