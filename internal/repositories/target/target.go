package target

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"
)

var (
	ErrAlreadyExists = errors.New("target already exists")
	ErrNotFound      = errors.New("target not found")
)

// SyncState is what a committed sync writes back onto the target row.
type SyncState struct {
	Username   string
	Checkpoint domain.Checkpoint
	SyncedAt   time.Time
	// Profile is nil when the run never fetched metadata.
	Profile *domain.Profile
}

//go:generate go run go.uber.org/mock/mockgen -source=target.go -destination=mocks/mock.go
type Repository interface {
	WithTx(q pgx.Querier) Repository

	Create(ctx context.Context, target domain.Target) error
	Delete(ctx context.Context, username string) error
	GetByUsername(ctx context.Context, username string) (*domain.Target, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, username string) (*domain.Target, error)
	List(ctx context.Context, visibility domain.Visibility) ([]domain.Target, error)
	UpdateSyncState(ctx context.Context, state SyncState) error
}
