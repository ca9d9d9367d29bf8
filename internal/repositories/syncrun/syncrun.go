package syncrun

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/pgx"
)

var ErrNotFound = errors.New("sync run not found")

//go:generate go run go.uber.org/mock/mockgen -source=syncrun.go -destination=mocks/mock.go
type Repository interface {
	WithTx(q pgx.Querier) Repository

	Create(ctx context.Context, run domain.SyncRun) error
	LatestByUsername(ctx context.Context, username string) (*domain.SyncRun, error)
	ListByUsername(ctx context.Context, username string, limit int) ([]domain.SyncRun, error)
}
