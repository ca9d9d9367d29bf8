package committer

import (
	"context"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=committer.go -destination=mocks/mock.go
type Committer interface {
	// Commit records the downloaded items, the advanced checkpoint, the
	// refreshed profile and the run in one transaction. On failure nothing
	// is recorded and the files of the result are removed again.
	Commit(ctx context.Context, result domain.SyncResult) error
	// RecordRun stores a run that has nothing to commit.
	RecordRun(ctx context.Context, run domain.SyncRun) error
}
