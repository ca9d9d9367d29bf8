package downloader

import (
	"context"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

// Result is the outcome of executing one plan.
type Result struct {
	// Items were downloaded and moved into place, in plan order. They form
	// the prefix of the plan before the first blocking failure, minus items
	// that turned out to be gone.
	Items []domain.MediaItem
	// Contiguous is the number of leading Items with no failed post ahead
	// of them in the plan.
	Contiguous int
	// Failed counts items that could not be fetched. Items skipped because
	// of an earlier stop and items deferred by a rate limit are not counted.
	Failed int
	// Processed is true when every planned item was accounted for and no
	// post is missing from Items.
	Processed bool
	// Err is the failure that stopped execution early, if any.
	Err error
}

//go:generate go run go.uber.org/mock/mockgen -source=downloader.go -destination=mocks/mock.go
type Downloader interface {
	Execute(ctx context.Context, plan *domain.Plan) (*Result, error)
}
