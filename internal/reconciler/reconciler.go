package reconciler

import (
	"context"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=reconciler.go -destination=mocks/mock.go
type Reconciler interface {
	// Plan lists the remote profile and returns the items missing locally,
	// newest first. It never writes.
	Plan(ctx context.Context, target domain.Target) (*domain.Plan, error)
}
