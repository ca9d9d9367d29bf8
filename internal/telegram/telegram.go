package telegram

import (
	"context"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Notifier interface {
	// NotifyReport sends the summary of a finished sync invocation.
	NotifyReport(ctx context.Context, report domain.RunReport) error
	// NotifyUnauthorized alerts that the session lost access to a target.
	NotifyUnauthorized(ctx context.Context, run domain.SyncRun) error
}

// Nop is used when no bot token is configured.
type Nop struct{}

func (Nop) NotifyReport(context.Context, domain.RunReport) error     { return nil }
func (Nop) NotifyUnauthorized(context.Context, domain.SyncRun) error { return nil }

var _ Notifier = Nop{}
