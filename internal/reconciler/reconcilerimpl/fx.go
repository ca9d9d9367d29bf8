package reconcilerimpl

import (
	"github.com/orgball2608/insta-profile-sync/internal/reconciler"
	"go.uber.org/fx"
)

var Module = fx.Module("reconciler",
	fx.Provide(
		New,
		fx.Annotate(
			func(r *ReconcilerImpl) reconciler.Reconciler {
				return r
			},
			fx.As(new(reconciler.Reconciler)),
		),
	),
)
