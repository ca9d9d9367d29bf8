package instagramimpl

import (
	"github.com/orgball2608/insta-profile-sync/internal/instagram"
	"go.uber.org/fx"
)

var Module = fx.Module("instagram",
	fx.Provide(
		New,
		fx.Annotate(
			func(ig *IgImpl) instagram.Client {
				return ig
			},
			fx.As(new(instagram.Client)),
		),
	),
)
