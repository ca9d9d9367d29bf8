package committerimpl

import (
	"github.com/orgball2608/insta-profile-sync/internal/committer"
	"go.uber.org/fx"
)

var Module = fx.Module("committer",
	fx.Provide(
		New,
		fx.Annotate(
			func(c *CommitterImpl) committer.Committer {
				return c
			},
			fx.As(new(committer.Committer)),
		),
	),
)
