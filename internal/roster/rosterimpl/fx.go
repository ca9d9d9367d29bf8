package rosterimpl

import (
	"github.com/orgball2608/insta-profile-sync/internal/roster"
	"go.uber.org/fx"
)

var Module = fx.Module("roster",
	fx.Provide(
		New,
		fx.Annotate(
			func(r *RosterImpl) roster.Roster {
				return r
			},
			fx.As(new(roster.Roster)),
		),
	),
)
