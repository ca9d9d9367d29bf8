package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var Module = fx.Module("pgx",
	fx.Provide(
		New,
		fx.Annotate(
			func(pool *pgxpool.Pool) DB {
				return pool
			},
			fx.As(new(DB)),
		),
	),
)
