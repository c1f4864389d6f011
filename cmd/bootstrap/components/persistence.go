package components

import (
	"tablebook/internal/infra/readstore"
	"tablebook/internal/infra/uow"
	"tablebook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns the write transaction and the pool-backed reads
		uow.NewPostgresUoW,
		func(pool *pgxpool.Pool) queries.RecordViews {
			return readstore.NewStore(pool)
		},
	),
)
