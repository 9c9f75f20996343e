package components

import (
	"farewatch/internal/infra/readstore"
	repo_impl "farewatch/internal/infra/repository"
	"farewatch/internal/usecase/commands"
	"farewatch/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewAlertRepository,
			fx.As(new(commands.AlertRepository)),
		),
		fx.Annotate(
			repo_impl.NewHistoryRepository,
			fx.As(new(commands.HistoryRepository)),
		),
		fx.Annotate(
			repo_impl.NewDealRepository,
			fx.As(new(commands.DealWriteRepository)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(commands.NotificationLog)),
		),
		fx.Annotate(
			repo_impl.NewSubscriberRepository,
			fx.As(new(commands.SubscriberRepository)),
		),
		fx.Annotate(
			repo_impl.NewRunRepository,
			fx.As(new(commands.RunRepository)),
		),
		// Read-side repositories for queries
		fx.Annotate(
			readstore.NewDealReadStore,
			fx.As(new(queries.DealReadStore)),
		),
		fx.Annotate(
			readstore.NewRunReadStore,
			fx.As(new(queries.RunReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}
