package components

import (
	"log/slog"

	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"
	"farewatch/internal/infra/mailer"
	"farewatch/internal/infra/provider"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/config"
	"farewatch/internal/usecase/commands"
	"farewatch/internal/usecase/queries"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func() *deal.Normalizer {
		return deal.NewNormalizer(decimal.NewFromInt(1))
	},
	func(cfg config.Config) ([]route.Query, error) {
		return route.ParseCatalog(cfg.Batch.Routes)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAlertEvaluator,
		func(log commands.NotificationLog, m mailer.Mailer, clock clock.Clock, logger *slog.Logger, cfg config.Config) *commands.Dispatcher {
			return commands.NewDispatcher(log, m, clock, logger, cfg.Batch.ChunkSize, cfg.Batch.MaxRetries)
		},
		NewBatchCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDealQueries,
		queries.NewRunQueries,
	),
)

type batchDeps struct {
	fx.In

	Evaluator   *commands.AlertEvaluator
	Dispatcher  *commands.Dispatcher
	Alerts      commands.AlertRepository
	Deals       commands.DealWriteRepository
	History     commands.HistoryRepository
	Subscribers commands.SubscriberRepository
	Runs        commands.RunRepository
	Offers      []provider.OfferSource
	Normalizer  *deal.Normalizer
	Catalog     []route.Query
	Cfg         config.Config
	Clock       clock.Clock
	Logger      *slog.Logger
}

func NewBatchCommands(d batchDeps) commands.BatchCommands {
	return commands.NewBatchCommands(
		d.Evaluator,
		d.Dispatcher,
		d.Alerts,
		d.Deals,
		d.History,
		d.Subscribers,
		d.Runs,
		d.Offers,
		d.Normalizer,
		d.Catalog,
		d.Cfg.Batch,
		d.Clock,
		d.Logger,
	)
}
