package bootstrap

import (
	"log/slog"

	"farewatch/internal/infra/mailer"
	"farewatch/internal/infra/provider"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/config"
	"farewatch/internal/usecase/commands"

	"go.uber.org/fx"
)

var ProviderModule = fx.Module("provider",
	fx.Provide(
		NewPriceSource,
		NewOfferSources,
		fx.Annotate(
			NewPriceFetcher,
			fx.As(new(commands.PriceFetcher)),
		),
	),
)

var MailerModule = fx.Module("mailer",
	fx.Provide(
		fx.Annotate(
			NewMailer,
			fx.As(new(mailer.Mailer)),
		),
	),
)

func NewPriceSource(cfg config.Config, clock clock.Clock) *provider.HTTPSource {
	return provider.NewHTTPSource("fareapi", cfg.Provider, clock)
}

func NewOfferSources(src *provider.HTTPSource) []provider.OfferSource {
	return []provider.OfferSource{src}
}

func NewPriceFetcher(logger *slog.Logger, src *provider.HTTPSource) *provider.MultiSource {
	return provider.NewMultiSource(logger, src)
}

func NewMailer(cfg config.Config) *mailer.HTTPMailer {
	return mailer.NewHTTPMailer(cfg.Mail)
}
