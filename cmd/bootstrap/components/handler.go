package components

import (
	"farewatch/internal/handler"
	"farewatch/internal/handler/api"
	"farewatch/internal/handler/middleware"
	"farewatch/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBatchHandler,
		api.NewDealHandler,
		NewTriggerAuth,
	),
	fx.Invoke(handler.NewRouter),
)

func NewTriggerAuth(cfg config.Config, logger *middleware.Logger) *middleware.TriggerAuthMiddleware {
	return middleware.NewTriggerAuthMiddleware(cfg.Batch, logger.GetSlogLogger())
}
