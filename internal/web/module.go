package web

import (
	"github.com/ghaggin/internhub/internal/api"
	"github.com/ghaggin/internhub/internal/config"
	"github.com/ghaggin/internhub/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(
		New,
		NewAPIClient,
	),
)

func NewAPIClient(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*api.Client, error) {
	return api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log.Named("api")),
		api.WithObserver(m),
	)
}
