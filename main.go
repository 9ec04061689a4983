package main

import (
	"flag"

	"github.com/ghaggin/internhub/internal/config"
	"github.com/ghaggin/internhub/internal/metrics"
	"github.com/ghaggin/internhub/internal/middleware"
	"github.com/ghaggin/internhub/internal/web"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	var configPath = flag.String("config", "", "path to config yaml (default ./config/config.yaml)")
	flag.Parse()

	newConfig := config.New
	if *configPath != "" {
		newConfig = func() (*config.Config, error) {
			return config.Load(*configPath)
		}
	}

	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			metrics.New,
			middleware.NewSessionManager,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		web.Module,
		fx.Invoke(web.RegisterHooks),
	)

	app.Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
