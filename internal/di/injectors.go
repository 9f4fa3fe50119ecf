//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"nutriscan/internal"
	"nutriscan/internal/analysis"
	"nutriscan/internal/controllers"
	"nutriscan/internal/providers"
	"nutriscan/internal/services"
	"nutriscan/internal/storage"
	"nutriscan/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewDurableStore,
		storage.NewKeyValueStore,
		services.NewSystemClock,
		services.NewLocalStore,
		services.NewSessionService,
		analysis.NewClient,
		services.NewCaptureService,
		storage.NewScheduler,
		controllers.NewApiController,
		controllers.NewSessionController,
		controllers.NewCaptureController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
