package gatewayfx

import (
	"go.uber.org/fx"

	"nearby/internal/services"
	"nearby/pkg/config"
)

var Module = fx.Provide(
	provideGateway, provideLocationResolver)

func provideGateway(cfg *config.Config) services.PlacesGateway {
	return services.NewFoursquareClient(cfg)
}

func provideLocationResolver(cfg *config.Config) services.LocationResolver {
	return services.NewIPAPIClient(cfg)
}
