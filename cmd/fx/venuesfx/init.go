package venuesfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/config"
)

var Module = fx.Provide(
	provideVenueRepo, provideVenueService)

func provideVenueRepo(db *gorm.DB, cfg *config.Config) repositories.VenueRepository {
	return repositories.NewVenueRepository(db, cfg.RadiusMeters)
}

func provideVenueService(venueRepo repositories.VenueRepository, gateway services.PlacesGateway, cfg *config.Config) services.VenueServiceInterface {
	return services.NewVenueService(venueRepo, gateway, cfg)
}
