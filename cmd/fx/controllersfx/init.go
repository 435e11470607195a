package controllersfx

import (
	"go.uber.org/fx"

	"nearby/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewVenuesController),
	fx.Provide(controllers.NewTokenController))
