package configfx

import (
	"go.uber.org/fx"

	"nearby/pkg/config"
)

var Module = fx.Provide(
	provideConfig)

func provideConfig() *config.Config {
	return config.Load()
}
