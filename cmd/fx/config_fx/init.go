package config_fx

import (
	"go.uber.org/fx"

	"sallyo/internal/config"
)

var Module = fx.Provide(config.Load)
