package controllers_fx

import (
	"go.uber.org/fx"

	"sallyo/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewOnboardingController))
