package memcache_fx

import (
	"go.uber.org/fx"

	"sallyo/internal/services"
	mem "sallyo/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore() mem.Store[*services.WizardSession] {
	return mem.NewTTLStore[*services.WizardSession]()
}
