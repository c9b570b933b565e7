package app

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/nfrund/classmeta/internal/config"
	"github.com/nfrund/classmeta/internal/pubsub"
	"github.com/nfrund/classmeta/internal/server"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

// NewInjector wires the application services. The config, logger and
// registry are supplied; the event bridge and HTTP server are built lazily
// on first use.
func NewInjector(cfg *config.Config, logger *slog.Logger, reg *typeregistry.Registry) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, logger)
	do.ProvideValue(i, reg)

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(do.MustInvoke[*slog.Logger](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*pubsub.EventListener, error) {
		return pubsub.NewEventListener(
			do.MustInvoke[*typeregistry.Registry](i),
			do.MustInvoke[*pubsub.WatermillBridge](i),
			do.MustInvoke[*config.Config](i).EventsTopic,
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
	do.Provide(i, func(i do.Injector) (*server.Server, error) {
		s := server.New(do.MustInvoke[*typeregistry.Registry](i), do.MustInvoke[*slog.Logger](i))
		s.RegisterRoutes()
		return s, nil
	})

	return i
}
