// Package app assembles the registry, its modules and the surfaces that
// expose it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/do/v2"

	"github.com/nfrund/classmeta/internal/config"
	"github.com/nfrund/classmeta/internal/module"
	"github.com/nfrund/classmeta/internal/pubsub"
	"github.com/nfrund/classmeta/internal/server"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

const shutdownTimeout = 10 * time.Second

// App is a running classmeta process.
type App struct {
	injector *do.RootScope
	cfg      *config.Config
	logger   *slog.Logger
	registry *typeregistry.Registry
	modules  []module.Module

	events *pubsub.EventListener
	bridge *pubsub.WatermillBridge
}

// New registers every module's classes into reg and, if enabled, starts
// publishing registrations as events.
func New(cfg *config.Config, logger *slog.Logger, reg *typeregistry.Registry) (*App, error) {
	a := &App{
		injector: NewInjector(cfg, logger, reg),
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		modules:  NewModules(),
	}

	for _, m := range a.modules {
		if err := m.Register(reg); err != nil {
			return nil, fmt.Errorf("register module %s: %w", m.Name(), err)
		}
		logger.Info("Registered module", "module", m.Name())
	}

	if cfg.PublishEvents {
		if err := a.startEvents(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) startEvents() error {
	bridge, err := do.Invoke[*pubsub.WatermillBridge](a.injector)
	if err != nil {
		return fmt.Errorf("event bridge: %w", err)
	}
	events, err := do.Invoke[*pubsub.EventListener](a.injector)
	if err != nil {
		return fmt.Errorf("event listener: %w", err)
	}

	// Audit trail of everything published.
	err = bridge.Subscribe(context.Background(), events.Event().Name(), func(ctx context.Context, msg pubsub.Message) error {
		ev, err := pubsub.Decode(events.Event(), msg)
		if err != nil {
			return err
		}
		a.logger.Info("Class registered",
			"event_id", ev.ID, "alias", ev.Class.Alias, "class", ev.Class.Class, "sequence", ev.Class.Sequence)
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", events.Event().Name(), err)
	}

	a.bridge, a.events = bridge, events
	if err := a.registry.AddListener(events); err != nil {
		a.logger.Warn("Publishing registered classes failed", "error", err)
	}
	return nil
}

// Registry returns the registry the app serves.
func (a *App) Registry() *typeregistry.Registry {
	return a.registry
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts everything down.
func (a *App) Run(ctx context.Context) error {
	srv, err := do.Invoke[*server.Server](a.injector)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	for _, m := range a.modules {
		if err := m.Boot(ctx, srv.ModuleGroup(m.Name()), a.registry); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(a.cfg.HTTPAddr) }()

	select {
	case err := <-errCh:
		return errors.Join(err, a.Shutdown(context.Background()))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(srv.Shutdown(shutdownCtx), a.Shutdown(shutdownCtx))
}

// Shutdown detaches the event publisher, stops the modules and closes the
// event bridge.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.events != nil {
		a.registry.RemoveListener(a.events)
	}
	for _, m := range a.modules {
		if err := m.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown module %s: %w", m.Name(), err))
		}
	}
	if a.bridge != nil {
		if err := a.bridge.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bridge: %w", err))
		}
	}
	a.injector.Shutdown()
	a.logger.Info("Shutdown complete")
	return errors.Join(errs...)
}
