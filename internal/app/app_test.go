package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/classmeta/internal/app"
	"github.com/nfrund/classmeta/internal/config"
	"github.com/nfrund/classmeta/internal/modules/examples/catalog"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

func testConfig(publish bool) *config.Config {
	return &config.Config{
		HTTPAddr:      "127.0.0.1:0",
		LogFormat:     "text",
		LogLevel:      "error",
		EventsTopic:   config.DefaultEventsTopic,
		PublishEvents: publish,
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_RegistersModules(t *testing.T) {
	reg := typeregistry.New()

	a, err := app.New(testConfig(false), discard(), reg)
	require.NoError(t, err)

	assert.Same(t, reg, a.Registry())
	assert.True(t, reg.IsRegistered(catalog.OrderClass))
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, 0, reg.Listeners())
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestNew_PublishesEvents(t *testing.T) {
	reg := typeregistry.New()

	a, err := app.New(testConfig(true), discard(), reg)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Listeners())

	require.NoError(t, a.Shutdown(context.Background()))
	assert.Equal(t, 0, reg.Listeners())
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := app.New(testConfig(true), discard(), typeregistry.New())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
