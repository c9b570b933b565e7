package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrund/classmeta/internal/app"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

var rootCmd = &cobra.Command{
	Use:   "classmeta",
	Short: "Inspect and serve the persistent class registry",
	Long: `classmeta registers the application's persistent classes and lets you
inspect their metadata.

Available commands:
  serve       Serve the registry over HTTP and publish registration events
  list        List registered classes
  describe    Show the metadata of one class

Use "classmeta [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadRegistry registers every module's classes into a fresh registry.
func loadRegistry() (*typeregistry.Registry, error) {
	reg := typeregistry.New()
	for _, m := range app.NewModules() {
		if err := m.Register(reg); err != nil {
			return nil, fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	return reg, nil
}
