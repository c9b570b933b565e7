package app

import (
	"github.com/nfrund/classmeta/internal/module"
	"github.com/nfrund/classmeta/internal/modules/examples/catalog"
)

// NewModules returns the modules whose classes the application registers.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		// Add new modules here.
		catalog.New(),
	}
}
