package catalog

import (
	"fmt"

	"github.com/nfrund/classmeta/internal/module"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

// Module registers the catalog classes.
type Module struct {
	module.BaseModule
}

// New creates the catalog module.
func New() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "catalog"
}

// Register installs Party, Customer and Order, superclasses first.
func (m *Module) Register(reg *typeregistry.Registry) error {
	classes := []struct {
		class *typeregistry.Class
		reg   typeregistry.Registration
	}{
		{PartyClass, partyRegistration()},
		{CustomerClass, customerRegistration()},
		{OrderClass, orderRegistration()},
	}
	for _, c := range classes {
		if err := reg.Register(c.class, c.reg); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	return nil
}
