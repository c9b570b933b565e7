package typeregistry

import "sync"

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry that enhanced classes register
// themselves into.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Register installs c's metadata in the default registry.
func Register(c *Class, reg Registration) error {
	return Default().Register(c, reg)
}

// MustRegister is Register for init functions; it panics on error.
func MustRegister(c *Class, reg Registration) {
	if err := Register(c, reg); err != nil {
		panic(err)
	}
}

// IsRegistered reports whether c is registered in the default registry.
func IsRegistered(c *Class) bool {
	return Default().IsRegistered(c)
}

// AddListener attaches l to the default registry.
func AddListener(l Listener) error {
	return Default().AddListener(l)
}

// RemoveListener detaches l from the default registry.
func RemoveListener(l Listener) {
	Default().RemoveListener(l)
}
