package typeregistry

import "reflect"

// Class is the identity of a persistent type. Two classes are the same only
// if they are the same pointer; names are informational.
type Class struct {
	name   string
	goType reflect.Type
}

// NewClass creates a new class identity. goType may be nil for classes that
// have no Go representation of their own.
func NewClass(name string, goType reflect.Type) *Class {
	if name == "" && goType != nil {
		name = goType.String()
	}
	return &Class{name: name, goType: goType}
}

// Name returns the class name given at creation.
func (c *Class) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Type returns the Go type backing the class, if any.
func (c *Class) Type() reflect.Type {
	if c == nil {
		return nil
	}
	return c.goType
}

// String returns the class name for easy debugging
func (c *Class) String() string {
	return c.Name()
}
