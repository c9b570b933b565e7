package typeregistry

import (
	"reflect"
	"slices"
)

// StateManager is the engine-side object that manages an instance's
// persistent state. The registry only passes it through to factories.
type StateManager interface{}

// FieldSupplier provides field values by managed field index.
type FieldSupplier interface {
	FetchField(index int) any
}

// FieldConsumer receives field values by managed field index.
type FieldConsumer interface {
	StoreField(index int, value any)
}

// InstanceFactory constructs instances and identity objects for a concrete
// class. Abstract classes register without one.
type InstanceFactory interface {
	// NewInstance creates an instance managed by sm. When clear is true the
	// instance's fields are reset to their defaults.
	NewInstance(sm StateManager, clear bool) any

	// NewInstanceWithID is like NewInstance and also copies the key fields
	// out of oid.
	NewInstanceWithID(sm StateManager, oid any, clear bool) any

	// NewObjectID returns an empty identity object.
	NewObjectID() any

	// NewObjectIDFromString parses the string form of an identity object.
	NewObjectIDFromString(s string) (any, error)

	// CopyKeyFieldsToObjectID fills oid's key fields from fs.
	CopyKeyFieldsToObjectID(fs FieldSupplier, oid any) error

	// CopyKeyFieldsFromObjectID hands oid's key fields to fc.
	CopyKeyFieldsFromObjectID(fc FieldConsumer, oid any) error
}

// Registration is the caller-supplied data a class registers with.
type Registration struct {
	FieldNames []string
	// FieldTypes is index-aligned with FieldNames.
	FieldTypes []reflect.Type
	// FieldFlags are stored for callers but never interpreted here.
	FieldFlags []byte
	// Superclass is the nearest persistent ancestor, or nil. The record
	// holds it strongly, so a superclass stays alive while any subclass is
	// registered. A class may not name itself.
	Superclass *Class
	Alias      string
	// Factory is nil for abstract classes. A factory that references its
	// own *Class keeps that class registered for the life of the process.
	Factory InstanceFactory
}

// Metadata is the immutable record stored for a registered class.
type Metadata struct {
	fieldNames []string
	fieldTypes []reflect.Type
	fieldFlags []byte
	superclass *Class
	alias      string
	factory    InstanceFactory
}

func newMetadata(reg Registration) *Metadata {
	return &Metadata{
		fieldNames: slices.Clone(reg.FieldNames),
		fieldTypes: slices.Clone(reg.FieldTypes),
		fieldFlags: slices.Clone(reg.FieldFlags),
		superclass: reg.Superclass,
		alias:      reg.Alias,
		factory:    reg.Factory,
	}
}

// FieldNames returns a copy of the managed field names.
func (m *Metadata) FieldNames() []string { return slices.Clone(m.fieldNames) }

// FieldTypes returns a copy of the managed field types, index-aligned with
// FieldNames.
func (m *Metadata) FieldTypes() []reflect.Type { return slices.Clone(m.fieldTypes) }

// FieldFlags returns a copy of the opaque field flags.
func (m *Metadata) FieldFlags() []byte { return slices.Clone(m.fieldFlags) }

// PersistentSuperclass returns the nearest persistent ancestor, or nil.
func (m *Metadata) PersistentSuperclass() *Class { return m.superclass }

// Alias returns the logical type name.
func (m *Metadata) Alias() string { return m.alias }

// Factory returns the instance factory and whether the class has one.
func (m *Metadata) Factory() (InstanceFactory, bool) {
	return m.factory, m.factory != nil
}

// Abstract reports whether the class was registered without a factory.
func (m *Metadata) Abstract() bool { return m.factory == nil }

// FieldDescriptor describes one managed field.
type FieldDescriptor struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Descriptor is a serializable snapshot of a registered class.
type Descriptor struct {
	Class      string            `json:"class"`
	Alias      string            `json:"alias"`
	Superclass string            `json:"superclass,omitempty"`
	Abstract   bool              `json:"abstract"`
	Fields     []FieldDescriptor `json:"fields"`
	Sequence   uint64            `json:"sequence"`
}

func describe(c *Class, e *entry) Descriptor {
	d := Descriptor{
		Class:    c.Name(),
		Alias:    e.meta.alias,
		Abstract: e.meta.Abstract(),
		Fields:   make([]FieldDescriptor, len(e.meta.fieldNames)),
		Sequence: e.seq,
	}
	if e.meta.superclass != nil {
		d.Superclass = e.meta.superclass.Name()
	}
	for i, name := range e.meta.fieldNames {
		d.Fields[i] = FieldDescriptor{Name: name, Type: e.meta.fieldTypes[i].String()}
	}
	return d
}
