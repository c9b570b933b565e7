// Package relation defines the callback a persistence engine uses to store
// a foreign key once the related object's identity has been assigned, for
// example after an insert generated its key.
package relation

import (
	"errors"
	"fmt"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

// ErrIDUnassigned indicates the related object has no identity yet.
var ErrIDUnassigned = errors.New("relation: object id not assigned")

// Column is the foreign-key column a relation value is written into.
type Column struct {
	Table string
	Name  string
	// Field is the index of the related class's key field the column holds.
	Field int
}

// String returns "table.name".
func (c Column) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// StateManager is the engine's view of the related object.
type StateManager interface {
	Class() *typeregistry.Class
	ObjectID() any
}

// RelationID returns the value to store in col for the object managed by
// sm, now that its identity has been assigned. Retrying on failure is up
// to the caller.
type RelationID interface {
	ToRelationDataStoreValue(sm StateManager, col Column) (any, error)
}

// Func adapts a function to the RelationID interface.
type Func func(sm StateManager, col Column) (any, error)

// ToRelationDataStoreValue calls f(sm, col).
func (f Func) ToRelationDataStoreValue(sm StateManager, col Column) (any, error) {
	return f(sm, col)
}

// KeyColumn extracts the column's key field from the related object's
// identity through the class registry.
type KeyColumn struct {
	Registry *typeregistry.Registry
}

// fieldCapture keeps the one key field a column asks for.
type fieldCapture struct {
	index int
	value any
	found bool
}

func (f *fieldCapture) StoreField(index int, value any) {
	if index == f.index {
		f.value, f.found = value, true
	}
}

// ToRelationDataStoreValue implements RelationID.
func (k KeyColumn) ToRelationDataStoreValue(sm StateManager, col Column) (any, error) {
	oid := sm.ObjectID()
	if oid == nil {
		return nil, fmt.Errorf("%w: %s for column %s", ErrIDUnassigned, sm.Class(), col)
	}

	reg := k.Registry
	if reg == nil {
		reg = typeregistry.Default()
	}

	capture := &fieldCapture{index: col.Field}
	if err := reg.CopyKeyFieldsFromObjectID(sm.Class(), capture, oid); err != nil {
		return nil, fmt.Errorf("relation value for column %s: %w", col, err)
	}
	if !capture.found {
		return nil, fmt.Errorf("relation value for column %s: %s has no key field %d", col, sm.Class(), col.Field)
	}
	return capture.value, nil
}
