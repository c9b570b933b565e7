package relation_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/classmeta/internal/relation"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

type accountID struct {
	Region string
	Number int64
}

type accountFactory struct{}

func (accountFactory) NewInstance(typeregistry.StateManager, bool) any { return nil }
func (accountFactory) NewInstanceWithID(typeregistry.StateManager, any, bool) any {
	return nil
}
func (accountFactory) NewObjectID() any                          { return &accountID{} }
func (accountFactory) NewObjectIDFromString(string) (any, error) { return &accountID{}, nil }
func (accountFactory) CopyKeyFieldsToObjectID(typeregistry.FieldSupplier, any) error {
	return nil
}

func (accountFactory) CopyKeyFieldsFromObjectID(fc typeregistry.FieldConsumer, oid any) error {
	id := oid.(*accountID)
	fc.StoreField(0, id.Region)
	fc.StoreField(1, id.Number)
	return nil
}

type stateManager struct {
	class *typeregistry.Class
	oid   any
}

func (s stateManager) Class() *typeregistry.Class { return s.class }
func (s stateManager) ObjectID() any              { return s.oid }

func setup(t *testing.T) (*typeregistry.Registry, *typeregistry.Class, *typeregistry.Class) {
	t.Helper()
	r := typeregistry.New()
	account := typeregistry.NewClass("bank.Account", nil)
	require.NoError(t, r.Register(account, typeregistry.Registration{
		FieldNames: []string{"region", "number"},
		FieldTypes: []reflect.Type{reflect.TypeFor[string](), reflect.TypeFor[int64]()},
		Alias:      "Account",
		Factory:    accountFactory{},
	}))
	holder := typeregistry.NewClass("bank.Holder", nil)
	require.NoError(t, r.Register(holder, typeregistry.Registration{Alias: "Holder"}))
	return r, account, holder
}

func TestKeyColumn(t *testing.T) {
	r, account, holder := setup(t)
	var cb relation.RelationID = relation.KeyColumn{Registry: r}

	t.Run("extracts the column's key field", func(t *testing.T) {
		sm := stateManager{class: account, oid: &accountID{Region: "eu", Number: 42}}

		v, err := cb.ToRelationDataStoreValue(sm, relation.Column{Table: "transfer", Name: "account_number", Field: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = cb.ToRelationDataStoreValue(sm, relation.Column{Table: "transfer", Name: "account_region", Field: 0})
		require.NoError(t, err)
		assert.Equal(t, "eu", v)
	})

	t.Run("identity not yet assigned", func(t *testing.T) {
		_, err := cb.ToRelationDataStoreValue(stateManager{class: account}, relation.Column{Name: "account_number", Field: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, relation.ErrIDUnassigned)
	})

	t.Run("unknown key field", func(t *testing.T) {
		sm := stateManager{class: account, oid: &accountID{}}
		_, err := cb.ToRelationDataStoreValue(sm, relation.Column{Name: "bogus", Field: 5})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no key field 5")
	})

	t.Run("abstract related class", func(t *testing.T) {
		sm := stateManager{class: holder, oid: &accountID{}}
		_, err := cb.ToRelationDataStoreValue(sm, relation.Column{Name: "holder_id"})
		assert.ErrorIs(t, err, typeregistry.ErrAbstractClass)
	})

	t.Run("unregistered related class", func(t *testing.T) {
		sm := stateManager{class: typeregistry.NewClass("bank.Unknown", nil), oid: &accountID{}}
		_, err := cb.ToRelationDataStoreValue(sm, relation.Column{Name: "x"})
		assert.ErrorIs(t, err, typeregistry.ErrNotRegistered)
	})
}

func TestFunc(t *testing.T) {
	var got relation.Column
	cb := relation.Func(func(sm relation.StateManager, col relation.Column) (any, error) {
		got = col
		return sm.ObjectID(), nil
	})

	col := relation.Column{Table: "orders", Name: "customer_id"}
	v, err := cb.ToRelationDataStoreValue(stateManager{oid: "c-1"}, col)
	require.NoError(t, err)
	assert.Equal(t, "c-1", v)
	assert.Equal(t, col, got)
	assert.Equal(t, "orders.customer_id", col.String())
	assert.Equal(t, "customer_id", relation.Column{Name: "customer_id"}.String())
}
