package catalog

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

// Customer is a concrete Party keyed by a numeric id.
type Customer struct {
	Party
	ID int64

	sm typeregistry.StateManager
}

// StateManager returns the state manager the customer was created for.
func (c *Customer) StateManager() typeregistry.StateManager { return c.sm }

// CustomerID is the identity object of a Customer.
type CustomerID struct {
	ID int64
}

func (id CustomerID) String() string { return strconv.FormatInt(id.ID, 10) }

// CustomerClass identifies Customer in the class registry.
var CustomerClass = typeregistry.NewClass("catalog.Customer", reflect.TypeFor[Customer]())

const customerIDField = 0

type customerFactory struct{}

// DefaultCustomerName is what a constructed customer is called until the
// engine loads its state.
const DefaultCustomerName = "unnamed"

// newCustomer runs the constructor defaults, then resets every field to
// its zero value if clear is set.
func newCustomer(sm typeregistry.StateManager, clear bool) *Customer {
	c := &Customer{Party: Party{Name: DefaultCustomerName}, sm: sm}
	if clear {
		c.Party = Party{}
		c.ID = 0
	}
	return c
}

func (customerFactory) NewInstance(sm typeregistry.StateManager, clear bool) any {
	return newCustomer(sm, clear)
}

func (customerFactory) NewInstanceWithID(sm typeregistry.StateManager, oid any, clear bool) any {
	c := newCustomer(sm, clear)
	if id, ok := oid.(*CustomerID); ok {
		c.ID = id.ID
	}
	return c
}

func (customerFactory) NewObjectID() any { return &CustomerID{} }

func (customerFactory) NewObjectIDFromString(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	return &CustomerID{ID: n}, nil
}

func (customerFactory) CopyKeyFieldsToObjectID(fs typeregistry.FieldSupplier, oid any) error {
	id, ok := oid.(*CustomerID)
	if !ok {
		return fmt.Errorf("customer id: unexpected identity %T", oid)
	}
	n, ok := fs.FetchField(customerIDField).(int64)
	if !ok {
		return fmt.Errorf("customer id: field %d is not an int64", customerIDField)
	}
	id.ID = n
	return nil
}

func (customerFactory) CopyKeyFieldsFromObjectID(fc typeregistry.FieldConsumer, oid any) error {
	id, ok := oid.(*CustomerID)
	if !ok {
		return fmt.Errorf("customer id: unexpected identity %T", oid)
	}
	fc.StoreField(customerIDField, id.ID)
	return nil
}

func customerRegistration() typeregistry.Registration {
	return typeregistry.Registration{
		FieldNames: []string{"id"},
		FieldTypes: []reflect.Type{reflect.TypeFor[int64]()},
		FieldFlags: []byte{1},
		Superclass: PartyClass,
		Alias:      "Customer",
		Factory:    customerFactory{},
	}
}
