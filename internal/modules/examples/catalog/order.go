package catalog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/nfrund/classmeta/internal/relation"
	"github.com/nfrund/classmeta/internal/typeregistry"
)

// Order is keyed by region and a per-region number.
type Order struct {
	Region     string
	Number     int64
	CustomerID int64
	TotalCents int64

	sm typeregistry.StateManager
}

// OrderID is the identity object of an Order. Its string form is
// "<region>-<number>".
type OrderID struct {
	Region string
	Number int64
}

func (id OrderID) String() string { return id.Region + "-" + strconv.FormatInt(id.Number, 10) }

// OrderClass identifies Order in the class registry.
var OrderClass = typeregistry.NewClass("catalog.Order", reflect.TypeFor[Order]())

const (
	orderRegionField = iota
	orderNumberField
	orderCustomerField
	orderTotalField
)

// CustomerColumn is the foreign key from an order to its customer.
var CustomerColumn = relation.Column{Table: "orders", Name: "customer_id", Field: customerIDField}

type orderFactory struct{}

// DefaultRegion is the region a constructed order starts in.
const DefaultRegion = "eu"

// newOrder runs the constructor defaults, then resets every field to its
// zero value if clear is set.
func newOrder(sm typeregistry.StateManager, clear bool) *Order {
	o := &Order{Region: DefaultRegion, sm: sm}
	if clear {
		*o = Order{sm: sm}
	}
	return o
}

func (orderFactory) NewInstance(sm typeregistry.StateManager, clear bool) any {
	return newOrder(sm, clear)
}

func (orderFactory) NewInstanceWithID(sm typeregistry.StateManager, oid any, clear bool) any {
	o := newOrder(sm, clear)
	if id, ok := oid.(*OrderID); ok {
		o.Region, o.Number = id.Region, id.Number
	}
	return o
}

func (orderFactory) NewObjectID() any { return &OrderID{} }

func (orderFactory) NewObjectIDFromString(s string) (any, error) {
	i := strings.LastIndexByte(s, '-')
	if i <= 0 {
		return nil, fmt.Errorf("order id %q: want <region>-<number>", s)
	}
	n, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("order id %q: %w", s, err)
	}
	return &OrderID{Region: s[:i], Number: n}, nil
}

func (orderFactory) CopyKeyFieldsToObjectID(fs typeregistry.FieldSupplier, oid any) error {
	id, ok := oid.(*OrderID)
	if !ok {
		return fmt.Errorf("order id: unexpected identity %T", oid)
	}
	region, ok := fs.FetchField(orderRegionField).(string)
	if !ok {
		return fmt.Errorf("order id: field %d is not a string", orderRegionField)
	}
	number, ok := fs.FetchField(orderNumberField).(int64)
	if !ok {
		return fmt.Errorf("order id: field %d is not an int64", orderNumberField)
	}
	id.Region, id.Number = region, number
	return nil
}

func (orderFactory) CopyKeyFieldsFromObjectID(fc typeregistry.FieldConsumer, oid any) error {
	id, ok := oid.(*OrderID)
	if !ok {
		return fmt.Errorf("order id: unexpected identity %T", oid)
	}
	fc.StoreField(orderRegionField, id.Region)
	fc.StoreField(orderNumberField, id.Number)
	return nil
}

func orderRegistration() typeregistry.Registration {
	return typeregistry.Registration{
		FieldNames: []string{"region", "number", "customer_id", "total_cents"},
		FieldTypes: []reflect.Type{
			reflect.TypeFor[string](),
			reflect.TypeFor[int64](),
			reflect.TypeFor[int64](),
			reflect.TypeFor[int64](),
		},
		FieldFlags: []byte{1, 1, 0, 0},
		Alias:      "Order",
		Factory:    orderFactory{},
	}
}
