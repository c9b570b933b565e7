package catalog

import (
	"reflect"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

// Party is the abstract base of everyone the shop deals with.
type Party struct {
	Name  string
	Email string
}

// PartyClass identifies Party in the class registry.
var PartyClass = typeregistry.NewClass("catalog.Party", reflect.TypeFor[Party]())

func partyRegistration() typeregistry.Registration {
	return typeregistry.Registration{
		FieldNames: []string{"name", "email"},
		FieldTypes: []reflect.Type{reflect.TypeFor[string](), reflect.TypeFor[string]()},
		FieldFlags: []byte{0, 0},
		Alias:      "Party",
	}
}
