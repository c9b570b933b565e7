// Package typeregistry is the process-wide catalogue of persistent classes.
//
// Enhanced entity classes publish their persistence metadata once, usually
// from an init function, and independent subsystems discover them by
// attaching a Listener. A listener attached late is replayed every class
// that is already registered, so each listener observes each registration
// exactly once no matter how attach and register interleave.
//
// Classes are held weakly. When nothing outside the registry references a
// *Class any more, the garbage collector reclaims it and its entry vanishes.
//
// Usage:
//
//	var customerClass = typeregistry.NewClass("catalog.Customer", reflect.TypeFor[Customer]())
//
//	func init() {
//		err := typeregistry.Register(customerClass, typeregistry.Registration{
//			FieldNames: []string{"id", "name"},
//			FieldTypes: []reflect.Type{reflect.TypeFor[int64](), reflect.TypeFor[string]()},
//			Alias:      "Customer",
//			Factory:    customerFactory{},
//		})
//		if err != nil {
//			panic(err)
//		}
//	}
//
// Subsystems listen for classes:
//
//	typeregistry.AddListener(typeregistry.ListenerFunc(func(c *typeregistry.Class) {
//		slog.Info("class registered", "class", c)
//	}))
package typeregistry
