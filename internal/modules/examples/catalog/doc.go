// Package catalog is an example module of enhanced persistent classes.
//
// The factories here are what an enhancer would generate: they construct
// instances bound to a state manager and convert between entities and their
// identity objects. Party is abstract; Customer and Order are concrete, and
// an Order's customer_id foreign key is filled through relation.KeyColumn
// once the customer's identity exists.
package catalog
