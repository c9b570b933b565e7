package typeregistry

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"sync"
	"weak"

	"github.com/go-playground/validator/v10"
)

type entry struct {
	class weak.Pointer[Class]
	meta  *Metadata
	seq   uint64
}

// liveEntry pins a class for the duration of a snapshot.
type liveEntry struct {
	class *Class
	entry *entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry diagnostics. By default the
// registry logs to slog.Default() as it is at the time of the call.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// Registry maps classes to their metadata and notifies listeners of every
// registration. It is safe for concurrent use.
//
// One mutex guards the table, the listener set and the registration
// sequence. Register inserts and snapshots the listeners in one critical
// section, AddListener attaches and snapshots the table in another, and
// both deliver after unlocking. A listener therefore learns of a class
// either by replay or live, never both and never neither.
type Registry struct {
	mu        sync.RWMutex
	entries   map[weak.Pointer[Class]]*entry
	listeners []Listener
	seq       uint64
	logger    *slog.Logger
	validate  *validator.Validate
}

// New creates an empty registry. Most callers want Default; isolated
// registries are useful in tests and plugin hosts.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:  make(map[weak.Pointer[Class]]*entry),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Register installs the metadata for c, replacing any earlier record, and
// notifies every attached listener. A listener that panics is reported in
// the returned error; the record stays installed and the other listeners
// are still notified.
func (r *Registry) Register(c *Class, reg Registration) error {
	const op = "register"
	if c == nil {
		return &RegistryError{
			Type:    ErrorInvalidArgument,
			Op:      op,
			Class:   c.Name(),
			Message: "class must not be nil",
		}
	}
	if reg.Superclass == c {
		return &RegistryError{
			Type:    ErrorInvalidArgument,
			Op:      op,
			Class:   c.Name(),
			Message: "class cannot be its own superclass",
		}
	}
	if err := r.validate.Struct(reg); err != nil {
		return &RegistryError{
			Type:    ErrorInvalidArgument,
			Op:      op,
			Class:   c.Name(),
			Message: describeValidation(err),
		}
	}

	meta := newMetadata(reg)
	key := weak.Make(c)

	r.mu.Lock()
	r.seq++
	seq := r.seq
	_, existed := r.entries[key]
	r.entries[key] = &entry{class: key, meta: meta, seq: seq}
	targets := slices.Clone(r.listeners)
	r.mu.Unlock()

	if !existed {
		runtime.AddCleanup(c, r.reclaim, key)
	}

	r.log().Debug("Registered class",
		"class", c.Name(), "alias", reg.Alias, "sequence", seq,
		"replaced", existed, "listeners", len(targets))

	var errs []error
	for _, l := range targets {
		if err := notify(r.log(), op, l, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// reclaim drops the entry of a class the garbage collector has freed.
func (r *Registry) reclaim(key weak.Pointer[Class]) {
	r.mu.Lock()
	e, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if ok {
		r.log().Debug("Reclaimed class entry", "alias", e.meta.alias, "sequence", e.seq)
	}
}

func (r *Registry) lookup(op string, c *Class) (*entry, error) {
	if c == nil {
		return nil, notRegistered(op, c)
	}
	r.mu.RLock()
	e, ok := r.entries[weak.Make(c)]
	r.mu.RUnlock()
	if !ok {
		return nil, notRegistered(op, c)
	}
	return e, nil
}

// liveLocked returns the entries whose class is still alive, in
// registration order. r.mu must be held.
func (r *Registry) liveLocked() []liveEntry {
	live := make([]liveEntry, 0, len(r.entries))
	for key, e := range r.entries {
		if c := key.Value(); c != nil {
			live = append(live, liveEntry{class: c, entry: e})
		}
	}
	slices.SortFunc(live, func(a, b liveEntry) int {
		switch {
		case a.entry.seq < b.entry.seq:
			return -1
		case a.entry.seq > b.entry.seq:
			return 1
		}
		return 0
	})
	return live
}

func (r *Registry) live() []liveEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.liveLocked()
}

// IsRegistered reports whether c currently has a record.
func (r *Registry) IsRegistered(c *Class) bool {
	_, err := r.lookup("is_registered", c)
	return err == nil
}

// RegisteredTypes returns a snapshot of the registered classes in
// registration order. The slice is never updated afterwards.
func (r *Registry) RegisteredTypes() []*Class {
	live := r.live()
	classes := make([]*Class, len(live))
	for i, le := range live {
		classes[i] = le.class
	}
	return classes
}

// Len returns the number of registered classes that are still alive.
func (r *Registry) Len() int {
	return len(r.live())
}

// Lookup returns the full metadata record for c.
func (r *Registry) Lookup(c *Class) (*Metadata, error) {
	e, err := r.lookup("lookup", c)
	if err != nil {
		return nil, err
	}
	return e.meta, nil
}

// FieldNames returns the managed field names of c.
func (r *Registry) FieldNames(c *Class) ([]string, error) {
	e, err := r.lookup("field_names", c)
	if err != nil {
		return nil, err
	}
	return e.meta.FieldNames(), nil
}

// FieldTypes returns the managed field types of c.
func (r *Registry) FieldTypes(c *Class) ([]reflect.Type, error) {
	e, err := r.lookup("field_types", c)
	if err != nil {
		return nil, err
	}
	return e.meta.FieldTypes(), nil
}

// PersistentSuperclass returns the nearest persistent ancestor of c, or nil
// if it has none.
func (r *Registry) PersistentSuperclass(c *Class) (*Class, error) {
	e, err := r.lookup("persistent_superclass", c)
	if err != nil {
		return nil, err
	}
	return e.meta.superclass, nil
}

// TypeAlias returns the alias c registered with.
func (r *Registry) TypeAlias(c *Class) (string, error) {
	e, err := r.lookup("type_alias", c)
	if err != nil {
		return "", err
	}
	return e.meta.alias, nil
}

// ClassForAlias resolves an alias to the class that registered it. If
// several classes share the alias the latest registration wins.
func (r *Registry) ClassForAlias(alias string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found *Class
		seq   uint64
	)
	for key, e := range r.entries {
		if e.meta.alias != alias || e.seq < seq {
			continue
		}
		if c := key.Value(); c != nil {
			found, seq = c, e.seq
		}
	}
	return found, found != nil
}

// Describe returns a serializable snapshot of c's metadata.
func (r *Registry) Describe(c *Class) (Descriptor, error) {
	e, err := r.lookup("describe", c)
	if err != nil {
		return Descriptor{}, err
	}
	return describe(c, e), nil
}

// Catalog describes every registered class in registration order.
func (r *Registry) Catalog() []Descriptor {
	live := r.live()
	out := make([]Descriptor, len(live))
	for i, le := range live {
		out[i] = describe(le.class, le.entry)
	}
	return out
}

// factory returns c's factory, or nil for an abstract class.
func (r *Registry) factory(op string, c *Class) (InstanceFactory, error) {
	e, err := r.lookup(op, c)
	if err != nil {
		return nil, err
	}
	f, _ := e.meta.Factory()
	return f, nil
}

// NewInstance creates a new instance of c managed by sm. It returns nil
// without error if c is abstract.
func (r *Registry) NewInstance(c *Class, sm StateManager, clear bool) (any, error) {
	f, err := r.factory("new_instance", c)
	if f == nil || err != nil {
		return nil, err
	}
	return f.NewInstance(sm, clear), nil
}

// NewInstanceWithID creates a new instance of c managed by sm with its key
// fields taken from oid. It returns nil without error if c is abstract.
func (r *Registry) NewInstanceWithID(c *Class, sm StateManager, oid any, clear bool) (any, error) {
	f, err := r.factory("new_instance", c)
	if f == nil || err != nil {
		return nil, err
	}
	return f.NewInstanceWithID(sm, oid, clear), nil
}

// NewObjectID creates an empty identity object for c. It returns nil
// without error if c is abstract.
func (r *Registry) NewObjectID(c *Class) (any, error) {
	f, err := r.factory("new_object_id", c)
	if f == nil || err != nil {
		return nil, err
	}
	return f.NewObjectID(), nil
}

// NewObjectIDFromString parses the string form of an identity object for c.
// It returns nil without error if c is abstract.
func (r *Registry) NewObjectIDFromString(c *Class, s string) (any, error) {
	f, err := r.factory("new_object_id", c)
	if f == nil || err != nil {
		return nil, err
	}
	oid, err := f.NewObjectIDFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse object id %q for %s: %w", s, c.Name(), err)
	}
	return oid, nil
}

// CopyKeyFieldsToObjectID fills oid's key fields from fs. It fails with
// ErrAbstractClass if c has no factory.
func (r *Registry) CopyKeyFieldsToObjectID(c *Class, fs FieldSupplier, oid any) error {
	const op = "copy_key_fields_to_object_id"
	f, err := r.factory(op, c)
	if err != nil {
		return err
	}
	if f == nil {
		return abstractClass(op, c)
	}
	return f.CopyKeyFieldsToObjectID(fs, oid)
}

// CopyKeyFieldsFromObjectID hands oid's key fields to fc. It fails with
// ErrAbstractClass if c has no factory.
func (r *Registry) CopyKeyFieldsFromObjectID(c *Class, fc FieldConsumer, oid any) error {
	const op = "copy_key_fields_from_object_id"
	f, err := r.factory(op, c)
	if err != nil {
		return err
	}
	if f == nil {
		return abstractClass(op, c)
	}
	return f.CopyKeyFieldsFromObjectID(fc, oid)
}

// AddListener attaches l and, before returning, replays every registered
// class to it in registration order. Attaching nil or an already attached
// listener does nothing. Panics raised by l during replay are reported in
// the returned error and do not stop the replay.
func (r *Registry) AddListener(l Listener) error {
	const op = "add_listener"
	if l == nil {
		return nil
	}

	replay, attached := r.attach(l)
	if !attached {
		return nil
	}

	r.log().Debug("Attached registry listener", "listener", fmt.Sprintf("%T", l), "replay", len(replay))

	var errs []error
	for _, le := range replay {
		if err := notify(r.log(), op, l, le.class); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// attach adds l unless it is already attached and snapshots the live
// table in the same critical section.
func (r *Registry) attach(l Listener) ([]liveEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.listeners {
		if sameListener(existing, l) {
			return nil, false
		}
	}
	r.listeners = append(r.listeners, l)
	return r.liveLocked(), true
}

// Listeners returns the number of attached listeners.
func (r *Registry) Listeners() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// RemoveListener detaches l. Notifications already being delivered may
// still reach it. Unknown listeners are ignored.
func (r *Registry) RemoveListener(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = slices.DeleteFunc(r.listeners, func(existing Listener) bool {
		return sameListener(existing, l)
	})
}
