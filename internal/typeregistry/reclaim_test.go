package typeregistry

import (
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registerTransient registers a class that nothing else references and
// returns a weak handle to it.
//
//go:noinline
func registerTransient(t *testing.T, r *Registry) weak.Pointer[Class] {
	c := NewClass("test.Transient", nil)
	require.NoError(t, r.Register(c, Registration{Alias: "Transient"}))
	require.True(t, r.IsRegistered(c))
	return weak.Make(c)
}

func TestReclaimedClassDisappears(t *testing.T) {
	r := New()
	keep := NewClass("test.Keep", nil)
	require.NoError(t, r.Register(keep, Registration{Alias: "Keep"}))

	transient := registerTransient(t, r)

	require.Eventually(t, func() bool {
		runtime.GC()
		r.mu.RLock()
		defer r.mu.RUnlock()
		return transient.Value() == nil && len(r.entries) == 1
	}, 5*time.Second, 10*time.Millisecond, "entry of an unreachable class should be reclaimed")

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []*Class{keep}, r.RegisteredTypes())
	_, ok := r.ClassForAlias("Transient")
	assert.False(t, ok)
	assert.True(t, r.IsRegistered(keep))

	runtime.KeepAlive(keep)
}

func TestReclaimedClassIsNotReplayed(t *testing.T) {
	r := New()
	transient := registerTransient(t, r)

	require.Eventually(t, func() bool {
		runtime.GC()
		return transient.Value() == nil
	}, 5*time.Second, 10*time.Millisecond)

	var replayed int
	require.NoError(t, r.AddListener(ListenerFunc(func(*Class) { replayed++ })))
	assert.Zero(t, replayed)
}

// registerHierarchy registers a base class and a subclass naming it, and
// returns weak handles to both.
//
//go:noinline
func registerHierarchy(t *testing.T, r *Registry) (weak.Pointer[Class], weak.Pointer[Class]) {
	base := NewClass("test.Base", nil)
	sub := NewClass("test.Sub", nil)
	require.NoError(t, r.Register(base, Registration{Alias: "Base"}))
	require.NoError(t, r.Register(sub, Registration{Alias: "Sub", Superclass: base}))
	return weak.Make(base), weak.Make(sub)
}

func TestSuperclassIsReclaimedAfterSubclass(t *testing.T) {
	r := New()
	base, sub := registerHierarchy(t, r)

	require.Eventually(t, func() bool {
		runtime.GC()
		r.mu.RLock()
		defer r.mu.RUnlock()
		return base.Value() == nil && sub.Value() == nil && len(r.entries) == 0
	}, 5*time.Second, 10*time.Millisecond, "a superclass reference must not pin the hierarchy")
}
