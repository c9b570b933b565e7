package typeregistry_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

func TestExactlyOnceUnderConcurrentAttachAndRegister(t *testing.T) {
	const (
		classes   = 200
		listeners = 20
	)

	for round := 0; round < 5; round++ {
		t.Run(fmt.Sprintf("round %d", round), func(t *testing.T) {
			r := typeregistry.New()

			all := make([]*typeregistry.Class, classes)
			for i := range all {
				all[i] = typeregistry.NewClass(fmt.Sprintf("test.C%d", i), nil)
			}
			recs := make([]*recorder, listeners)
			for i := range recs {
				recs[i] = newRecorder()
			}

			// Half the classes are in place before anyone listens.
			for _, c := range all[:classes/2] {
				require.NoError(t, r.Register(c, typeregistry.Registration{Alias: c.Name()}))
			}

			var wg sync.WaitGroup
			start := make(chan struct{})
			for _, c := range all[classes/2:] {
				wg.Add(1)
				go func(c *typeregistry.Class) {
					defer wg.Done()
					<-start
					assert.NoError(t, r.Register(c, typeregistry.Registration{Alias: c.Name()}))
				}(c)
			}
			for _, rec := range recs {
				wg.Add(1)
				go func(rec *recorder) {
					defer wg.Done()
					<-start
					assert.NoError(t, r.AddListener(rec))
				}(rec)
			}
			close(start)
			wg.Wait()

			for i, rec := range recs {
				for _, c := range all {
					assert.Equal(t, 1, rec.count(c), "listener %d, class %s", i, c)
				}
			}
		})
	}
}

func TestConcurrentRemoveStopsDelivery(t *testing.T) {
	r := typeregistry.New()
	rec := newRecorder()
	require.NoError(t, r.AddListener(rec))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := typeregistry.NewClass(fmt.Sprintf("test.Before%d", i), nil)
			assert.NoError(t, r.Register(c, typeregistry.Registration{}))
		}(i)
	}
	wg.Wait()
	r.RemoveListener(rec)

	after := typeregistry.NewClass("test.After", nil)
	require.NoError(t, r.Register(after, typeregistry.Registration{}))

	assert.Len(t, rec.seen(), 50)
	assert.Equal(t, 0, rec.count(after))
}

func TestConcurrentReadersDuringRegistration(t *testing.T) {
	r := typeregistry.New()
	c := typeregistry.NewClass("test.Widget", nil)
	require.NoError(t, r.Register(c, widgetRegistration()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				names, err := r.FieldNames(c)
				assert.NoError(t, err)
				assert.NotEmpty(t, names)
				_ = r.RegisteredTypes()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				assert.NoError(t, r.Register(c, widgetRegistration()))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, r.Len())
}

// decorated wraps another listener; with a ListenerFunc inside, the struct
// type is comparable but its values are not.
type decorated struct {
	inner typeregistry.Listener
}

func (d decorated) OnRegister(c *typeregistry.Class) { d.inner.OnRegister(c) }

func TestUncomparableListenerValuesDoNotWedgeRegistry(t *testing.T) {
	r := typeregistry.New()
	var calls atomic.Int32
	count := typeregistry.ListenerFunc(func(*typeregistry.Class) { calls.Add(1) })

	require.NotPanics(t, func() {
		require.NoError(t, r.AddListener(decorated{inner: count}))
		require.NoError(t, r.AddListener(decorated{inner: count}))
		r.RemoveListener(decorated{inner: count})
	})
	assert.Equal(t, 2, r.Listeners(), "uncomparable values are never treated as the same listener")

	done := make(chan error, 1)
	go func() {
		done <- r.Register(typeregistry.NewClass("test.After", nil), typeregistry.Registration{})
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Register blocked after attaching uncomparable listeners")
	}
	assert.Equal(t, int32(2), calls.Load())

	dedup := decorated{inner: newRecorder()}
	require.NoError(t, r.AddListener(dedup))
	require.NoError(t, r.AddListener(dedup))
	assert.Equal(t, 3, r.Listeners(), "comparable decorators still deduplicate")
	r.RemoveListener(dedup)
	assert.Equal(t, 2, r.Listeners())
}
