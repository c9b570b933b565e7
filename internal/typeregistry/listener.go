package typeregistry

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Listener is notified once for every class registration it is attached
// for. Notifications arrive without any registry lock held, so a listener
// may call back into the registry. Live notifications from concurrent
// registrations can overlap a replay, so implementations must be safe for
// concurrent use.
type Listener interface {
	OnRegister(c *Class)
}

// ListenerFunc adapts a function to the Listener interface. Function values
// are not comparable; attach a *ListenerFunc if it must be removed later.
type ListenerFunc func(c *Class)

// OnRegister calls f(c).
func (f ListenerFunc) OnRegister(c *Class) { f(c) }

// sameListener compares listeners without panicking on uncomparable
// dynamic types. A comparable type can still hold an uncomparable value in
// an interface field; such listeners are never the same as another.
func sameListener(a, b Listener) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// notify delivers c to l, converting a panic into an ErrListenerFailed
// error so the remaining listeners still get their notification.
func notify(logger *slog.Logger, op string, l Listener, c *Class) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Listener panicked during notification",
				"op", op, "class", c.Name(), "listener", fmt.Sprintf("%T", l), "panic", rec)
			err = &RegistryError{
				Type:    ErrorListenerFailed,
				Op:      op,
				Class:   c.Name(),
				Message: fmt.Sprintf("listener %T panicked", l),
				Cause:   fmt.Errorf("%v", rec),
			}
		}
	}()
	l.OnRegister(c)
	return nil
}
