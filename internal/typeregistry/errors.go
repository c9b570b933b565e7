package typeregistry

import "errors"

// ErrorType classifies registry errors.
type ErrorType string

const (
	ErrorInvalidArgument ErrorType = "invalid_argument"
	ErrorNotRegistered   ErrorType = "not_registered"
	ErrorAbstractClass   ErrorType = "abstract_class"
	ErrorListenerFailed  ErrorType = "listener_failed"
)

var (
	// ErrInvalidArgument indicates a missing or malformed argument.
	ErrInvalidArgument = errors.New("typeregistry: invalid argument")
	// ErrNotRegistered indicates a class with no current record, either
	// never registered or already reclaimed.
	ErrNotRegistered = errors.New("typeregistry: class not registered")
	// ErrAbstractClass indicates an identity operation on a class that was
	// registered without an instance factory.
	ErrAbstractClass = errors.New("typeregistry: abstract class has no identity")
	// ErrListenerFailed indicates a listener panicked during notification.
	ErrListenerFailed = errors.New("typeregistry: listener failed")
)

// RegistryError is the error returned by Registry operations. It matches the
// sentinel of its Type under errors.Is.
type RegistryError struct {
	Type    ErrorType `json:"type"`
	Op      string    `json:"op"`
	Class   string    `json:"class"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	msg := e.Op + " " + e.Class + ": " + e.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel error for the error's type.
func (e *RegistryError) Is(target error) bool {
	switch e.Type {
	case ErrorInvalidArgument:
		return target == ErrInvalidArgument
	case ErrorNotRegistered:
		return target == ErrNotRegistered
	case ErrorAbstractClass:
		return target == ErrAbstractClass
	case ErrorListenerFailed:
		return target == ErrListenerFailed
	}
	return false
}

func notRegistered(op string, c *Class) error {
	return &RegistryError{
		Type:    ErrorNotRegistered,
		Op:      op,
		Class:   c.Name(),
		Message: "no metadata found for class",
	}
}

func abstractClass(op string, c *Class) error {
	return &RegistryError{
		Type:    ErrorAbstractClass,
		Op:      op,
		Class:   c.Name(),
		Message: "cannot copy identity for abstract class",
	}
}
