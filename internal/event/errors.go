package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the workflow can surface. The
// command layer matches on these with errors.Is and formats its own user
// text; nothing below it writes to the user.
var (
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrIndexOutOfRange   = errors.New("event index out of range")
	ErrUnknownBinding    = errors.New("no such event binding")
	ErrIncompleteSession = errors.New("authoring session is incomplete")
	ErrPermissionDenied  = errors.New("permission denied")
)

// UnknownEventTypeError reports an event name that is not registered for
// the object's class.
type UnknownEventTypeError struct {
	Object    string
	Class     string
	EventName string
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("event type %q is not defined for %s (class %s)", e.EventName, e.Object, e.Class)
}

func (e *UnknownEventTypeError) Unwrap() error { return ErrUnknownEventType }

// OutOfRangeError reports a store index that does not address an existing
// binding. Index is zero-based.
type OutOfRangeError struct {
	Object    string
	EventName string
	Index     int
	Length    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("event %s %d of %s: index out of range (have %d)", e.EventName, e.Index, e.Object, e.Length)
}

func (e *OutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// UnknownBindingError is the uniform "nothing there" failure for user-facing
// addressing: unknown name, unparsable ordinal, or ordinal past the end all
// collapse into it, keeping control flow identical across the causes.
type UnknownBindingError struct {
	Object    string
	EventName string
	Ordinal   string
}

func (e *UnknownBindingError) Error() string {
	if e.Ordinal != "" {
		return fmt.Sprintf("event %s %s cannot be found in %s", e.EventName, e.Ordinal, e.Object)
	}
	return fmt.Sprintf("no event %s has been set on %s", e.EventName, e.Object)
}

func (e *UnknownBindingError) Unwrap() error { return ErrUnknownBinding }
