// Package event holds the domain types shared by the store, the authoring
// workflow, and the command surface.
package event

import (
	"strings"
	"time"
)

// ObjectRef identifies a game object that events can be attached to.
// ID is the opaque key the store is keyed by; Class selects which event
// types the object supports; Name is for display only.
type ObjectRef struct {
	ID    string
	Class string
	Name  string
}

// String returns the display name, falling back to the raw ID.
func (o ObjectRef) String() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID
}

// TypeInfo describes one event type available on an object class.
type TypeInfo struct {
	Signature   string
	Description string
}

// Binding is one stored handler attached to an object under an event name.
// Position within the list of same-named bindings is its address; positions
// are dense and repack on delete, so they are not stable identifiers.
type Binding struct {
	Object    string
	EventName string
	Position  int
	Code      string
	Author    string
	CreatedOn time.Time
	UpdatedOn *time.Time
	Valid     bool
}

// Touched returns the most recent write time: UpdatedOn if the binding has
// been edited since creation, otherwise CreatedOn.
func (b Binding) Touched() time.Time {
	if b.UpdatedOn != nil {
		return *b.UpdatedOn
	}
	return b.CreatedOn
}

// Lines counts the source lines of the binding's code. Empty code counts
// as zero lines; a trailing newline does not start a new line.
func (b Binding) Lines() int {
	code := strings.TrimSuffix(b.Code, "\n")
	if code == "" {
		return 0
	}
	return strings.Count(code, "\n") + 1
}
