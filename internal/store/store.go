// Package store defines durable CRUD over event bindings, keyed by object.
// Backends must keep positions dense per (object, event name) and serialize
// mutations to the same list so concurrent appends never share a position.
package store

import (
	"context"

	"eventcraft/internal/event"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	// GetEvents returns every binding on the object, grouped by event
	// name in list order. An object with no bindings yields an
	// empty map.
	GetEvents(ctx context.Context, objectID string) (map[string][]event.Binding, error)

	// AddEvent appends a binding at the end of the (objectID, eventName)
	// list and returns it with its assigned position.
	AddEvent(ctx context.Context, objectID, eventName, code, author string, valid bool) (event.Binding, error)

	// EditEvent replaces the code, author, and validity of the binding at
	// the zero-based index. The whole write is applied or nothing is;
	// a missing index fails with event.OutOfRangeError.
	EditEvent(ctx context.Context, objectID, eventName string, index int, code, author string, valid bool) (event.Binding, error)

	// DeleteEvent removes the binding at the zero-based index and packs
	// the positions above it down so they stay dense.
	DeleteEvent(ctx context.Context, objectID, eventName string, index int) error

	// ListPending returns every binding awaiting validation, across all
	// objects, in (object, event name, position) order.
	ListPending(ctx context.Context) ([]event.Binding, error)
}
