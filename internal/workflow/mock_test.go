package workflow

import (
	"context"
	"sync"
	"time"

	"eventcraft/internal/event"
	"eventcraft/internal/store"
)

var _ store.Store = (*mockStore)(nil)

// mockStore keeps bindings in memory with the same position semantics as
// the SQL backends: dense per-list positions, repacked on delete.
type mockStore struct {
	mu      sync.Mutex
	objects map[string]map[string][]event.Binding
	now     func() time.Time

	addCalls  int
	editCalls int
}

func newMockStore() *mockStore {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &mockStore{
		objects: make(map[string]map[string][]event.Binding),
		now:     func() time.Time { return base },
	}
}

func (m *mockStore) Close(ctx context.Context) error        { return nil }
func (m *mockStore) EnsureSchema(ctx context.Context) error { return nil }

func (m *mockStore) GetEvents(ctx context.Context, objectID string) (map[string][]event.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make(map[string][]event.Binding)
	for name, list := range m.objects[objectID] {
		if len(list) == 0 {
			continue
		}
		events[name] = append([]event.Binding(nil), list...)
	}
	return events, nil
}

func (m *mockStore) AddEvent(ctx context.Context, objectID, eventName, code, author string, valid bool) (event.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls++

	if m.objects[objectID] == nil {
		m.objects[objectID] = make(map[string][]event.Binding)
	}
	list := m.objects[objectID][eventName]
	binding := event.Binding{
		Object:    objectID,
		EventName: eventName,
		Position:  len(list),
		Code:      code,
		Author:    author,
		CreatedOn: m.now(),
		Valid:     valid,
	}
	m.objects[objectID][eventName] = append(list, binding)
	return binding, nil
}

func (m *mockStore) EditEvent(ctx context.Context, objectID, eventName string, index int, code, author string, valid bool) (event.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editCalls++

	list := m.objects[objectID][eventName]
	if index < 0 || index >= len(list) {
		return event.Binding{}, &event.OutOfRangeError{Object: objectID, EventName: eventName, Index: index, Length: len(list)}
	}

	updated := m.now()
	b := list[index]
	b.Code = code
	b.Author = author
	b.UpdatedOn = &updated
	b.Valid = valid
	list[index] = b
	return b, nil
}

func (m *mockStore) DeleteEvent(ctx context.Context, objectID, eventName string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.objects[objectID][eventName]
	if index < 0 || index >= len(list) {
		return &event.OutOfRangeError{Object: objectID, EventName: eventName, Index: index, Length: len(list)}
	}

	list = append(list[:index], list[index+1:]...)
	for i := range list {
		list[i].Position = i
	}
	m.objects[objectID][eventName] = list
	return nil
}

func (m *mockStore) ListPending(ctx context.Context) ([]event.Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []event.Binding
	for _, events := range m.objects {
		for _, list := range events {
			for _, b := range list {
				if !b.Valid {
					pending = append(pending, b)
				}
			}
		}
	}
	return pending, nil
}

// mockRegistry maps class names straight to type maps.
type mockRegistry map[string]map[string]event.TypeInfo

func (r mockRegistry) Types(class string) map[string]event.TypeInfo {
	types := make(map[string]event.TypeInfo)
	for name, info := range r[class] {
		types[name] = info
	}
	return types
}
