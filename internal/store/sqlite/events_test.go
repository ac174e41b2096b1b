package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventcraft/internal/event"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	client, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })

	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

func TestAddEventAppends(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	first, err := client.AddEvent(ctx, "#1", "open", "say('creak')", "zara", true)
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if first.Position != 0 {
		t.Fatalf("expected position 0, got %d", first.Position)
	}
	if first.UpdatedOn != nil {
		t.Fatalf("expected no updated_on on a fresh binding")
	}
	if !first.Valid {
		t.Fatalf("expected valid binding")
	}

	second, err := client.AddEvent(ctx, "#1", "open", "", "bob", false)
	if err != nil {
		t.Fatalf("add second event: %v", err)
	}
	if second.Position != 1 {
		t.Fatalf("expected position 1, got %d", second.Position)
	}

	events, err := client.GetEvents(ctx, "#1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	list := events["open"]
	if len(list) != 2 {
		t.Fatalf("expected two bindings, got %d", len(list))
	}
	if list[0].Author != "zara" || list[1].Author != "bob" {
		t.Fatalf("unexpected order: %v", list)
	}
	if list[1].Code != "" {
		t.Fatalf("empty code should persist as empty, got %q", list[1].Code)
	}
}

func TestGetEventsAbsentObject(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	events, err := client.GetEvents(ctx, "#missing")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty map, got %v", events)
	}
}

func TestEditEvent(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	added, err := client.AddEvent(ctx, "#1", "open", "old", "zara", true)
	if err != nil {
		t.Fatalf("add event: %v", err)
	}

	edited, err := client.EditEvent(ctx, "#1", "open", 0, "new", "bob", false)
	if err != nil {
		t.Fatalf("edit event: %v", err)
	}
	if edited.Code != "new" || edited.Author != "bob" || edited.Valid {
		t.Fatalf("unexpected binding after edit: %+v", edited)
	}
	if edited.UpdatedOn == nil {
		t.Fatalf("expected updated_on after edit")
	}
	if !edited.CreatedOn.Equal(added.CreatedOn) {
		t.Fatalf("created_on changed on edit: %v != %v", edited.CreatedOn, added.CreatedOn)
	}

	events, err := client.GetEvents(ctx, "#1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	got := events["open"][0]
	if got.Code != "new" || got.Author != "bob" || got.Valid {
		t.Fatalf("edit not persisted: %+v", got)
	}
}

func TestEditEventOutOfRange(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	if _, err := client.AddEvent(ctx, "#1", "open", "", "zara", true); err != nil {
		t.Fatalf("add event: %v", err)
	}

	_, err := client.EditEvent(ctx, "#1", "open", 3, "x", "bob", false)
	if !errors.Is(err, event.ErrIndexOutOfRange) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}

	var oor *event.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected *OutOfRangeError, got %T", err)
	}
	if oor.Length != 1 || oor.Index != 3 {
		t.Fatalf("unexpected context: %+v", oor)
	}
}

func TestDeleteEventRepacks(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	for _, code := range []string{"a", "b", "c"} {
		if _, err := client.AddEvent(ctx, "#1", "open", code, "zara", true); err != nil {
			t.Fatalf("add event: %v", err)
		}
	}

	if err := client.DeleteEvent(ctx, "#1", "open", 0); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	events, err := client.GetEvents(ctx, "#1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	list := events["open"]
	if len(list) != 2 {
		t.Fatalf("expected two bindings, got %d", len(list))
	}
	for i, b := range list {
		if b.Position != i {
			t.Fatalf("positions not dense: %v", list)
		}
	}
	if list[0].Code != "b" || list[1].Code != "c" {
		t.Fatalf("relative order lost: %v", list)
	}
}

func TestDeleteEventOutOfRange(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	err := client.DeleteEvent(ctx, "#1", "open", 0)
	if !errors.Is(err, event.ErrIndexOutOfRange) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
}

func TestListPending(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	if _, err := client.AddEvent(ctx, "#2", "enter", "", "bob", false); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if _, err := client.AddEvent(ctx, "#1", "open", "", "zara", true); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if _, err := client.AddEvent(ctx, "#1", "open", "", "bob", false); err != nil {
		t.Fatalf("add event: %v", err)
	}

	pending, err := client.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected two pending bindings, got %d", len(pending))
	}
	if pending[0].Object != "#1" || pending[1].Object != "#2" {
		t.Fatalf("unexpected order: %v", pending)
	}
}

func TestGetEventsIsPureRead(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)

	if _, err := client.AddEvent(ctx, "#1", "open", "a", "zara", true); err != nil {
		t.Fatalf("add event: %v", err)
	}

	first, err := client.GetEvents(ctx, "#1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	second, err := client.GetEvents(ctx, "#1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(first) != len(second) || len(first["open"]) != len(second["open"]) {
		t.Fatalf("repeated reads differ")
	}
	if !first["open"][0].CreatedOn.Equal(second["open"][0].CreatedOn) {
		t.Fatalf("repeated reads differ on timestamps")
	}
}

func TestTimestampsRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	if _, err := client.AddEvent(ctx, "#1", "open", "", "zara", true); err != nil {
		t.Fatalf("add event: %v", err)
	}

	events, err := client.GetEvents(ctx, "#1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if !events["open"][0].CreatedOn.Equal(fixed) {
		t.Fatalf("created_on did not round-trip: %v", events["open"][0].CreatedOn)
	}
}
