package mcp

import (
	"context"
	"testing"

	"eventcraft/internal/event"
	"eventcraft/internal/perm"
	"eventcraft/internal/store/sqlite"
	"eventcraft/internal/workflow"
)

type mapResolver map[string]event.ObjectRef

func (r mapResolver) Resolve(nameOrID string) (event.ObjectRef, bool) {
	obj, ok := r[nameOrID]
	return obj, ok
}

type mapRegistry map[string]map[string]event.TypeInfo

func (r mapRegistry) Types(class string) map[string]event.TypeInfo {
	types := make(map[string]event.TypeInfo)
	for name, info := range r[class] {
		types[name] = info
	}
	return types
}

func testServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close(ctx) })
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}

	reg := mapRegistry{
		"door": {
			"open": {Signature: "character, door", Description: "Fired when the door is opened."},
		},
	}
	grants := perm.Grants{
		perm.TierBuild:            {"zara", "bob", "vala"},
		perm.TierBypassValidation: {"zara"},
		perm.TierValidate:         {"vala"},
	}
	svc := workflow.New(st, reg, grants)

	resolver := mapResolver{
		"door": {ID: "#42", Class: "door", Name: "door"},
		"#42":  {ID: "#42", Class: "door", Name: "door"},
	}
	return NewServer(svc, resolver, "test")
}

func addBinding(t *testing.T, s *Server, author, code string) {
	t.Helper()
	ctx := context.Background()

	obj, _ := s.resolve.Resolve("door")
	if _, err := s.svc.BeginAdd(ctx, author, obj, "open"); err != nil {
		t.Fatalf("begin add: %v", err)
	}
	if _, err := s.svc.Save(ctx, author, code); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.svc.Quit(author)
}

func TestListEventTypes(t *testing.T) {
	s := testServer(t)
	addBinding(t, s, "zara", "a()\nb()")

	_, output, err := s.handleListEventTypes(context.Background(), nil, ListEventTypesInput{User: "zara", Object: "door"})
	if err != nil {
		t.Fatalf("list event types: %v", err)
	}
	if len(output.Types) != 1 {
		t.Fatalf("expected one type, got %+v", output.Types)
	}
	row := output.Types[0]
	if row.Name != "open" || row.Bindings != 1 || row.Lines != 2 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestListEventTypesUnknownObject(t *testing.T) {
	s := testServer(t)

	_, _, err := s.handleListEventTypes(context.Background(), nil, ListEventTypesInput{User: "zara", Object: "teapot"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestListEventsValidityVisibility(t *testing.T) {
	s := testServer(t)
	addBinding(t, s, "bob", "pass()")

	_, asBuilder, err := s.handleListEvents(context.Background(), nil, ListEventsInput{User: "bob", Object: "door", Event: "open"})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if asBuilder.Bindings[0].Valid != nil {
		t.Fatalf("builder should not receive validity")
	}

	_, asValidator, err := s.handleListEvents(context.Background(), nil, ListEventsInput{User: "vala", Object: "door", Event: "open"})
	if err != nil {
		t.Fatalf("list events as validator: %v", err)
	}
	valid := asValidator.Bindings[0].Valid
	if valid == nil || *valid {
		t.Fatalf("validator should see valid=false, got %v", valid)
	}
}

func TestShowEvent(t *testing.T) {
	s := testServer(t)
	addBinding(t, s, "zara", "say('welcome')")

	_, output, err := s.handleShowEvent(context.Background(), nil, ShowEventInput{User: "zara", Object: "#42", Event: "open"})
	if err != nil {
		t.Fatalf("show event: %v", err)
	}
	if output.Code != "say('welcome')" || output.Ordinal != 1 || !output.Valid {
		t.Fatalf("unexpected output: %+v", output)
	}
}

func TestAcceptEventFlow(t *testing.T) {
	s := testServer(t)
	addBinding(t, s, "bob", "pass()")

	_, pending, err := s.handlePendingEvents(context.Background(), nil, PendingEventsInput{User: "vala"})
	if err != nil {
		t.Fatalf("pending events: %v", err)
	}
	if len(pending.Pending) != 1 || pending.Pending[0].Author != "bob" {
		t.Fatalf("unexpected queue: %+v", pending.Pending)
	}

	_, accepted, err := s.handleAcceptEvent(context.Background(), nil, AcceptEventInput{User: "vala", Object: "door", Event: "open", Ordinal: "1"})
	if err != nil {
		t.Fatalf("accept event: %v", err)
	}
	if !accepted.Valid {
		t.Fatalf("expected valid after accept")
	}

	_, pending, err = s.handlePendingEvents(context.Background(), nil, PendingEventsInput{User: "vala"})
	if err != nil {
		t.Fatalf("pending events: %v", err)
	}
	if len(pending.Pending) != 0 {
		t.Fatalf("queue should drain after accept, got %+v", pending.Pending)
	}
}

func TestAcceptEventRequiresValidator(t *testing.T) {
	s := testServer(t)
	addBinding(t, s, "bob", "pass()")

	_, _, err := s.handleAcceptEvent(context.Background(), nil, AcceptEventInput{User: "bob", Object: "door", Event: "open"})
	if err == nil {
		t.Fatalf("expected permission error")
	}
}

func TestInputValidation(t *testing.T) {
	s := testServer(t)

	if _, _, err := s.handleListEvents(context.Background(), nil, ListEventsInput{User: "zara", Object: "door"}); err == nil {
		t.Fatalf("expected missing event error")
	}
	if _, _, err := s.handleListEventTypes(context.Background(), nil, ListEventTypesInput{Object: "door"}); err == nil {
		t.Fatalf("expected missing user error")
	}
}
