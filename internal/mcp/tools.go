package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"eventcraft/internal/event"
)

type ListEventTypesInput struct {
	User   string `json:"user" jsonschema:"acting user name"`
	Object string `json:"object" jsonschema:"object name or id"`
}

type ListEventsInput struct {
	User   string `json:"user" jsonschema:"acting user name"`
	Object string `json:"object" jsonschema:"object name or id"`
	Event  string `json:"event" jsonschema:"event name"`
}

type ShowEventInput struct {
	User    string `json:"user" jsonschema:"acting user name"`
	Object  string `json:"object" jsonschema:"object name or id"`
	Event   string `json:"event" jsonschema:"event name"`
	Ordinal string `json:"ordinal,omitempty" jsonschema:"1-based binding ordinal, defaults to 1"`
}

type PendingEventsInput struct {
	User string `json:"user" jsonschema:"acting user name"`
}

type AcceptEventInput struct {
	User    string `json:"user" jsonschema:"acting user name"`
	Object  string `json:"object" jsonschema:"object name or id"`
	Event   string `json:"event" jsonschema:"event name"`
	Ordinal string `json:"ordinal,omitempty" jsonschema:"1-based binding ordinal, defaults to 1"`
}

type TypeSummaryOutput struct {
	Name        string `json:"name"`
	Signature   string `json:"signature,omitempty"`
	Bindings    int    `json:"bindings"`
	Lines       int    `json:"lines"`
	Description string `json:"description,omitempty"`
	Orphaned    bool   `json:"orphaned,omitempty"`
}

type ListEventTypesOutput struct {
	Types []TypeSummaryOutput `json:"types"`
}

type BindingRowOutput struct {
	Ordinal int    `json:"ordinal"`
	Author  string `json:"author"`
	Updated string `json:"updated"`
	Valid   *bool  `json:"valid,omitempty"`
}

type ListEventsOutput struct {
	Bindings []BindingRowOutput `json:"bindings"`
}

type ShowEventOutput struct {
	Object    string `json:"object"`
	Event     string `json:"event"`
	Ordinal   int    `json:"ordinal"`
	Signature string `json:"signature,omitempty"`
	Author    string `json:"author"`
	Valid     bool   `json:"valid"`
	Code      string `json:"code"`
}

type PendingRowOutput struct {
	Object  string `json:"object"`
	Event   string `json:"event"`
	Ordinal int    `json:"ordinal"`
	Author  string `json:"author"`
	Updated string `json:"updated"`
}

type PendingEventsOutput struct {
	Pending []PendingRowOutput `json:"pending"`
}

type AcceptEventOutput struct {
	Object  string `json:"object"`
	Event   string `json:"event"`
	Ordinal int    `json:"ordinal"`
	Valid   bool   `json:"valid"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_event_types",
		Description: "List the event types of an object with binding counts",
	}, s.handleListEventTypes)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_events",
		Description: "List the bindings under one event name of an object",
	}, s.handleListEvents)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "show_event",
		Description: "Show the code of one event binding",
	}, s.handleShowEvent)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "pending_events",
		Description: "List the bindings awaiting validation",
	}, s.handlePendingEvents)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "accept_event",
		Description: "Accept a pending binding so it may run",
	}, s.handleAcceptEvent)
}

func (s *Server) handleListEventTypes(ctx context.Context, req *sdk.CallToolRequest, input ListEventTypesInput) (*sdk.CallToolResult, ListEventTypesOutput, error) {
	obj, err := s.resolveObject(input.User, input.Object)
	if err != nil {
		return nil, ListEventTypesOutput{}, err
	}

	rows, err := s.svc.Overview(ctx, input.User, obj)
	if err != nil {
		return nil, ListEventTypesOutput{}, err
	}

	output := make([]TypeSummaryOutput, 0, len(rows))
	for _, row := range rows {
		output = append(output, TypeSummaryOutput{
			Name:        row.Name,
			Signature:   row.Signature,
			Bindings:    row.Count,
			Lines:       row.Lines,
			Description: row.Description,
			Orphaned:    row.Orphaned,
		})
	}
	return nil, ListEventTypesOutput{Types: output}, nil
}

func (s *Server) handleListEvents(ctx context.Context, req *sdk.CallToolRequest, input ListEventsInput) (*sdk.CallToolResult, ListEventsOutput, error) {
	obj, err := s.resolveObject(input.User, input.Object)
	if err != nil {
		return nil, ListEventsOutput{}, err
	}
	if input.Event == "" {
		return nil, ListEventsOutput{}, fmt.Errorf("event is required")
	}

	list, err := s.svc.ListBindings(ctx, input.User, obj, input.Event)
	if err != nil {
		return nil, ListEventsOutput{}, err
	}

	output := make([]BindingRowOutput, 0, len(list.Rows))
	for _, row := range list.Rows {
		out := BindingRowOutput{
			Ordinal: row.Ordinal,
			Author:  row.Author,
			Updated: row.Updated,
		}
		if list.ShowValidity {
			valid := row.Valid
			out.Valid = &valid
		}
		output = append(output, out)
	}
	return nil, ListEventsOutput{Bindings: output}, nil
}

func (s *Server) handleShowEvent(ctx context.Context, req *sdk.CallToolRequest, input ShowEventInput) (*sdk.CallToolResult, ShowEventOutput, error) {
	obj, err := s.resolveObject(input.User, input.Object)
	if err != nil {
		return nil, ShowEventOutput{}, err
	}
	if input.Event == "" {
		return nil, ShowEventOutput{}, fmt.Errorf("event is required")
	}

	binding, info, err := s.svc.Show(ctx, input.User, obj, input.Event, input.Ordinal)
	if err != nil {
		return nil, ShowEventOutput{}, err
	}
	return nil, ShowEventOutput{
		Object:    obj.String(),
		Event:     binding.EventName,
		Ordinal:   binding.Position + 1,
		Signature: info.Signature,
		Author:    binding.Author,
		Valid:     binding.Valid,
		Code:      binding.Code,
	}, nil
}

func (s *Server) handlePendingEvents(ctx context.Context, req *sdk.CallToolRequest, input PendingEventsInput) (*sdk.CallToolResult, PendingEventsOutput, error) {
	rows, err := s.svc.Pending(ctx, input.User)
	if err != nil {
		return nil, PendingEventsOutput{}, err
	}

	output := make([]PendingRowOutput, 0, len(rows))
	for _, row := range rows {
		output = append(output, PendingRowOutput{
			Object:  row.Object,
			Event:   row.EventName,
			Ordinal: row.Ordinal,
			Author:  row.Author,
			Updated: row.Updated,
		})
	}
	return nil, PendingEventsOutput{Pending: output}, nil
}

func (s *Server) handleAcceptEvent(ctx context.Context, req *sdk.CallToolRequest, input AcceptEventInput) (*sdk.CallToolResult, AcceptEventOutput, error) {
	obj, err := s.resolveObject(input.User, input.Object)
	if err != nil {
		return nil, AcceptEventOutput{}, err
	}
	if input.Event == "" {
		return nil, AcceptEventOutput{}, fmt.Errorf("event is required")
	}

	binding, err := s.svc.Accept(ctx, input.User, obj, input.Event, input.Ordinal)
	if err != nil {
		return nil, AcceptEventOutput{}, err
	}
	return nil, AcceptEventOutput{
		Object:  obj.String(),
		Event:   binding.EventName,
		Ordinal: binding.Position + 1,
		Valid:   binding.Valid,
	}, nil
}

func (s *Server) resolveObject(user, nameOrID string) (event.ObjectRef, error) {
	if user == "" {
		return event.ObjectRef{}, fmt.Errorf("user is required")
	}
	if nameOrID == "" {
		return event.ObjectRef{}, fmt.Errorf("object is required")
	}
	obj, ok := s.resolve.Resolve(nameOrID)
	if !ok {
		return event.ObjectRef{}, fmt.Errorf("object not found: %s", nameOrID)
	}
	return obj, nil
}
