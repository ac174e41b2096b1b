package workflow

import (
	"context"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"eventcraft/internal/event"
	"eventcraft/internal/perm"
)

// unknownLabel stands in for an author or timestamp that is gone.
const unknownLabel = "unknown"

// TypeSummary is one row of the per-object overview: an event type and
// what is bound under it. Orphaned marks bindings whose type is no longer
// in the registry; they stay listable and deletable but not editable.
type TypeSummary struct {
	Name        string
	Signature   string
	Count       int
	Lines       int
	Description string
	Orphaned    bool
}

// BindingRow is one row of a per-event listing, addressed by the 1-based
// ordinal shown to the user.
type BindingRow struct {
	Ordinal int
	Author  string
	Updated string
	Valid   bool
}

// BindingList carries the rows plus whether the validity column may be
// shown; only validators get to see it.
type BindingList struct {
	Rows         []BindingRow
	ShowValidity bool
}

// PendingRow is one entry of the validation queue.
type PendingRow struct {
	Object    string
	EventName string
	Ordinal   int
	Author    string
	Updated   string
}

// Overview summarizes, per event type on the object's class, how many
// bindings exist and how much code they hold. Rows are sorted by type
// name ascending; bindings under names the registry no longer declares
// are appended as orphaned rows.
func (s *Service) Overview(ctx context.Context, caller string, obj event.ObjectRef) ([]TypeSummary, error) {
	if !s.perms.Has(caller, perm.TierBuild) {
		return nil, event.ErrPermissionDenied
	}

	events, err := s.store.GetEvents(ctx, obj.ID)
	if err != nil {
		return nil, err
	}
	types := s.registry.Types(obj.Class)

	rows := make([]TypeSummary, 0, len(types))
	for name, info := range types {
		rows = append(rows, TypeSummary{
			Name:        name,
			Signature:   info.Signature,
			Count:       len(events[name]),
			Lines:       totalLines(events[name]),
			Description: firstLine(info.Description),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	var orphans []TypeSummary
	for name, list := range events {
		if _, ok := types[name]; ok {
			continue
		}
		orphans = append(orphans, TypeSummary{
			Name:     name,
			Count:    len(list),
			Lines:    totalLines(list),
			Orphaned: true,
		})
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Name < orphans[j].Name })

	return append(rows, orphans...), nil
}

// ListBindings lists the bindings under one event name, in list order.
// An unknown name or a name with no bindings is the uniform "nothing
// there" failure.
func (s *Service) ListBindings(ctx context.Context, caller string, obj event.ObjectRef, eventName string) (BindingList, error) {
	if !s.perms.Has(caller, perm.TierBuild) {
		return BindingList{}, event.ErrPermissionDenied
	}

	eventName = strings.ToLower(eventName)
	events, err := s.store.GetEvents(ctx, obj.ID)
	if err != nil {
		return BindingList{}, err
	}

	list := events[eventName]
	if len(list) == 0 {
		return BindingList{}, &event.UnknownBindingError{Object: obj.String(), EventName: eventName}
	}

	result := BindingList{ShowValidity: s.perms.Has(caller, perm.TierValidate)}
	for i, b := range list {
		result.Rows = append(result.Rows, BindingRow{
			Ordinal: i + 1,
			Author:  authorLabel(b),
			Updated: s.updatedLabel(b),
			Valid:   b.Valid,
		})
	}
	return result, nil
}

// Show returns the full binding at the given ordinal together with its
// type info, for displaying the code itself. Orphaned bindings come back
// with empty type info.
func (s *Service) Show(ctx context.Context, caller string, obj event.ObjectRef, eventName, ordinal string) (event.Binding, event.TypeInfo, error) {
	if !s.perms.Has(caller, perm.TierBuild) {
		return event.Binding{}, event.TypeInfo{}, event.ErrPermissionDenied
	}

	eventName = strings.ToLower(eventName)
	binding, _, err := s.resolveBinding(ctx, obj, eventName, ordinal)
	if err != nil {
		return event.Binding{}, event.TypeInfo{}, err
	}
	return binding, s.registry.Types(obj.Class)[eventName], nil
}

// Pending lists the validation queue across all objects.
func (s *Service) Pending(ctx context.Context, caller string) ([]PendingRow, error) {
	if !s.perms.Has(caller, perm.TierValidate) {
		return nil, event.ErrPermissionDenied
	}

	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]PendingRow, 0, len(pending))
	for _, b := range pending {
		rows = append(rows, PendingRow{
			Object:    b.Object,
			EventName: b.EventName,
			Ordinal:   b.Position + 1,
			Author:    authorLabel(b),
			Updated:   s.updatedLabel(b),
		})
	}
	return rows, nil
}

func (s *Service) updatedLabel(b event.Binding) string {
	touched := b.Touched()
	if touched.IsZero() {
		return unknownLabel
	}
	return humanize.RelTime(touched, s.now(), "ago", "from now")
}

func authorLabel(b event.Binding) string {
	if b.Author == "" {
		return unknownLabel
	}
	return b.Author
}

func totalLines(list []event.Binding) int {
	lines := 0
	for _, b := range list {
		lines += b.Lines()
	}
	return lines
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
