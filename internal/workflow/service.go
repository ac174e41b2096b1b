// Package workflow implements the event authoring lifecycle: listing,
// creating, editing, deleting, and validating bindings, gated by the
// caller's permission tiers. It owns no user-facing text; failures come
// back as typed errors for the command surface to render.
package workflow

import (
	"context"
	"strconv"
	"strings"
	"time"

	"eventcraft/internal/event"
	"eventcraft/internal/perm"
	"eventcraft/internal/registry"
	"eventcraft/internal/script"
	"eventcraft/internal/session"
	"eventcraft/internal/store"
)

type Service struct {
	store    store.Store
	registry registry.Registry
	perms    perm.Checker
	sessions *session.Manager

	now func() time.Time
}

func New(st store.Store, reg registry.Registry, perms perm.Checker) *Service {
	return &Service{
		store:    st,
		registry: reg,
		perms:    perms,
		sessions: session.NewManager(),
		now:      time.Now,
	}
}

// Sessions exposes the per-user session manager, mainly so the command
// surface can report whether an editor is already open.
func (s *Service) Sessions() *session.Manager { return s.sessions }

// IsValidator reports whether the caller may see validity and accept
// pending bindings.
func (s *Service) IsValidator(caller string) bool {
	return s.perms.Has(caller, perm.TierValidate)
}

// GetEvents returns all bindings on the object, grouped by event name.
func (s *Service) GetEvents(ctx context.Context, obj event.ObjectRef) (map[string][]event.Binding, error) {
	return s.store.GetEvents(ctx, obj.ID)
}

// GetEventTypes returns the event types declared for the object's class.
func (s *Service) GetEventTypes(obj event.ObjectRef) map[string]event.TypeInfo {
	return s.registry.Types(obj.Class)
}

// BeginAdd opens an authoring session for a brand-new binding. Nothing is
// written to the store until the first save.
func (s *Service) BeginAdd(ctx context.Context, caller string, obj event.ObjectRef, eventName string) (*session.Session, error) {
	if !s.perms.Has(caller, perm.TierBuild) {
		return nil, event.ErrPermissionDenied
	}

	eventName = strings.ToLower(eventName)
	info, ok := s.registry.Types(obj.Class)[eventName]
	if !ok {
		return nil, &event.UnknownEventTypeError{Object: obj.String(), Class: obj.Class, EventName: eventName}
	}

	sess := &session.Session{
		Object:      obj,
		EventName:   eventName,
		Description: info.Description,
	}
	s.sessions.Open(caller, sess)
	return sess, nil
}

// BeginEdit opens an authoring session for the binding at the given
// 1-based ordinal, snapshotting its current code for the editor to load.
func (s *Service) BeginEdit(ctx context.Context, caller string, obj event.ObjectRef, eventName, ordinal string) (*session.Session, error) {
	if !s.perms.Has(caller, perm.TierBuild) {
		return nil, event.ErrPermissionDenied
	}

	eventName = strings.ToLower(eventName)
	info, ok := s.registry.Types(obj.Class)[eventName]
	if !ok {
		return nil, &event.UnknownEventTypeError{Object: obj.String(), Class: obj.Class, EventName: eventName}
	}

	binding, index, err := s.resolveBinding(ctx, obj, eventName, ordinal)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		Object:      obj,
		EventName:   eventName,
		Index:       &index,
		Code:        binding.Code,
		Description: info.Description,
	}
	s.sessions.Open(caller, sess)
	return sess, nil
}

// Save commits the author's open session with the given code. The valid
// flag is recomputed from the author's bypass-validation tier on every
// save, so an edit by an untrusted author re-enters the review queue no
// matter what the binding's validity was before.
func (s *Service) Save(ctx context.Context, author, code string) (event.Binding, error) {
	sess := s.sessions.Get(author)
	if sess == nil || sess.Object.ID == "" || sess.EventName == "" {
		return event.Binding{}, event.ErrIncompleteSession
	}

	if err := script.Check(sess.Object.ID+"."+sess.EventName, code); err != nil {
		return event.Binding{}, err
	}

	valid := s.perms.Has(author, perm.TierBypassValidation)

	if sess.Index == nil {
		binding, err := s.store.AddEvent(ctx, sess.Object.ID, sess.EventName, code, author, valid)
		if err != nil {
			return event.Binding{}, err
		}
		// Later saves in this session overwrite the same binding
		// instead of appending another one.
		index := binding.Position
		sess.Index = &index
		return binding, nil
	}

	return s.store.EditEvent(ctx, sess.Object.ID, sess.EventName, *sess.Index, code, author, valid)
}

// Quit discards the author's open session without touching the store.
func (s *Service) Quit(author string) {
	s.sessions.Clear(author)
}

// Delete removes the binding at the given 1-based ordinal and repacks the
// remaining ordinals. Deletion needs only base build access; orphaned
// bindings whose type left the registry can still be deleted.
func (s *Service) Delete(ctx context.Context, caller string, obj event.ObjectRef, eventName, ordinal string) error {
	if !s.perms.Has(caller, perm.TierBuild) {
		return event.ErrPermissionDenied
	}

	eventName = strings.ToLower(eventName)
	_, index, err := s.resolveBinding(ctx, obj, eventName, ordinal)
	if err != nil {
		return err
	}
	return s.store.DeleteEvent(ctx, obj.ID, eventName, index)
}

// Accept marks a pending binding as authorized to run. Code and author are
// written back unchanged; only the validity flip and the review time move.
func (s *Service) Accept(ctx context.Context, caller string, obj event.ObjectRef, eventName, ordinal string) (event.Binding, error) {
	if !s.perms.Has(caller, perm.TierValidate) {
		return event.Binding{}, event.ErrPermissionDenied
	}

	eventName = strings.ToLower(eventName)
	binding, index, err := s.resolveBinding(ctx, obj, eventName, ordinal)
	if err != nil {
		return event.Binding{}, err
	}
	return s.store.EditEvent(ctx, obj.ID, eventName, index, binding.Code, binding.Author, true)
}

// resolveBinding turns a free-text 1-based ordinal into the addressed
// binding. An empty ordinal means 1. Unparsable ordinals, ordinals below
// one, and ordinals past the end of the list all collapse into the same
// "nothing there" failure as an unknown event name.
func (s *Service) resolveBinding(ctx context.Context, obj event.ObjectRef, eventName, ordinal string) (event.Binding, int, error) {
	events, err := s.store.GetEvents(ctx, obj.ID)
	if err != nil {
		return event.Binding{}, 0, err
	}

	list := events[eventName]
	if len(list) == 0 {
		return event.Binding{}, 0, &event.UnknownBindingError{Object: obj.String(), EventName: eventName}
	}

	ordinal = strings.TrimSpace(ordinal)
	if ordinal == "" {
		ordinal = "1"
	}
	n, err := strconv.Atoi(ordinal)
	if err != nil || n < 1 || n > len(list) {
		return event.Binding{}, 0, &event.UnknownBindingError{Object: obj.String(), EventName: eventName, Ordinal: ordinal}
	}
	return list[n-1], n - 1, nil
}
