package main

import (
	"strings"

	"eventcraft/internal/config"
	"eventcraft/internal/event"
)

// rosterResolver resolves object names and ids against the config roster.
// Ids match exactly; names match case-insensitively.
type rosterResolver struct {
	byID   map[string]event.ObjectRef
	byName map[string]event.ObjectRef
}

func newRosterResolver(objects []config.ObjectEntry) *rosterResolver {
	r := &rosterResolver{
		byID:   make(map[string]event.ObjectRef),
		byName: make(map[string]event.ObjectRef),
	}
	for _, o := range objects {
		ref := event.ObjectRef{ID: o.ID, Class: o.Class, Name: o.Name}
		r.byID[o.ID] = ref
		if o.Name != "" {
			r.byName[strings.ToLower(o.Name)] = ref
		}
	}
	return r
}

func (r *rosterResolver) Resolve(nameOrID string) (event.ObjectRef, bool) {
	if obj, ok := r.byID[nameOrID]; ok {
		return obj, true
	}
	obj, ok := r.byName[strings.ToLower(nameOrID)]
	return obj, ok
}
