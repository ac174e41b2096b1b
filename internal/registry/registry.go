// Package registry exposes the per-class catalogue of event types: which
// named triggers an object class supports, with what call signature, and a
// description shown to authors. The authoring workflow only ever reads it.
package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"eventcraft/internal/event"
)

// Registry answers which event types a given object class declares. Keys of
// the returned map are lowercase event names. A class with no declared
// types yields an empty map, never an error.
type Registry interface {
	Types(class string) map[string]event.TypeInfo
}

type File struct {
	Version int     `yaml:"version"`
	Classes []Class `yaml:"classes"`

	classIndex map[string]*Class
}

type Class struct {
	Name   string      `yaml:"name"`
	Events []EventType `yaml:"events"`
}

type EventType struct {
	Name        string `yaml:"name"`
	Signature   string `yaml:"signature"`
	Description string `yaml:"description"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading event registry: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loading event registry: %w", err)
	}

	if err := validateRegistry(&file); err != nil {
		return nil, fmt.Errorf("loading event registry: %w", err)
	}

	file.classIndex = make(map[string]*Class)
	for i := range file.Classes {
		class := &file.Classes[i]
		file.classIndex[strings.ToLower(class.Name)] = class
	}

	return &file, nil
}

// Types implements Registry. Event names are lowercased so that lookups
// match however the author typed them.
func (f *File) Types(class string) map[string]event.TypeInfo {
	types := make(map[string]event.TypeInfo)
	c, ok := f.classIndex[strings.ToLower(class)]
	if !ok {
		return types
	}
	for _, e := range c.Events {
		types[strings.ToLower(e.Name)] = event.TypeInfo{
			Signature:   e.Signature,
			Description: e.Description,
		}
	}
	return types
}

func validateRegistry(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported version: %d", f.Version)
	}
	if len(f.Classes) == 0 {
		return fmt.Errorf("at least one class is required")
	}

	seenClasses := make(map[string]struct{})
	for i, class := range f.Classes {
		if strings.TrimSpace(class.Name) == "" {
			return fmt.Errorf("class %d name is required", i)
		}
		key := strings.ToLower(class.Name)
		if _, exists := seenClasses[key]; exists {
			return fmt.Errorf("duplicate class name: %s", class.Name)
		}
		seenClasses[key] = struct{}{}

		seenEvents := make(map[string]struct{})
		for j, e := range class.Events {
			if strings.TrimSpace(e.Name) == "" {
				return fmt.Errorf("class %s event %d name is required", class.Name, j)
			}
			if strings.TrimSpace(e.Description) == "" {
				return fmt.Errorf("class %s event %s description is required", class.Name, e.Name)
			}
			eventKey := strings.ToLower(e.Name)
			if _, exists := seenEvents[eventKey]; exists {
				return fmt.Errorf("class %s has duplicate event name: %s", class.Name, e.Name)
			}
			seenEvents[eventKey] = struct{}{}
		}
	}

	return nil
}
