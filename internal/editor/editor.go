// Package editor defines the text-editing capability the authoring
// workflow hands its hooks to. The workflow never talks to a terminal;
// it only supplies load/save/quit callbacks and receives buffers back.
package editor

import "context"

// Hooks are the three callbacks an editor drives. Load supplies the
// initial buffer. Save commits the full buffer and may be called any
// number of times before Quit; a save failure leaves the session open so
// the user can fix the buffer. Quit is called exactly once, when the
// user leaves the editor, saved or not.
type Hooks struct {
	Load func() string
	Save func(ctx context.Context, text string) error
	Quit func()
}

// Editor opens an interactive buffer session labelled by key and drives
// the hooks until the user is done.
type Editor interface {
	Run(ctx context.Context, key string, hooks Hooks) error
}
