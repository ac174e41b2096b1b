package workflow

import (
	"context"

	"eventcraft/internal/editor"
)

// EditorHooks binds an editor to the author's open session. Load never
// touches the store: it hands back the snapshot taken when the session
// opened, or an empty buffer for a new binding.
func (s *Service) EditorHooks(author string) editor.Hooks {
	return editor.Hooks{
		Load: func() string {
			if sess := s.sessions.Get(author); sess != nil {
				return sess.Code
			}
			return ""
		},
		Save: func(ctx context.Context, text string) error {
			_, err := s.Save(ctx, author, text)
			return err
		},
		Quit: func() {
			s.Quit(author)
		},
	}
}
