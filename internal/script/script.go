// Package script checks handler source before it reaches the store. Code is
// compiled with a throwaway Lua state and never run, so a check can not
// touch game state.
package script

import (
	"fmt"
	"strings"

	lua "github.com/Shopify/go-lua"
)

// SyntaxError reports handler code that does not compile.
type SyntaxError struct {
	Chunk string
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("handler %s does not compile: %v", e.Chunk, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Check compiles code as a text chunk named after chunk. Empty code is a
// valid inert handler and passes without spinning up a state.
func Check(chunk, code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}

	state := lua.NewState()
	if err := state.Load(strings.NewReader(code), "@"+chunk, "t"); err != nil {
		return &SyntaxError{Chunk: chunk, Err: err}
	}
	return nil
}
