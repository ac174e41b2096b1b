package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

var _ Editor = (*Terminal)(nil)

// Terminal is a line-oriented editor over a reader/writer pair, in the
// spirit of ed: typed lines append to the buffer, commands start with a
// colon. :w saves, :q quits without saving, :wq saves and quits, :p
// prints the buffer, :c clears it.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func (t *Terminal) Run(ctx context.Context, key string, hooks Hooks) error {
	defer hooks.Quit()

	var lines []string
	if initial := hooks.Load(); initial != "" {
		lines = strings.Split(strings.TrimSuffix(initial, "\n"), "\n")
	}

	fmt.Fprintf(t.Out, "Editing %s. Type :w to save, :q to abort, :wq to save and quit.\n", key)
	t.print(lines)

	scanner := bufio.NewScanner(t.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case ":q":
			fmt.Fprintln(t.Out, "Aborted, buffer discarded.")
			return nil
		case ":w", ":wq":
			if err := hooks.Save(ctx, buffer(lines)); err != nil {
				fmt.Fprintf(t.Out, "Not saved: %v\n", err)
				continue
			}
			fmt.Fprintln(t.Out, "Saved.")
			if strings.TrimSpace(line) == ":wq" {
				return nil
			}
		case ":p":
			t.print(lines)
		case ":c":
			lines = nil
			fmt.Fprintln(t.Out, "Buffer cleared.")
		default:
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading editor input: %w", err)
	}
	// Input ended without :q or :wq; treat it like an abort.
	fmt.Fprintln(t.Out, "Input closed, buffer discarded.")
	return nil
}

func (t *Terminal) print(lines []string) {
	if len(lines) == 0 {
		fmt.Fprintln(t.Out, "(empty buffer)")
		return
	}
	for i, line := range lines {
		fmt.Fprintf(t.Out, "%3d %s\n", i+1, line)
	}
}

func buffer(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
