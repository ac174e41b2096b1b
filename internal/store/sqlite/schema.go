package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS bindings (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		object_id  TEXT NOT NULL,
		event_name TEXT NOT NULL,
		position   INTEGER NOT NULL,
		code       TEXT NOT NULL DEFAULT '',
		author     TEXT NOT NULL DEFAULT '',
		created_on TEXT NOT NULL,
		updated_on TEXT,
		valid      INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_bindings_list ON bindings (object_id, event_name, position);
	CREATE INDEX IF NOT EXISTS idx_bindings_valid ON bindings (valid);
	`

	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}
	return nil
}
