package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS bindings (
		id         BIGSERIAL PRIMARY KEY,
		object_id  TEXT NOT NULL,
		event_name TEXT NOT NULL,
		position   INTEGER NOT NULL,
		code       TEXT NOT NULL DEFAULT '',
		author     TEXT NOT NULL DEFAULT '',
		created_on TIMESTAMPTZ NOT NULL,
		updated_on TIMESTAMPTZ,
		valid      BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_bindings_list ON bindings (object_id, event_name, position);
	CREATE INDEX IF NOT EXISTS idx_bindings_valid ON bindings (valid);
	`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring postgres schema: %w", err)
	}
	return nil
}
