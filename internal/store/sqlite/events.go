package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventcraft/internal/event"
)

const timeLayout = time.RFC3339Nano

func (c *Client) GetEvents(ctx context.Context, objectID string) (map[string][]event.Binding, error) {
	query := `
	SELECT object_id, event_name, position, code, author, created_on, updated_on, valid
	FROM bindings
	WHERE object_id = ?
	ORDER BY event_name, position
	`

	rows, err := c.db.QueryContext(ctx, query, objectID)
	if err != nil {
		return nil, fmt.Errorf("getting events: %w", err)
	}
	defer rows.Close()

	events := make(map[string][]event.Binding)
	for rows.Next() {
		binding, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("getting events: %w", err)
		}
		events[binding.EventName] = append(events[binding.EventName], binding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("getting events: %w", err)
	}
	return events, nil
}

func (c *Client) AddEvent(ctx context.Context, objectID, eventName, code, author string, valid bool) (event.Binding, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var binding event.Binding
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		var position int
		row := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bindings WHERE object_id = ? AND event_name = ?`,
			objectID, eventName)
		if err := row.Scan(&position); err != nil {
			return err
		}

		createdOn := c.now()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bindings (object_id, event_name, position, code, author, created_on, valid)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			objectID, eventName, position, code, author, createdOn.Format(timeLayout), boolToInt(valid))
		if err != nil {
			return err
		}

		binding = event.Binding{
			Object:    objectID,
			EventName: eventName,
			Position:  position,
			Code:      code,
			Author:    author,
			CreatedOn: createdOn,
			Valid:     valid,
		}
		return nil
	})
	if err != nil {
		return event.Binding{}, fmt.Errorf("adding event: %w", err)
	}
	return binding, nil
}

func (c *Client) EditEvent(ctx context.Context, objectID, eventName string, index int, code, author string, valid bool) (event.Binding, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var binding event.Binding
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		var createdOn string
		row := tx.QueryRowContext(ctx,
			`SELECT id, created_on FROM bindings WHERE object_id = ? AND event_name = ? AND position = ?`,
			objectID, eventName, index)
		if err := row.Scan(&id, &createdOn); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.outOfRange(ctx, tx, objectID, eventName, index)
			}
			return err
		}

		updatedOn := c.now()
		_, err := tx.ExecContext(ctx,
			`UPDATE bindings SET code = ?, author = ?, updated_on = ?, valid = ? WHERE id = ?`,
			code, author, updatedOn.Format(timeLayout), boolToInt(valid), id)
		if err != nil {
			return err
		}

		created, err := time.Parse(timeLayout, createdOn)
		if err != nil {
			return fmt.Errorf("parsing created_on: %w", err)
		}
		binding = event.Binding{
			Object:    objectID,
			EventName: eventName,
			Position:  index,
			Code:      code,
			Author:    author,
			CreatedOn: created,
			UpdatedOn: &updatedOn,
			Valid:     valid,
		}
		return nil
	})
	if err != nil {
		return event.Binding{}, fmt.Errorf("editing event: %w", err)
	}
	return binding, nil
}

func (c *Client) DeleteEvent(ctx context.Context, objectID, eventName string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM bindings WHERE object_id = ? AND event_name = ? AND position = ?`,
			objectID, eventName, index)
		if err != nil {
			return err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if deleted == 0 {
			return c.outOfRange(ctx, tx, objectID, eventName, index)
		}

		// Repack so positions stay dense.
		_, err = tx.ExecContext(ctx,
			`UPDATE bindings SET position = position - 1 WHERE object_id = ? AND event_name = ? AND position > ?`,
			objectID, eventName, index)
		return err
	})
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func (c *Client) ListPending(ctx context.Context) ([]event.Binding, error) {
	query := `
	SELECT object_id, event_name, position, code, author, created_on, updated_on, valid
	FROM bindings
	WHERE valid = 0
	ORDER BY object_id, event_name, position
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pending events: %w", err)
	}
	defer rows.Close()

	var pending []event.Binding
	for rows.Next() {
		binding, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("listing pending events: %w", err)
		}
		pending = append(pending, binding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing pending events: %w", err)
	}
	return pending, nil
}

func (c *Client) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// outOfRange builds the typed addressing failure, reading the current list
// length so the caller can report it.
func (c *Client) outOfRange(ctx context.Context, tx *sql.Tx, objectID, eventName string, index int) error {
	var length int
	row := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bindings WHERE object_id = ? AND event_name = ?`,
		objectID, eventName)
	if err := row.Scan(&length); err != nil {
		return err
	}
	return &event.OutOfRangeError{Object: objectID, EventName: eventName, Index: index, Length: length}
}

func scanBinding(rows *sql.Rows) (event.Binding, error) {
	var b event.Binding
	var createdOn string
	var updatedOn sql.NullString
	var valid int
	if err := rows.Scan(&b.Object, &b.EventName, &b.Position, &b.Code, &b.Author, &createdOn, &updatedOn, &valid); err != nil {
		return event.Binding{}, err
	}

	created, err := time.Parse(timeLayout, createdOn)
	if err != nil {
		return event.Binding{}, fmt.Errorf("parsing created_on: %w", err)
	}
	b.CreatedOn = created

	if updatedOn.Valid {
		updated, err := time.Parse(timeLayout, updatedOn.String)
		if err != nil {
			return event.Binding{}, fmt.Errorf("parsing updated_on: %w", err)
		}
		b.UpdatedOn = &updated
	}

	b.Valid = valid != 0
	return b, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
