package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5"

	"eventcraft/internal/event"
)

func (c *Client) GetEvents(ctx context.Context, objectID string) (map[string][]event.Binding, error) {
	query := `
	SELECT object_id, event_name, position, code, author, created_on, updated_on, valid
	FROM bindings
	WHERE object_id = $1
	ORDER BY event_name, position
	`

	rows, err := c.pool.Query(ctx, query, objectID)
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
	var binding event.Binding
	err := c.withListLock(ctx, objectID, eventName, func(tx pgx.Tx) error {
		var position int
		row := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM bindings WHERE object_id = $1 AND event_name = $2`,
			objectID, eventName)
		if err := row.Scan(&position); err != nil {
			return err
		}

		createdOn := time.Now().UTC()
		_, err := tx.Exec(ctx, `
			INSERT INTO bindings (object_id, event_name, position, code, author, created_on, valid)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			objectID, eventName, position, code, author, createdOn, valid)
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
	var binding event.Binding
	err := c.withListLock(ctx, objectID, eventName, func(tx pgx.Tx) error {
		var id int64
		var createdOn time.Time
		row := tx.QueryRow(ctx,
			`SELECT id, created_on FROM bindings WHERE object_id = $1 AND event_name = $2 AND position = $3`,
			objectID, eventName, index)
		if err := row.Scan(&id, &createdOn); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.outOfRange(ctx, tx, objectID, eventName, index)
			}
			return err
		}

		updatedOn := time.Now().UTC()
		_, err := tx.Exec(ctx,
			`UPDATE bindings SET code = $1, author = $2, updated_on = $3, valid = $4 WHERE id = $5`,
			code, author, updatedOn, valid, id)
		if err != nil {
			return err
		}

		binding = event.Binding{
			Object:    objectID,
			EventName: eventName,
			Position:  index,
			Code:      code,
			Author:    author,
			CreatedOn: createdOn,
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
	err := c.withListLock(ctx, objectID, eventName, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM bindings WHERE object_id = $1 AND event_name = $2 AND position = $3`,
			objectID, eventName, index)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return c.outOfRange(ctx, tx, objectID, eventName, index)
		}

		_, err = tx.Exec(ctx,
			`UPDATE bindings SET position = position - 1 WHERE object_id = $1 AND event_name = $2 AND position > $3`,
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
	WHERE NOT valid
	ORDER BY object_id, event_name, position
	`

	rows, err := c.pool.Query(ctx, query)
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

// withListLock runs fn inside a transaction holding an advisory lock on
// the (object, event name) list, so concurrent mutations of the same list
// cannot interleave and compute the same position.
func (c *Client) withListLock(ctx context.Context, objectID, eventName string, fn func(tx pgx.Tx) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, listLockKey(objectID, eventName)); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func listLockKey(objectID, eventName string) int64 {
	h := fnv.New64a()
	h.Write([]byte(objectID))
	h.Write([]byte{0})
	h.Write([]byte(eventName))
	return int64(h.Sum64())
}

func (c *Client) outOfRange(ctx context.Context, tx pgx.Tx, objectID, eventName string, index int) error {
	var length int
	row := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bindings WHERE object_id = $1 AND event_name = $2`,
		objectID, eventName)
	if err := row.Scan(&length); err != nil {
		return err
	}
	return &event.OutOfRangeError{Object: objectID, EventName: eventName, Index: index, Length: length}
}

func scanBinding(rows pgx.Rows) (event.Binding, error) {
	var b event.Binding
	var updatedOn *time.Time
	if err := rows.Scan(&b.Object, &b.EventName, &b.Position, &b.Code, &b.Author, &b.CreatedOn, &updatedOn, &b.Valid); err != nil {
		return event.Binding{}, err
	}
	b.UpdatedOn = updatedOn
	return b, nil
}
