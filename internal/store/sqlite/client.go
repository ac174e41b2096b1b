package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"eventcraft/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Client)(nil)

// Client is the sqlite-backed event store. A single mutex serializes
// mutations: sqlite allows one writer at a time anyway, and holding the
// lock across the whole transaction keeps position assignment race-free
// without relying on busy-retry loops.
type Client struct {
	db *sql.DB
	mu sync.Mutex

	now func() time.Time
}

func New(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// An in-memory database lives and dies with its connection; cap the
	// pool at one so every query sees the same database.
	if driverDSN == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	return &Client{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
