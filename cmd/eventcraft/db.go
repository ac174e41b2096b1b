package main

import (
	"context"
	"fmt"
	"strings"

	"eventcraft/internal/store"
	"eventcraft/internal/store/postgres"
	"eventcraft/internal/store/sqlite"
)

func openStore(ctx context.Context, dsn string) (store.Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN scheme: %s", dsn)
	}
}
