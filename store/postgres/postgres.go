// Package postgres registers the "postgres" archive backend.
package postgres

import (
	"context"
	"strconv"

	_ "github.com/lib/pq"

	"kastelo.dev/annex/store"
)

var dialect = store.Dialect{
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	SerialKey:   "BIGSERIAL PRIMARY KEY",
}

func init() {
	store.Register("postgres", Open)
}

func Open(ctx context.Context, cfg store.Config) (store.Archive, error) {
	db, err := store.OpenDB(ctx, "postgres", cfg.DSN, dialect)
	if err != nil {
		return nil, err
	}
	return db, nil
}
