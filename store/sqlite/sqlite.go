// Package sqlite registers the "sqlite" archive backend, backed by the
// pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"

	_ "modernc.org/sqlite"

	"kastelo.dev/annex/store"
)

var dialect = store.Dialect{
	SerialKey: "INTEGER PRIMARY KEY AUTOINCREMENT",
}

func init() {
	store.Register("sqlite", Open)
}

func Open(ctx context.Context, cfg store.Config) (store.Archive, error) {
	db, err := store.OpenDB(ctx, "sqlite", cfg.DSN, dialect)
	if err != nil {
		return nil, err
	}
	return db, nil
}
