// Package store archives converted documents as snapshots in a SQL
// database. Backends register themselves by kind from their init
// functions; import store/sqlite or store/postgres for the side effect.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"kastelo.dev/annex"
)

var ErrNotFound = errors.New("snapshot not found")

type Config struct {
	Kind string
	DSN  string
}

// Snapshot is one archived document. Document is only populated by
// LoadSnapshot.
type Snapshot struct {
	ID       int64
	Source   string
	TakenAt  time.Time
	Rows     int
	Document *annex.Document
}

type Archive interface {
	// EnsureSchema creates the snapshot tables if they do not exist.
	EnsureSchema(ctx context.Context) error
	SaveSnapshot(ctx context.Context, doc *annex.Document) (int64, error)
	LoadSnapshot(ctx context.Context, id int64) (*Snapshot, error)
	// ListSnapshots returns snapshots newest first, optionally filtered
	// by source.
	ListSnapshots(ctx context.Context, source string) ([]Snapshot, error)
	Close() error
}

type Factory func(ctx context.Context, cfg Config) (Archive, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. It panics if kind is
// empty or already registered.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("store: Register called with empty kind")
	}
	if f == nil {
		panic("store: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("store: factory already registered for kind=%q", kind))
	}
	factories[kind] = f
}

// Kinds lists the registered backend kinds.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func Open(ctx context.Context, cfg Config) (Archive, error) {
	if cfg.Kind == "" {
		return nil, errors.New("store: missing kind")
	}
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("store: unsupported kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}
