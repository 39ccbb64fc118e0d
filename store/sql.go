package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kastelo.dev/annex"
)

// Dialect holds what differs between the SQL backends.
type Dialect struct {
	// Placeholder returns the n'th (1-based) bind parameter.
	Placeholder func(n int) string
	// SerialKey is the column definition of an auto-incrementing
	// primary key.
	SerialKey string
}

// DB is an Archive over database/sql, shared by the backends.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// OpenDB opens and pings a database using a registered database/sql
// driver.
func OpenDB(ctx context.Context, driver, dsn string, dialect Dialect) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db, dialect: dialect}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// query rewrites ? placeholders for the dialect.
func (d *DB) query(q string) string {
	if d.dialect.Placeholder == nil {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString(d.dialect.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id ` + d.dialect.SerialKey + `,
			source TEXT NOT NULL,
			taken_at TEXT NOT NULL,
			row_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_rows (
			snapshot_id BIGINT NOT NULL REFERENCES snapshots (id),
			position INTEGER NOT NULL,
			annex_ref TEXT NOT NULL,
			standard TEXT NOT NULL,
			difference TEXT NOT NULL,
			state_ref TEXT NOT NULL,
			details TEXT NOT NULL,
			remark TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS snapshots_source ON snapshots (source)`,
	}
	for _, s := range stmts {
		if _, err := d.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot stores the document in a single transaction and returns
// the new snapshot's ID.
func (d *DB) SaveSnapshot(ctx context.Context, doc *annex.Document) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	taken := time.Now().UTC().Format(time.RFC3339Nano)
	err = tx.QueryRowContext(ctx,
		d.query(`INSERT INTO snapshots (source, taken_at, row_count) VALUES (?, ?, ?) RETURNING id`),
		doc.Source, taken, len(doc.Rows)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, d.query(`INSERT INTO snapshot_rows
		(snapshot_id, position, annex_ref, standard, difference, state_ref, details, remark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, row := range doc.Rows {
		_, err := stmt.ExecContext(ctx, id, i+1, row.AnnexRef, row.Standard,
			row.Difference.String(), row.StateRef, row.Details, row.Remark)
		if err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DB) LoadSnapshot(ctx context.Context, id int64) (*Snapshot, error) {
	snap := Snapshot{ID: id}
	var taken string
	err := d.db.QueryRowContext(ctx,
		d.query(`SELECT source, taken_at, row_count FROM snapshots WHERE id = ?`), id).
		Scan(&snap.Source, &taken, &snap.Rows)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if snap.TakenAt, err = time.Parse(time.RFC3339Nano, taken); err != nil {
		return nil, fmt.Errorf("snapshot %d: %w", id, err)
	}

	rows, err := d.db.QueryContext(ctx, d.query(`SELECT annex_ref, standard, difference, state_ref, details, remark
		FROM snapshot_rows WHERE snapshot_id = ? ORDER BY position`), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc := &annex.Document{Source: snap.Source}
	for rows.Next() {
		var row annex.Row
		var diff string
		if err := rows.Scan(&row.AnnexRef, &row.Standard, &diff, &row.StateRef, &row.Details, &row.Remark); err != nil {
			return nil, err
		}
		if row.Difference, err = storedCategory(diff); err != nil {
			return nil, fmt.Errorf("snapshot %d row %d: %w", id, len(doc.Rows)+1, err)
		}
		doc.Rows = append(doc.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	snap.Document = doc
	return &snap, nil
}

func (d *DB) ListSnapshots(ctx context.Context, source string) ([]Snapshot, error) {
	q := `SELECT id, source, taken_at, row_count FROM snapshots`
	var args []any
	if source != "" {
		q += ` WHERE source = ?`
		args = append(args, source)
	}
	q += ` ORDER BY id DESC`

	rows, err := d.db.QueryContext(ctx, d.query(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Snapshot
	for rows.Next() {
		var s Snapshot
		var taken string
		if err := rows.Scan(&s.ID, &s.Source, &taken, &s.Rows); err != nil {
			return nil, err
		}
		if s.TakenAt, err = time.Parse(time.RFC3339Nano, taken); err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", s.ID, err)
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// storedCategory parses a stored label. Unlike user input, the sentinel
// for multiple selections is accepted.
func storedCategory(s string) (annex.Category, error) {
	if s == annex.MultipleLabel {
		return annex.MultipleCategories, nil
	}
	return annex.ParseCategory(s)
}
