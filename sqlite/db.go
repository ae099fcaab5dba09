package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/thiagobazzo/formulario-inscricao/registration"
	_ "modernc.org/sqlite"
)

// DB is the single-file registration store.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the store at path, creating the file if needed. The pool is
// capped at one connection so the duplicate-check-then-insert sequence in
// CreateRegistration is serialized against every other insert.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, registration.NewStoreUnavailableError(fmt.Sprintf("failed to open store at %q", path), err)
	}

	db.SetMaxOpenConns(1)

	// Wait instead of failing when another process holds the write lock,
	// e.g. two instances migrating at startup.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, registration.NewStoreUnavailableError("failed to configure store", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return registration.NewStoreUnavailableError("store is not reachable", err)
	}
	return nil
}

type migration struct {
	name  string
	apply func(ctx context.Context, tx *sql.Tx) error
}

func execStmts(stmts ...string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

// Migration steps are append-only and strictly additive: columns and
// indexes are only ever added, never dropped or renamed.
var migrations = []migration{
	{
		name: "create registrations table",
		apply: execStmts(`CREATE TABLE IF NOT EXISTS registrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name TEXT NOT NULL,
			age INTEGER NOT NULL,
			document TEXT NOT NULL,
			is_minor INTEGER NOT NULL,
			guardian_name TEXT,
			guardian_document TEXT,
			registered_at TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending'
		)`),
	},
	{
		name:  "add phone column",
		apply: execStmts(`ALTER TABLE registrations ADD COLUMN phone TEXT NOT NULL DEFAULT ''`),
	},
	{
		name: "add normalized document column",
		apply: func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `ALTER TABLE registrations ADD COLUMN document_digits TEXT NOT NULL DEFAULT ''`); err != nil {
				return err
			}
			if err := backfillDocumentDigits(ctx, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_document_digits ON registrations (document_digits)`)
			return err
		},
	},
	{
		name:  "normalize registered_at fraction width",
		apply: rewriteRegisteredAt,
	},
}

// backfillDocumentDigits re-derives the digit-only form of every stored
// document. Rows written before this column existed may hold formatted
// documents, so the digit form cannot be computed in SQL.
func backfillDocumentDigits(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, document FROM registrations WHERE document_digits = ''`)
	if err != nil {
		return err
	}
	defer rows.Close()

	digitsByID := map[int64]string{}
	for rows.Next() {
		var (
			id  int64
			doc string
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return err
		}
		digitsByID[id] = registration.NormalizeDigits(doc)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for id, digits := range digitsByID {
		if _, err := tx.ExecContext(ctx, `UPDATE registrations SET document_digits = ? WHERE id = ?`, digits, id); err != nil {
			return err
		}
	}
	return nil
}

// rewriteRegisteredAt rewrites every stored timestamp with a fixed-width
// fraction. Rows written before this step used RFC3339Nano, which trims
// trailing zeros, so their string order could diverge from time order
// within a second.
func rewriteRegisteredAt(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT id, registered_at FROM registrations`)
	if err != nil {
		return err
	}
	defer rows.Close()

	textByID := map[int64]string{}
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return err
		}
		registeredAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("failed to parse registered_at %q for row %d: %w", raw, id, err)
		}
		textByID[id] = registeredAt.UTC().Format(timeText)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for id, text := range textByID {
		if _, err := tx.ExecContext(ctx, `UPDATE registrations SET registered_at = ? WHERE id = ?`, text, id); err != nil {
			return err
		}
	}
	return nil
}

// Migrate applies every migration step the store's schema version has not
// seen yet, in order, each in its own transaction. It is idempotent and
// safe to run at every process start.
func (d *DB) Migrate(ctx context.Context) error {
	version, err := d.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return registration.NewStoreUnavailableError(fmt.Sprintf("store schema version %d is newer than this binary understands", version), nil)
	}

	for i := version; i < len(migrations); i++ {
		if err := d.applyMigration(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := d.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, registration.NewStoreUnavailableError("failed to read schema version", err)
	}
	return version, nil
}

func (d *DB) applyMigration(ctx context.Context, i int) error {
	m := migrations[i]

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return registration.NewStoreUnavailableError(fmt.Sprintf("failed to begin migration %q", m.name), err)
	}
	defer tx.Rollback()

	if err := m.apply(ctx, tx); err != nil {
		return registration.NewStoreUnavailableError(fmt.Sprintf("failed to apply migration %q", m.name), err)
	}
	// PRAGMA does not take bind parameters; i is a trusted loop index.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
		return registration.NewStoreUnavailableError(fmt.Sprintf("failed to bump schema version after %q", m.name), err)
	}
	if err := tx.Commit(); err != nil {
		return registration.NewStoreUnavailableError(fmt.Sprintf("failed to commit migration %q", m.name), err)
	}
	return nil
}
