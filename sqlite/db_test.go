package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

func TestMigrate(t *testing.T) {
	t.Run("idempotent across restarts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")

		db, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, db.Migrate(context.Background()))
		require.NoError(t, db.Migrate(context.Background()))
		require.NoError(t, db.Close())

		// Second process start against the same file.
		db, err = Open(path)
		require.NoError(t, err)
		defer db.Close()
		require.NoError(t, db.Migrate(context.Background()))

		version, err := db.schemaVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, len(migrations), version)
	})

	t.Run("future schema version refused", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer db.Close()

		_, err = db.db.Exec("PRAGMA user_version = 99")
		require.NoError(t, err)

		err = db.Migrate(context.Background())
		require.Error(t, err)

		var regErr *registration.Error
		require.True(t, errors.As(err, &regErr))
		assert.Equal(t, registration.REASON_STORE_UNAVAILABLE, regErr.Reason)
	})

	t.Run("upgrades a legacy store and backfills digits", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer db.Close()

		// A store created by the first schema version: no phone column,
		// no normalized document column, formatted document on disk.
		require.NoError(t, db.applyMigration(context.Background(), 0))
		_, err = db.db.Exec(
			`INSERT INTO registrations (full_name, age, document, is_minor, registered_at, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			"Maria Souza", 30, "123.456.789-0", false,
			time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC).Format(time.RFC3339Nano),
			registration.StatusPending,
		)
		require.NoError(t, err)

		require.NoError(t, db.Migrate(context.Background()))

		fetched, err := db.GetRegistration(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "123.456.789-0", fetched.Document)
		assert.Equal(t, "1234567890", fetched.DocumentDigits)
		assert.Empty(t, fetched.Phone)

		// The variable-width legacy timestamp is rewritten to the fixed
		// nine-digit fraction the ORDER BY relies on.
		var storedAt string
		require.NoError(t, db.db.QueryRow(`SELECT registered_at FROM registrations WHERE id = 1`).Scan(&storedAt))
		assert.Equal(t, "2026-01-05T09:00:00.000000000Z", storedAt)

		// The backfilled digits now guard uniqueness for new submissions.
		dup := adultRegistration("12345678-90")
		_, err = db.CreateRegistration(context.Background(), dup)
		require.Error(t, err)

		var regErr *registration.Error
		require.True(t, errors.As(err, &regErr))
		assert.Equal(t, registration.REASON_REGISTRATION_ALREADY_EXISTS, regErr.Reason)
	})
}
