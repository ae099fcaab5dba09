package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thiagobazzo/formulario-inscricao/registration"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var _ registration.Repository = (*DB)(nil)

type registrationRow struct {
	ID               int64
	FullName         string
	Age              int
	Phone            string
	Document         string
	DocumentDigits   string
	IsMinor          bool
	GuardianName     sql.NullString
	GuardianDocument sql.NullString
	RegisteredAt     string
	Status           string
}

const registrationColumns = `id, full_name, age, phone, document, document_digits, is_minor, guardian_name, guardian_document, registered_at, status`

// timeText is RFC 3339 with a fixed nine-digit fraction. The width never
// varies, so the lexicographic ORDER BY on registered_at matches time
// order. RFC3339Nano would trim trailing zeros and break that.
const timeText = "2006-01-02T15:04:05.000000000Z07:00"

func scanRegistration(s interface{ Scan(dest ...any) error }) (registration.Registration, error) {
	var row registrationRow
	err := s.Scan(
		&row.ID,
		&row.FullName,
		&row.Age,
		&row.Phone,
		&row.Document,
		&row.DocumentDigits,
		&row.IsMinor,
		&row.GuardianName,
		&row.GuardianDocument,
		&row.RegisteredAt,
		&row.Status,
	)
	if err != nil {
		return registration.Registration{}, err
	}
	return rowToRegistration(row)
}

func rowToRegistration(row registrationRow) (registration.Registration, error) {
	registeredAt, err := time.Parse(time.RFC3339Nano, row.RegisteredAt)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("failed to parse registered_at %q: %w", row.RegisteredAt, err)
	}

	reg := registration.Registration{
		ID:             row.ID,
		FullName:       row.FullName,
		Age:            row.Age,
		Phone:          row.Phone,
		Document:       row.Document,
		DocumentDigits: row.DocumentDigits,
		IsMinor:        row.IsMinor,
		RegisteredAt:   registeredAt,
		Status:         row.Status,
	}
	if row.GuardianName.Valid {
		name := row.GuardianName.String
		reg.GuardianName = &name
	}
	if row.GuardianDocument.Valid {
		doc := row.GuardianDocument.String
		reg.GuardianDocument = &doc
	}
	return reg, nil
}

// CreateRegistration checks identity uniqueness on the digit-normalized
// document and inserts in one transaction. With the pool capped at one
// connection the read-then-write sequence cannot interleave with another
// insert; the unique index on document_digits is the backstop.
func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToWriteError("failed to begin insert transaction", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM registrations WHERE document_digits = ?`, reg.DocumentDigits).Scan(&existingID)
	switch {
	case err == nil:
		return registration.Registration{}, registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("identity document %q is already registered", reg.Document), nil)
	case !errors.Is(err, sql.ErrNoRows):
		return registration.Registration{}, registration.NewFailedToFetchError("failed duplicate identity check", err)
	}

	registeredAt := d.now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (full_name, age, phone, document, document_digits, is_minor, guardian_name, guardian_document, registered_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.FullName,
		reg.Age,
		reg.Phone,
		reg.Document,
		reg.DocumentDigits,
		reg.IsMinor,
		reg.GuardianName,
		reg.GuardianDocument,
		registeredAt.Format(timeText),
		reg.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return registration.Registration{}, registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("identity document %q is already registered", reg.Document), err)
		}
		return registration.Registration{}, registration.NewFailedToWriteError("failed to insert registration", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return registration.Registration{}, registration.NewFailedToWriteError("failed to read inserted registration id", err)
	}

	if err := tx.Commit(); err != nil {
		return registration.Registration{}, registration.NewFailedToWriteError("failed to commit registration insert", err)
	}

	reg.ID = id
	reg.RegisteredAt = registeredAt
	return reg, nil
}

func (d *DB) GetRegistration(ctx context.Context, id int64) (registration.Registration, error) {
	reg, err := scanRegistration(d.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistError(fmt.Sprintf("registration %d not found", id), err)
	}
	if err != nil {
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("failed to fetch registration %d", id), err)
	}
	return reg, nil
}

func (d *DB) GetAllRegistrations(ctx context.Context) ([]registration.Registration, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations ORDER BY registered_at DESC, id DESC`)
	if err != nil {
		return nil, registration.NewFailedToFetchError("failed to fetch registrations", err)
	}
	defer rows.Close()

	regs := []registration.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, registration.NewFailedToFetchError("failed to scan registration", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, registration.NewFailedToFetchError("failed to iterate registrations", err)
	}
	return regs, nil
}

// CountRegistrations takes both counts from a single query so total,
// minors and adults are consistent even under concurrent inserts.
func (d *DB) CountRegistrations(ctx context.Context) (registration.Stats, error) {
	var stats registration.Stats
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_minor), 0) FROM registrations`).Scan(&stats.Total, &stats.Minors)
	if err != nil {
		return registration.Stats{}, registration.NewFailedToFetchError("failed to count registrations", err)
	}
	stats.Adults = stats.Total - stats.Minors
	return stats, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || serr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
