package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToConnect         = errors.New("failed to open postgres connection")
	ErrFailedToParseConfig     = errors.New("failed to parse postgres config")
	ErrHealthcheckFailed       = errors.New("postgres healthcheck failed")
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
	ErrMigrationsDirNotFound   = errors.New("migrations directory not found")
	ErrMigrationsPathNotSet    = errors.New("migrations path not provided")
)

// IsNotFoundError detects pgx.ErrNoRows for consistent "not found" handling.
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError detects unique constraint violations (SQLSTATE 23505).
// The trial ledger relies on this to treat a lost insert race as
// "record already exists" rather than a failure.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolationError detects referential integrity violations (SQLSTATE 23503).
func IsForeignKeyViolationError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
