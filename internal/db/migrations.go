package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/cockroachdb/errors"
	// _ import for sqlite driver registration
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrSchemaTooNew is returned for stores written by a newer relcfg.
var ErrSchemaTooNew = errors.New("database schema is newer than supported")

// SchemaVersion is recorded in PRAGMA user_version once the schema is applied.
const SchemaVersion = 1

// ApplyMigrations applies the embedded schema SQL and stamps the schema
// version. It is safe to run on every start.
func ApplyMigrations(db *sql.DB) error {
	current, err := UserVersion(db)
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return errors.Wrapf(ErrSchemaTooNew, "schema v%d, supported v%d", current, SchemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	if current < SchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return errors.Wrap(err, "stamp schema version")
		}
	}
	return nil
}

// UserVersion reads PRAGMA user_version.
func UserVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, errors.Wrap(err, "read schema version")
	}
	return v, nil
}
