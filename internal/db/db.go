// Package db opens the SQLite template store.
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/VoxDroid/relcfg/internal/config"
)

// Connection pragmas: cascade version rows and wait on concurrent writers.
const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// InitDB opens the store at config.DBPath.
func InitDB() (*sql.DB, error) {
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open opens the store at dbPath, creating its directory and bringing the
// schema up to date.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	conn, err := sql.Open("sqlite", dbPath+pragmas)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dbPath)
	}
	if err := ApplyMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "migrate %s", dbPath)
	}
	return conn, nil
}
