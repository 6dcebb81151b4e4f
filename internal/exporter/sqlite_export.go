// Package exporter writes stored templates to standalone SQLite files that can
// be shared and imported elsewhere.
package exporter

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/VoxDroid/relcfg/internal/config"
	dbpkg "github.com/VoxDroid/relcfg/internal/db"
	"github.com/VoxDroid/relcfg/internal/store"
)

// ExportDatabase copies the active template store to dstPath.
func ExportDatabase(dstPath string) error {
	src, err := config.DBPath()
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "open source db")
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return errors.Wrap(err, "create dst dir")
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return errors.Wrap(err, "create dst db")
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(err, "copy db")
	}
	return out.Sync()
}

// ExportTemplates writes the named templates and their history into a new
// store at dstPath. dstPath must not exist.
func ExportTemplates(ctx context.Context, src *sql.DB, names []string, dstPath string) error {
	if _, err := os.Stat(dstPath); err == nil {
		return errors.Newf("export target %s already exists", dstPath)
	}
	dst, err := dbpkg.Open(dstPath)
	if err != nil {
		return errors.Wrap(err, "open dst db")
	}
	defer func() { _ = dst.Close() }()

	for _, name := range names {
		if err := CopyTemplate(ctx, src, dst, name, name); err != nil {
			_ = dst.Close()
			_ = os.Remove(dstPath)
			return err
		}
	}
	return nil
}

// CopyTemplate copies template name from src into dst as newName, keeping
// timestamps and version numbers.
func CopyTemplate(ctx context.Context, src, dst *sql.DB, name, newName string) error {
	trx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()
	if err := CopyTemplateTx(ctx, src, trx, name, newName); err != nil {
		return err
	}
	return trx.Commit()
}

// CopyTemplateTx is CopyTemplate inside a caller-owned transaction.
func CopyTemplateTx(ctx context.Context, src *sql.DB, trx *sql.Tx, name, newName string) error {
	var (
		id                   int64
		desc                 sql.NullString
		format, body         string
		createdAt, updatedAt string
	)
	row := src.QueryRowContext(ctx, "SELECT id, description, format, body, created_at, updated_at FROM templates WHERE name = ?", name)
	if err := row.Scan(&id, &desc, &format, &body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(store.ErrNotFound, "%q", name)
		}
		return errors.Wrapf(err, "select template %q", name)
	}

	res, err := trx.ExecContext(ctx, "INSERT INTO templates (name, description, format, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		newName, desc, format, body, createdAt, updatedAt)
	if err != nil {
		return errors.Wrapf(err, "insert template %q", newName)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := copyVersions(ctx, src, id, trx, newID); err != nil {
		return errors.Wrapf(err, "copy history of %q", name)
	}
	return nil
}

func copyVersions(ctx context.Context, src *sql.DB, srcID int64, trx *sql.Tx, newID int64) error {
	rows, err := src.QueryContext(ctx, `SELECT version, created_at, author_name, author_email, description, body, operation
		FROM template_versions WHERE template_id = ? ORDER BY version ASC`, srcID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var v store.Version
		if err := rows.Scan(&v.Version, &v.CreatedAt, &v.AuthorName, &v.AuthorEmail, &v.Description, &v.Body, &v.Operation); err != nil {
			return err
		}
		if _, err := trx.ExecContext(ctx, `INSERT INTO template_versions
			(template_id, version, created_at, author_name, author_email, description, body, operation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			newID, v.Version, v.CreatedAt, v.AuthorName, v.AuthorEmail, v.Description, v.Body, v.Operation); err != nil {
			return err
		}
	}
	return rows.Err()
}
