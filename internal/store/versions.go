package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"
)

func recordVersionTx(ctx context.Context, trx *sql.Tx, templateID int64, author Author, description sql.NullString, body, operation string) error {
	var maxVersion sql.NullInt64
	row := trx.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM template_versions WHERE template_id = ?", templateID)
	if err := row.Scan(&maxVersion); err != nil {
		return err
	}
	_, err := trx.ExecContext(ctx, `INSERT INTO template_versions
		(template_id, version, created_at, author_name, author_email, description, body, operation)
		VALUES (?, ?, datetime('now'), ?, ?, ?, ?, ?)`,
		templateID, int(maxVersion.Int64)+1, nullString(author.Name), nullString(author.Email), description, body, operation)
	if err != nil {
		return errors.Wrap(err, "insert version")
	}
	return nil
}

// ListVersions returns the history of name, newest first.
func (r *Repository) ListVersions(ctx context.Context, name string) ([]Version, error) {
	rec, err := r.GetTemplate(ctx, name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, template_id, version, created_at, author_name, author_email, description, body, operation
		FROM template_versions WHERE template_id = ? ORDER BY version DESC`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Version
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.TemplateID, &v.Version, &v.CreatedAt, &v.AuthorName, &v.AuthorEmail, &v.Description, &v.Body, &v.Operation); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Rollback restores the body and description saved in version and records the
// restore as a new version.
func (r *Repository) Rollback(ctx context.Context, name string, version int, author Author) error {
	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	rec, err := getTx(ctx, trx, name)
	if err != nil {
		return err
	}
	var body string
	var desc sql.NullString
	row := trx.QueryRowContext(ctx, "SELECT body, description FROM template_versions WHERE template_id = ? AND version = ?", rec.ID, version)
	if err := row.Scan(&body, &desc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(ErrNotFound, "%q version %d", name, version)
		}
		return err
	}
	if _, err := trx.ExecContext(ctx, "UPDATE templates SET body = ?, description = ?, updated_at = datetime('now') WHERE id = ?", body, desc, rec.ID); err != nil {
		return errors.Wrap(err, "rollback template")
	}
	if err := recordVersionTx(ctx, trx, rec.ID, author, desc, body, "rollback"); err != nil {
		return err
	}
	return trx.Commit()
}
