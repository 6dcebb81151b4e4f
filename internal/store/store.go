package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/VoxDroid/relcfg/internal/nameutil"
	"github.com/VoxDroid/relcfg/internal/template"
)

// Errors returned by Repository.
var (
	ErrNotFound     = errors.New("template not found")
	ErrNameInUse    = errors.New("template name already in use")
	ErrReservedName = errors.New("template name is reserved by a built-in template")
)

const recordColumns = "id, name, description, format, body, created_at, updated_at"

// Repository provides CRUD operations for stored templates.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the underlying connection.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CreateTemplate validates and inserts a template, recording version 1.
func (r *Repository) CreateTemplate(ctx context.Context, in NewTemplate, author Author) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if err := nameutil.ValidateName(name); err != nil {
		return 0, err
	}
	if template.IsBuiltin(name) {
		return 0, errors.Wrapf(ErrReservedName, "%q", name)
	}
	if err := checkBody(name, in.Body); err != nil {
		return 0, err
	}
	format := in.Format
	if format == "" {
		format = template.FormatJSON
	}

	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = trx.Rollback() }()

	// The NOT EXISTS guard keeps the check and insert in one statement.
	res, err := trx.ExecContext(ctx, `INSERT INTO templates (name, description, format, body, created_at, updated_at)
			SELECT ?, ?, ?, ?, datetime('now'), datetime('now')
			WHERE NOT EXISTS(SELECT 1 FROM templates WHERE TRIM(name) = ?)`,
		name, nullString(in.Description), format, in.Body, name)
	if err != nil {
		return 0, errors.Wrap(err, "insert template")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, errors.Wrapf(ErrNameInUse, "%q", name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := recordVersionTx(ctx, trx, id, author, nullString(in.Description), in.Body, "create"); err != nil {
		return 0, err
	}
	if err := trx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateTemplate replaces the body of name and, when description is non-nil,
// its description. A version snapshot is recorded.
func (r *Repository) UpdateTemplate(ctx context.Context, name, body string, description *string, author Author) error {
	if err := checkBody(name, body); err != nil {
		return err
	}
	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	rec, err := getTx(ctx, trx, name)
	if err != nil {
		return err
	}
	desc := rec.Description
	if description != nil {
		desc = nullString(*description)
	}
	if _, err := trx.ExecContext(ctx, "UPDATE templates SET body = ?, description = ?, updated_at = datetime('now') WHERE id = ?", body, desc, rec.ID); err != nil {
		return errors.Wrap(err, "update template")
	}
	if err := recordVersionTx(ctx, trx, rec.ID, author, desc, body, "update"); err != nil {
		return err
	}
	return trx.Commit()
}

// GetTemplate returns the template called name, or (nil, nil) when absent.
func (r *Repository) GetTemplate(ctx context.Context, name string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM templates WHERE name = ?", name)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// ListTemplates returns every stored template ordered by name.
func (r *Repository) ListTemplates(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM templates ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// DeleteTemplate removes a template and its history.
func (r *Repository) DeleteTemplate(ctx context.Context, name string) error {
	trx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	rec, err := getTx(ctx, trx, name)
	if err != nil {
		return err
	}
	if _, err := trx.ExecContext(ctx, "DELETE FROM template_versions WHERE template_id = ?", rec.ID); err != nil {
		return errors.Wrap(err, "delete versions")
	}
	if _, err := trx.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", rec.ID); err != nil {
		return errors.Wrap(err, "delete template")
	}
	return trx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Format, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func getTx(ctx context.Context, trx *sql.Tx, name string) (*Record, error) {
	row := trx.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM templates WHERE name = ?", name)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "%q", name)
		}
		return nil, err
	}
	return rec, nil
}

func checkBody(name, body string) error {
	if strings.TrimSpace(body) == "" {
		return errors.Newf("template %q: body cannot be empty", name)
	}
	_, err := template.Template{Name: name, Body: body}.Tokens()
	return err
}
