// Package importer loads templates exported by the exporter package into the
// active store.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/VoxDroid/relcfg/internal/config"
	dbpkg "github.com/VoxDroid/relcfg/internal/db"
	"github.com/VoxDroid/relcfg/internal/exporter"
	"github.com/VoxDroid/relcfg/internal/nameutil"
	"github.com/VoxDroid/relcfg/internal/template"
)

var (
	// ErrNotAStore is returned when the source file is not a relcfg template store.
	ErrNotAStore = errors.New("not a relcfg template store")
	// ErrInvalidTemplate is returned when a source template has a name or body
	// the active store would not accept.
	ErrInvalidTemplate = errors.New("invalid template in import source")
)

// Imported maps a source template name to the name it was stored under.
type Imported struct {
	Name string
	As   string
}

// ImportDatabase copies srcPath over the active store. If overwrite is false
// and the destination exists, an error is returned. Every template in the
// source is checked before the active store is touched.
func ImportDatabase(ctx context.Context, srcPath string, overwrite bool) error {
	if err := checkSource(srcPath); err != nil {
		return err
	}
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return errors.Wrap(err, "open src")
	}
	_, err = sourceNames(ctx, src)
	_ = src.Close()
	if err != nil {
		return err
	}

	dst, err := config.DBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return errors.WithHint(errors.New("destination database exists"), "pass --replace to overwrite the active store")
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return errors.Wrap(err, "open source")
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, "create dst dir")
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create dst")
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(err, "copy db")
	}
	return out.Sync()
}

// ImportTemplates copies every template in srcPath into dst in one
// transaction. Names already used by a stored or built-in template get an
// -import-N suffix. Names and bodies are checked before anything is written,
// and a failure leaves dst unchanged.
func ImportTemplates(ctx context.Context, srcPath string, dst *sql.DB) ([]Imported, error) {
	if err := checkSource(srcPath); err != nil {
		return nil, err
	}
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return nil, errors.Wrap(err, "open src")
	}
	defer func() { _ = src.Close() }()

	names, err := sourceNames(ctx, src)
	if err != nil {
		return nil, err
	}

	trx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = trx.Rollback() }()

	out := make([]Imported, 0, len(names))
	for _, name := range names {
		as, err := ensureUniqueName(ctx, trx, name)
		if err != nil {
			return nil, err
		}
		if err := exporter.CopyTemplateTx(ctx, src, trx, name, as); err != nil {
			return nil, err
		}
		out = append(out, Imported{Name: name, As: as})
	}
	if err := trx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit import")
	}
	return out, nil
}

// sourceNames lists the templates of src, rejecting invalid names and
// malformed bodies.
func sourceNames(ctx context.Context, src *sql.DB) ([]string, error) {
	rows, err := src.QueryContext(ctx, "SELECT name, body FROM templates ORDER BY name ASC")
	if err != nil {
		return nil, errors.Wrap(err, "list source templates")
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var name, body string
		if err := rows.Scan(&name, &body); err != nil {
			return nil, err
		}
		if err := nameutil.ValidateName(name); err != nil {
			return nil, errors.Wrapf(ErrInvalidTemplate, "%v", err)
		}
		if _, err := (template.Template{Name: name, Body: body}).Tokens(); err != nil {
			return nil, errors.Wrapf(ErrInvalidTemplate, "%v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list source templates")
	}
	return names, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func ensureUniqueName(ctx context.Context, q queryRower, orig string) (string, error) {
	name := orig
	si := 1
	for {
		var cnt int
		r := q.QueryRowContext(ctx, "SELECT count(*) FROM templates WHERE TRIM(name) = ?", name)
		if err := r.Scan(&cnt); err != nil {
			return "", err
		}
		if cnt == 0 && !template.IsBuiltin(name) {
			if err := nameutil.ValidateName(name); err != nil {
				return "", errors.Wrapf(ErrInvalidTemplate, "cannot rename %q: %v", orig, err)
			}
			return name, nil
		}
		name = fmt.Sprintf("%s-import-%d", orig, si)
		si++
	}
}

func checkSource(srcPath string) error {
	if _, err := os.Stat(srcPath); err != nil {
		return errors.Wrapf(err, "import source %s", srcPath)
	}
	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		return errors.Wrap(err, "open src")
	}
	defer func() { _ = src.Close() }()
	v, err := dbpkg.UserVersion(src)
	if err != nil {
		return errors.Wrapf(ErrNotAStore, "%s: %v", srcPath, err)
	}
	if v < 1 || v > dbpkg.SchemaVersion {
		return errors.Wrapf(ErrNotAStore, "%s has schema v%d", srcPath, v)
	}
	return nil
}
