package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/catalog"
	"github.com/VoxDroid/relcfg/internal/config"
	"github.com/VoxDroid/relcfg/internal/db"
	"github.com/VoxDroid/relcfg/internal/store"
	"github.com/VoxDroid/relcfg/internal/template"
	"github.com/VoxDroid/relcfg/internal/user"
	"github.com/VoxDroid/relcfg/internal/utils"
)

// Interactive helpers, swapped out in tests.
var (
	confirm  = utils.Confirm
	prompt   = utils.Prompt
	editText = utils.EditText
)

func openRepository() (*store.Repository, error) {
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, errors.Wrap(err, "open template store")
	}
	return store.NewRepository(dbConn), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadCatalog returns built-in and stored templates as one registry. Without a
// store file only the built-ins are loaded and no store is created.
func loadCatalog(ctx context.Context) (*template.Registry, error) {
	path, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Debug("no template store, using built-ins", "path", path)
		return catalog.Load(ctx, nil)
	}
	repo, err := openRepository()
	if err != nil {
		return nil, err
	}
	defer func() { _ = repo.Close() }()
	return catalog.Load(ctx, repo)
}

func lookupTemplate(ctx context.Context, name string) (template.Template, error) {
	reg, err := loadCatalog(ctx)
	if err != nil {
		return template.Template{}, err
	}
	t, err := reg.Lookup(name)
	if err != nil {
		return template.Template{}, withHints(err)
	}
	return t, nil
}

// currentAuthor resolves the author stamped on template versions. A broken
// profile file is logged and ignored.
func currentAuthor() store.Author {
	p, err := user.Resolve()
	if err != nil {
		logger.Warn("could not read author profile", "err", err)
		return store.Author{}
	}
	return store.Author{Name: p.Name, Email: p.Email}
}

// withHints attaches CLI hints to the render error taxonomy.
func withHints(err error) error {
	var missing *template.MissingParameterError
	switch {
	case errors.As(err, &missing):
		return errors.WithHint(err, fmt.Sprintf("run `relcfg tokens %s` to see the parameters it needs, or pass --interactive", missing.Template))
	case errors.Is(err, template.ErrUnknownTemplate):
		return errors.WithHint(err, "run `relcfg list` to see available templates")
	case errors.Is(err, template.ErrMalformedTemplate):
		return errors.WithHint(err, "tokens look like ££NAME££ with NAME in upper case")
	case errors.Is(err, store.ErrReservedName):
		return errors.WithHint(err, "built-in templates cannot be replaced; choose another name")
	}
	return err
}

func readInput(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return b, nil
}
