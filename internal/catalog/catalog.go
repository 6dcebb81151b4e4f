// Package catalog assembles the template registry used by the CLI: the
// embedded built-ins plus any templates saved in the store.
package catalog

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/VoxDroid/relcfg/internal/store"
	"github.com/VoxDroid/relcfg/internal/template"
)

// Lister is the part of store.Repository the catalog needs.
type Lister interface {
	ListTemplates(ctx context.Context) ([]store.Record, error)
}

// Load builds an immutable registry. A nil lister yields built-ins only.
func Load(ctx context.Context, src Lister) (*template.Registry, error) {
	ts, err := template.Builtins()
	if err != nil {
		return nil, err
	}
	if src != nil {
		recs, err := src.ListTemplates(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "list stored templates")
		}
		for _, rec := range recs {
			ts = append(ts, rec.Template())
		}
	}
	return template.NewRegistry(ts...)
}

// Filter returns the templates whose name or description fuzzy-match query.
func Filter(reg *template.Registry, query string) []template.Template {
	var out []template.Template
	for _, t := range reg.Templates() {
		if FuzzyMatch(t.Name, query) || FuzzyMatch(t.Description, query) {
			out = append(out, t)
		}
	}
	return out
}
