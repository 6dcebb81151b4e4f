package template

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/VoxDroid/relcfg/internal/nameutil"
)

// Registry is an immutable name -> template lookup table. Every body is
// scanned once at construction so malformed templates never reach Render.
type Registry struct {
	templates map[string]Template
	names     []string
}

// NewRegistry builds a registry from templates. Duplicate or invalid names and
// malformed bodies are rejected.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{templates: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if err := nameutil.ValidateName(t.Name); err != nil {
			return nil, errors.Wrapf(err, "register template %q", t.Name)
		}
		if _, exists := r.templates[t.Name]; exists {
			return nil, errors.Newf("template %q already registered", t.Name)
		}
		if _, err := scan(t.Body); err != nil {
			return nil, withTemplate(err, t.Name)
		}
		if t.Format == "" {
			t.Format = FormatJSON
		}
		r.templates[t.Name] = t
		r.names = append(r.names, t.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the template registered under name.
func (r *Registry) Lookup(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, &UnknownTemplateError{Name: name}
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Templates returns all templates sorted by name.
func (r *Registry) Templates() []Template {
	out := make([]Template, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.templates[n])
	}
	return out
}
