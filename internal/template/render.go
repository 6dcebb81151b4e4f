package template

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Render substitutes every token in t with the serialised value from params.
// It either returns the complete document or an error and no output.
// Replacement text is never re-scanned, so a value that itself contains a
// marker is inserted literally.
func Render(t Template, params Parameters) (Document, error) {
	refs, err := scan(t.Body)
	if err != nil {
		return Document{}, withTemplate(err, t.Name)
	}

	var missing []string
	for _, name := range uniqueNames(refs) {
		if params[name] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Document{}, &MissingParameterError{Template: t.Name, Names: missing}
	}

	serialized := make(map[string]string, len(params))
	var b strings.Builder
	b.Grow(len(t.Body))
	last := 0
	for _, ref := range refs {
		b.WriteString(t.Body[last:ref.Start])
		text, ok := serialized[ref.Name]
		if !ok {
			text, err = params[ref.Name].Serialize()
			if err != nil {
				return Document{}, errors.Wrapf(err, "template %q: token %s", t.Name, ref.Name)
			}
			serialized[ref.Name] = text
		}
		b.WriteString(text)
		last = ref.End
	}
	b.WriteString(t.Body[last:])

	return Document{Template: t.Name, Format: t.Format, Body: b.String()}, nil
}

// Renderer renders templates looked up by name.
type Renderer struct {
	registry *Registry
}

// NewRenderer returns a Renderer backed by registry.
func NewRenderer(registry *Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Render looks up name and renders it with params.
func (r *Renderer) Render(name string, params Parameters) (Document, error) {
	t, err := r.registry.Lookup(name)
	if err != nil {
		return Document{}, err
	}
	return Render(t, params)
}
