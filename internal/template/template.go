// Package template binds render parameters into release-configuration
// templates. Rendering is a single, pure substitution pass over ££NAME££
// tokens; template storage is kept separate in Registry.
package template

// FormatJSON is the body syntax of every built-in template.
const FormatJSON = "json"

// Template sources.
const (
	SourceBuiltin = "builtin"
	SourceStore   = "store"
)

// Template is an immutable named body containing zero or more tokens.
type Template struct {
	Name        string
	Description string
	Format      string
	Body        string
	Source      string
}

// Tokens lists the token names the template references.
func (t Template) Tokens() ([]string, error) {
	names, err := Tokens(t.Body)
	if err != nil {
		return nil, withTemplate(err, t.Name)
	}
	return names, nil
}

// Document is the output of a successful render.
type Document struct {
	Template string
	Format   string
	Body     string
}

func (d Document) String() string { return d.Body }

func withTemplate(err error, name string) error {
	if m, ok := err.(*MalformedTemplateError); ok {
		cp := *m
		cp.Template = name
		return &cp
	}
	return err
}
