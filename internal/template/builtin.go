package template

import (
	"embed"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

//go:embed builtin/*.json
var builtinFS embed.FS

var builtinDescriptions = map[string]string{
	"automatic-release":                      "static branches with -built twins; guarded sed version bump that strips -built",
	"release-semantic-automated":             "parameterised branches, main file and commit assets; replace-plugin version bump",
	"release-semantic-automated-npm":         "static main/next/beta/alpha branches; sed version bump with stderr discarded",
	"release-semantic-automated-npm-guarded": "static main/next/beta/alpha branches; sed version bump guarded on optional files",
}

// BuiltinFS exposes the embedded template bodies.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return builtinFS
	}
	return sub
}

var loadBuiltins = sync.OnceValues(func() ([]Template, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, errors.Wrap(err, "read builtin templates")
	}
	out := make([]Template, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		body, err := fs.ReadFile(builtinFS, path.Join("builtin", e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "read builtin template %s", e.Name())
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		out = append(out, Template{
			Name:        name,
			Description: builtinDescriptions[name],
			Format:      FormatJSON,
			Body:        string(body),
			Source:      SourceBuiltin,
		})
	}
	return out, nil
})

// Builtins returns a copy of the embedded templates.
func Builtins() ([]Template, error) {
	ts, err := loadBuiltins()
	if err != nil {
		return nil, err
	}
	out := make([]Template, len(ts))
	copy(out, ts)
	return out, nil
}

// IsBuiltin reports whether name is one of the embedded templates.
func IsBuiltin(name string) bool {
	_, ok := builtinDescriptions[name]
	return ok
}

// BuiltinRegistry returns a registry holding only the embedded templates.
func BuiltinRegistry() (*Registry, error) {
	ts, err := Builtins()
	if err != nil {
		return nil, err
	}
	return NewRegistry(ts...)
}
