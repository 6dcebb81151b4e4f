// Package schema validates release configurations against an embedded JSON
// schema covering the keys relcfg templates emit.
package schema

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/xeipuuv/gojsonschema"

	"github.com/VoxDroid/relcfg/internal/document"
	"github.com/VoxDroid/relcfg/internal/template"
)

//go:embed semantic-release.schema.json
var schemaJSON []byte

// ErrInvalidDocument is matched by every ValidationError.
var ErrInvalidDocument = errors.New("invalid release configuration")

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid release configuration: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

var compiled = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Validate checks a JSON document.
func Validate(data []byte) error {
	s, err := compiled()
	if err != nil {
		return errors.Wrap(err, "load embedded schema")
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(err, "validate document")
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		problems = append(problems, re.String())
	}
	return &ValidationError{Problems: problems}
}

// ValidateConfig checks a decoded configuration.
func ValidateConfig(cfg document.Config) error {
	b, err := template.EncodeJSON(cfg)
	if err != nil {
		return errors.Wrap(err, "encode document for validation")
	}
	return Validate(b)
}
