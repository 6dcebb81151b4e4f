package template

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the render taxonomy. Detail errors unwrap to these so
// callers can branch with errors.Is.
var (
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrMissingParameter  = errors.New("missing parameter")
	ErrMalformedTemplate = errors.New("malformed template")
)

// MissingParameterError lists every token a template references that the
// caller did not supply, in order of first appearance.
type MissingParameterError struct {
	Template string
	Names    []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("template %q: missing parameters: %s", e.Template, strings.Join(e.Names, ", "))
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// MalformedTemplateError reports a marker that could not be parsed. Offset is
// the byte position of the offending opening marker.
type MalformedTemplateError struct {
	Template string
	Offset   int
	Reason   string
}

func (e *MalformedTemplateError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("malformed template at byte %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("template %q: malformed at byte %d: %s", e.Template, e.Offset, e.Reason)
}

func (e *MalformedTemplateError) Unwrap() error { return ErrMalformedTemplate }

// UnknownTemplateError names the identifier that was not registered.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", e.Name)
}

func (e *UnknownTemplateError) Unwrap() error { return ErrUnknownTemplate }
