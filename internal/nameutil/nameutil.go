// Package nameutil validates and cleans template names.
package nameutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

const maxNameLength = 64

// ErrInvalidName is matched by every ValidateName failure.
var ErrInvalidName = errors.New("invalid name")

var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateName checks whether name is usable as a template identifier: a
// lowercase slug of letters, digits, '.', '_' and '-', starting with a letter
// or digit. It does NOT mutate the input; use SanitizeName first when the
// name came from copy/paste.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidName, "name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return errors.Wrap(ErrInvalidName, "contains invalid encoding")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.Wrapf(ErrInvalidName, "contains control character U+%04X (%q)", r, r)
		}
	}
	if len(name) > maxNameLength {
		return errors.Wrapf(ErrInvalidName, "longer than %d bytes", maxNameLength)
	}
	if !slugRe.MatchString(name) {
		return errors.WithHint(errors.Wrapf(ErrInvalidName, "%q", name), "use lowercase letters, digits, '.', '_' or '-'")
	}
	return nil
}

// SanitizeName removes control and zero-width characters (U+200B and friends
// commonly picked up by copy/paste), trims surrounding whitespace and lowers
// the case. The boolean reports whether anything changed.
func SanitizeName(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	res := strings.TrimSpace(string(out))
	return res, res != name
}
