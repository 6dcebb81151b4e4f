package template

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Value is a parameter bound to a token. Serialize returns the exact text that
// replaces the token in the template body.
type Value interface {
	Serialize() (string, error)
}

// Parameters maps token names to the values that replace them.
type Parameters map[string]Value

// String is inserted verbatim.
type String string

func (s String) Serialize() (string, error) { return string(s), nil }

// Strings serialises as a JSON array of strings.
type Strings []string

func (s Strings) Serialize() (string, error) {
	if s == nil {
		return "[]", nil
	}
	return encodeString(s)
}

// Branches serialises as a JSON array of branch descriptors.
type Branches []Branch

func (b Branches) Serialize() (string, error) {
	if b == nil {
		return "[]", nil
	}
	return encodeString(b)
}

// Raw serialises arbitrary decoded data (maps, mixed lists, numbers) as JSON.
type Raw struct {
	Data any
}

func (r Raw) Serialize() (string, error) {
	return encodeString(r.Data)
}

// EncodeJSON marshals v compactly without HTML escaping, so lodash markers like
// "<%- version %>" survive as written.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeString(v any) (string, error) {
	b, err := EncodeJSON(v)
	if err != nil {
		return "", errors.Wrap(err, "serialize value")
	}
	return string(b), nil
}
