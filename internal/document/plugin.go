package document

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/VoxDroid/relcfg/internal/template"
)

// Plugin is one release step. A nil Options map is written as the bare name,
// anything else as a [name, options] pair.
type Plugin struct {
	Name    string
	Options map[string]any
}

func (p Plugin) MarshalJSON() ([]byte, error) {
	if p.Options == nil {
		return template.EncodeJSON(p.Name)
	}
	return template.EncodeJSON([]any{p.Name, p.Options})
}

func (p *Plugin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if strings.TrimSpace(name) == "" {
			return errors.New("plugin name is required")
		}
		*p = Plugin{Name: name}
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.New("plugin must be a string or a [name, options] pair")
	}
	if len(pair) == 0 || len(pair) > 2 {
		return errors.Newf("plugin pair must have 1 or 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &name); err != nil || strings.TrimSpace(name) == "" {
		return errors.New("plugin pair must start with a name")
	}
	opts := map[string]any{}
	if len(pair) == 2 {
		if err := json.Unmarshal(pair[1], &opts); err != nil {
			return errors.Wrapf(err, "plugin %q options", name)
		}
	}
	*p = Plugin{Name: name, Options: opts}
	return nil
}

func (p Plugin) MarshalYAML() (any, error) {
	if p.Options == nil {
		return p.Name, nil
	}
	return []any{p.Name, p.Options}, nil
}
