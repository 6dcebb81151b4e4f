// Package document decodes rendered templates into a typed semantic-release
// configuration and re-encodes it as JSON, YAML or a CommonJS module.
package document

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/VoxDroid/relcfg/internal/template"
)

// Config is a semantic-release configuration. Top-level keys other than the
// four modelled ones are kept in Extra.
type Config struct {
	Branches  []template.Branch
	Plugins   []Plugin
	Preset    string
	TagFormat string
	Extra     map[string]any
}

// Plugin returns the first plugin step called name.
func (c Config) Plugin(name string) (Plugin, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Config
	for key, val := range raw {
		var err error
		switch key {
		case "branches":
			err = json.Unmarshal(val, &out.Branches)
		case "plugins":
			err = json.Unmarshal(val, &out.Plugins)
		case "preset":
			err = json.Unmarshal(val, &out.Preset)
		case "tagFormat":
			err = json.Unmarshal(val, &out.TagFormat)
		default:
			var v any
			if err = json.Unmarshal(val, &v); err == nil {
				if out.Extra == nil {
					out.Extra = map[string]any{}
				}
				out.Extra[key] = v
			}
		}
		if err != nil {
			return errors.Wrapf(err, "decode %q", key)
		}
	}
	*c = out
	return nil
}

func (c Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	field := func(key string, v any) error {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		k, err := template.EncodeJSON(key)
		if err != nil {
			return err
		}
		b, err := template.EncodeJSON(v)
		if err != nil {
			return errors.Wrapf(err, "encode %q", key)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}
	if c.Branches != nil {
		if err := field("branches", c.Branches); err != nil {
			return nil, err
		}
	}
	if c.Plugins != nil {
		if err := field("plugins", c.Plugins); err != nil {
			return nil, err
		}
	}
	if c.Preset != "" {
		if err := field("preset", c.Preset); err != nil {
			return nil, err
		}
	}
	if c.TagFormat != "" {
		if err := field("tagFormat", c.TagFormat); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(c.Extra) {
		if err := field(key, c.Extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type configYAML struct {
	Branches  []template.Branch `yaml:"branches,omitempty"`
	Plugins   []Plugin          `yaml:"plugins,omitempty"`
	Preset    string            `yaml:"preset,omitempty"`
	TagFormat string            `yaml:"tagFormat,omitempty"`
	Extra     map[string]any    `yaml:",inline"`
}

func (c Config) MarshalYAML() (any, error) {
	return configYAML(c), nil
}

// Decode parses a rendered document.
func Decode(doc template.Document) (Config, error) {
	cfg, err := DecodeJSON([]byte(doc.Body))
	if err != nil {
		return Config{}, errors.Wrapf(err, "template %q produced an invalid document", doc.Template)
	}
	return cfg, nil
}

// DecodeJSON parses a JSON configuration.
func DecodeJSON(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode json document")
	}
	return cfg, nil
}

// DecodeYAML parses a YAML configuration.
func DecodeYAML(data []byte) (Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrap(err, "decode yaml document")
	}
	if _, ok := raw.(map[string]any); !ok {
		return Config{}, errors.New("decode yaml document: top level must be a mapping")
	}
	b, err := template.EncodeJSON(raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "decode yaml document")
	}
	return DecodeJSON(b)
}

const jsPrefix = "module.exports"

// DecodeJS parses a CommonJS module whose export is a JSON object literal, as
// written by Encode.
func DecodeJS(data []byte) (Config, error) {
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, jsPrefix) {
		return Config{}, errors.Newf("decode js document: expected %q", jsPrefix+" = {...}")
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, jsPrefix))
	s = strings.TrimSpace(strings.TrimPrefix(s, "="))
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	return DecodeJSON([]byte(s))
}

// Read decodes data in format f.
func Read(data []byte, f Format) (Config, error) {
	switch f {
	case YAML:
		return DecodeYAML(data)
	case JS:
		return DecodeJS(data)
	default:
		return DecodeJSON(data)
	}
}

// Encode writes cfg in format f. Every format ends with a newline.
func Encode(cfg Config, f Format) ([]byte, error) {
	switch f {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "encode yaml document")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encode yaml document")
		}
		return buf.Bytes(), nil
	case JS:
		body, err := indentJSON(cfg)
		if err != nil {
			return nil, err
		}
		return append([]byte(jsPrefix+" = "), body...), nil
	case JSON, "":
		return indentJSON(cfg)
	}
	return nil, errors.Newf("unsupported format %q", f)
}

func indentJSON(cfg Config) ([]byte, error) {
	compact, err := template.EncodeJSON(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode json document")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, errors.Wrap(err, "encode json document")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
