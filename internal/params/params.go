// Package params turns parameter files, settings defaults and command-line
// flags into render parameters.
package params

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/VoxDroid/relcfg/internal/template"
)

// Layer is one source of raw parameter values keyed by token name.
type Layer map[string]any

// LoadFile reads a YAML or JSON parameter file.
func LoadFile(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read parameter file")
	}
	return Parse(data)
}

// Parse decodes YAML or JSON parameter data.
func Parse(data []byte) (Layer, error) {
	// Decode into a plain map so nested mappings stay map[string]any.
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode parameters")
	}
	if m == nil {
		return Layer{}, nil
	}
	return Layer(m), nil
}

// Merge combines layers, later layers overriding earlier ones. Lists are
// replaced, never appended.
func Merge(layers ...Layer) (Layer, error) {
	out := Layer{}
	for _, l := range layers {
		if len(l) == 0 {
			continue
		}
		if err := mergo.Merge(&out, l, mergo.WithOverride); err != nil {
			return nil, errors.Wrap(err, "merge parameters")
		}
	}
	return out, nil
}

// Convert maps raw values to render values. BRANCHES accepts strings,
// mappings and template.Branch items; string lists become template.Strings;
// scalars become template.String; anything else is kept as template.Raw.
// Nil values are dropped so the renderer reports them as missing.
func Convert(l Layer) (template.Parameters, error) {
	out := make(template.Parameters, len(l))
	for _, name := range sortedKeys(l) {
		raw := l[name]
		if raw == nil {
			continue
		}
		if name == template.TokenBranches {
			bs, err := toBranches(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter %s", name)
			}
			out[name] = bs
			continue
		}
		out[name] = toValue(raw)
	}
	return out, nil
}

func toValue(raw any) template.Value {
	switch v := raw.(type) {
	case template.Value:
		return v
	case string:
		return template.String(v)
	case bool, int, int64, float64, uint64:
		return template.String(fmt.Sprint(v))
	case []string:
		return template.Strings(v)
	case []any:
		strs := make(template.Strings, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return template.Raw{Data: v}
			}
			strs = append(strs, s)
		}
		return strs
	}
	return template.Raw{Data: raw}
}

func toBranches(raw any) (template.Branches, error) {
	switch v := raw.(type) {
	case template.Branches:
		return v, nil
	case []template.Branch:
		return template.Branches(v), nil
	case string:
		return ParseBranchList(v)
	case []any:
		out := make(template.Branches, 0, len(v))
		for i, item := range v {
			b, err := toBranch(item)
			if err != nil {
				return nil, errors.Wrapf(err, "item %d", i)
			}
			out = append(out, b)
		}
		return out, nil
	}
	return nil, errors.Newf("expected a list of branches, got %T", raw)
}

func toBranch(item any) (template.Branch, error) {
	switch v := item.(type) {
	case template.Branch:
		return v, nil
	case string:
		return ParseBranch(v)
	case Layer:
		return toBranch(map[string]any(v))
	case map[string]any:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return template.Branch{}, err
		}
		var b template.Branch
		if err := node.Decode(&b); err != nil {
			return template.Branch{}, err
		}
		return b, nil
	}
	return template.Branch{}, errors.Newf("expected a branch name or mapping, got %T", item)
}

// ParseBranch parses the flag syntax name[:option[,option...]] where an option
// is prerelease, prerelease=<id>, channel=<name> or range=<range>.
func ParseBranch(s string) (template.Branch, error) {
	name, opts, _ := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return template.Branch{}, errors.Newf("branch %q: name is required", s)
	}
	b := template.Branch{Name: name}
	if opts == "" {
		return b, nil
	}
	for _, opt := range strings.Split(opts, ",") {
		key, val, hasVal := strings.Cut(strings.TrimSpace(opt), "=")
		switch key {
		case "prerelease":
			b.Prerelease = true
			if hasVal {
				b.PrereleaseID = val
			}
		case "channel":
			b.Channel = val
		case "range":
			b.Range = val
		default:
			return template.Branch{}, errors.WithHint(
				errors.Newf("branch %q: unknown option %q", s, key),
				"options are prerelease, prerelease=<id>, channel=<name>, range=<range>")
		}
	}
	return b, nil
}

// ParseBranchList parses whitespace- or semicolon-separated branch specs.
func ParseBranchList(s string) (template.Branches, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ' ' || r == '\n' || r == '\t' })
	out := make(template.Branches, 0, len(fields))
	for _, f := range fields {
		b, err := ParseBranch(f)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseAssignment splits NAME=value as used by --set.
func ParseAssignment(s string) (string, string, error) {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.Newf("expected NAME=value, got %q", s)
	}
	return name, val, nil
}

func sortedKeys(l Layer) []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
