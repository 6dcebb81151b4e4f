package template

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Branch describes one release-eligible branch. A branch with only a name is
// written as a bare string; anything else becomes an object.
type Branch struct {
	Name    string
	Channel string
	Range   string
	// Prerelease marks the branch as producing prerelease versions. When
	// PrereleaseID is set it is used as the identifier instead of the name.
	Prerelease   bool
	PrereleaseID string
}

type branchObject struct {
	Name       string `json:"name" yaml:"name"`
	Channel    string `json:"channel,omitempty" yaml:"channel,omitempty"`
	Range      string `json:"range,omitempty" yaml:"range,omitempty"`
	Prerelease any    `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
}

// Simple reports whether the branch serialises as a bare name.
func (b Branch) Simple() bool {
	return b.Channel == "" && b.Range == "" && !b.Prerelease && b.PrereleaseID == ""
}

func (b Branch) object() branchObject {
	o := branchObject{Name: b.Name, Channel: b.Channel, Range: b.Range}
	switch {
	case b.PrereleaseID != "":
		o.Prerelease = b.PrereleaseID
	case b.Prerelease:
		o.Prerelease = true
	}
	return o
}

func (b *Branch) fromObject(o branchObject) error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("branch name is required")
	}
	nb := Branch{Name: o.Name, Channel: o.Channel, Range: o.Range}
	switch v := o.Prerelease.(type) {
	case nil:
	case bool:
		nb.Prerelease = v
	case string:
		nb.Prerelease = v != ""
		nb.PrereleaseID = v
	default:
		return errors.Newf("branch %q: prerelease must be a boolean or a string, got %T", o.Name, v)
	}
	*b = nb
	return nil
}

func (b Branch) MarshalJSON() ([]byte, error) {
	if b.Simple() {
		return EncodeJSON(b.Name)
	}
	return EncodeJSON(b.object())
}

func (b *Branch) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if strings.TrimSpace(name) == "" {
			return errors.New("branch name is required")
		}
		*b = Branch{Name: name}
		return nil
	}
	var o branchObject
	if err := json.Unmarshal(data, &o); err != nil {
		return errors.Wrap(err, "branch must be a string or an object")
	}
	return b.fromObject(o)
}

func (b Branch) MarshalYAML() (any, error) {
	if b.Simple() {
		return b.Name, nil
	}
	return b.object(), nil
}

func (b *Branch) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			return errors.New("branch name is required")
		}
		*b = Branch{Name: name}
		return nil
	}
	var o branchObject
	if err := node.Decode(&o); err != nil {
		return errors.Wrap(err, "branch must be a string or a mapping")
	}
	return b.fromObject(o)
}
