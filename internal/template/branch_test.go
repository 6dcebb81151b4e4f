package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBranch_JSON(t *testing.T) {
	cases := []struct {
		branch Branch
		want   string
	}{
		{Branch{Name: "main"}, `"main"`},
		{Branch{Name: "beta", Prerelease: true}, `{"name":"beta","prerelease":true}`},
		{Branch{Name: "next", PrereleaseID: "rc"}, `{"name":"next","prerelease":"rc"}`},
		{Branch{Name: "1.x", Range: "1.x", Channel: "1.x"}, `{"name":"1.x","channel":"1.x","range":"1.x"}`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.branch)
		require.NoError(t, err)
		require.JSONEq(t, tc.want, string(got))
	}
}

func TestBranch_UnmarshalJSON(t *testing.T) {
	var bs []Branch
	err := json.Unmarshal([]byte(`["main", {"name": "beta", "prerelease": true}, {"name": "next", "prerelease": "rc"}]`), &bs)
	require.NoError(t, err)
	require.Equal(t, []Branch{
		{Name: "main"},
		{Name: "beta", Prerelease: true},
		{Name: "next", Prerelease: true, PrereleaseID: "rc"},
	}, bs)

	var b Branch
	require.Error(t, json.Unmarshal([]byte(`{"prerelease": true}`), &b))
	require.Error(t, json.Unmarshal([]byte(`{"name": "x", "prerelease": 3}`), &b))
	require.Error(t, json.Unmarshal([]byte(`42`), &b))
}

func TestBranch_YAML(t *testing.T) {
	out, err := yaml.Marshal([]Branch{{Name: "main"}, {Name: "beta", Prerelease: true}})
	require.NoError(t, err)
	require.Contains(t, string(out), "- main\n")
	require.Contains(t, string(out), "prerelease: true")

	var back []Branch
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, []Branch{{Name: "main"}, {Name: "beta", Prerelease: true}}, back)
}

func TestValues_Serialize(t *testing.T) {
	s, err := Strings(nil).Serialize()
	require.NoError(t, err)
	require.Equal(t, "[]", s)

	s, err = Strings{"a&b.php", "<x>"}.Serialize()
	require.NoError(t, err)
	require.Equal(t, `["a&b.php","<x>"]`, s)

	s, err = Branches{{Name: "main"}, {Name: "beta", Prerelease: true}}.Serialize()
	require.NoError(t, err)
	require.Equal(t, `["main",{"name":"beta","prerelease":true}]`, s)

	s, err = Raw{Data: map[string]any{"b": 1, "a": true}}.Serialize()
	require.NoError(t, err)
	require.Equal(t, `{"a":true,"b":1}`, s)

	s, err = String(`verbatim "text"`).Serialize()
	require.NoError(t, err)
	require.Equal(t, `verbatim "text"`, s)
}

func TestBranch_EmptyPrereleaseIDIsNotPrerelease(t *testing.T) {
	var b Branch
	require.NoError(t, json.Unmarshal([]byte(`{"name": "main", "channel": "latest", "prerelease": ""}`), &b))
	require.Equal(t, Branch{Name: "main", Channel: "latest"}, b)

	out, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, `{"name":"main","channel":"latest"}`, string(out))
}
