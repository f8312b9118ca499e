package manifest_test

import (
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeydtaylor/steeze-screens/pkg/manifest"
)

func TestValidate_NormalizesMounts(t *testing.T) {
	cfg := manifest.Config{Mounts: []manifest.Mount{
		{Path: "users//admin", Screen: "users", Params: []string{"id"}},
	}}
	require.NoError(t, cfg.Validate())

	m := cfg.Mounts[0]
	assert.Equal(t, "/users/admin", m.Path)
	assert.Equal(t, []string{"id", "method"}, m.Params, "reserved method slot appended")
}

func TestValidate_DefaultsMethodOnlyParams(t *testing.T) {
	cfg := manifest.Config{Mounts: []manifest.Mount{{Path: "/home", Screen: "home"}}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"method"}, cfg.Mounts[0].Params)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		cfg  manifest.Config
	}{
		{"no mounts", manifest.Config{}},
		{"missing path", manifest.Config{Mounts: []manifest.Mount{{Screen: "x"}}}},
		{"missing screen", manifest.Config{Mounts: []manifest.Mount{{Path: "/x"}}}},
		{"duplicate param", manifest.Config{Mounts: []manifest.Mount{
			{Path: "/x", Screen: "x", Params: []string{"id", "id"}},
		}}},
		{"templated path", manifest.Config{Mounts: []manifest.Mount{
			{Path: "/x/{id}", Screen: "x"},
		}}},
		{"duplicate path", manifest.Config{Mounts: []manifest.Mount{
			{Path: "/x", Screen: "a"},
			{Path: "/x", Screen: "b"},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	src := `
[[mount]]
path = "/users"
screen = "users"
params = ["id"]

[mount.guard]
capabilities = ["platform.users", "platform.admin"]
require_auth = true
`
	var cfg manifest.Config
	require.NoError(t, toml.Unmarshal([]byte(src), &cfg))
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Mounts, 1)
	m := cfg.Mounts[0]
	assert.Equal(t, "users", m.Screen)
	assert.True(t, m.Guard.RequireAuth)
	assert.Equal(t, []string{"platform.users", "platform.admin"}, m.Guard.Capabilities)
	assert.Equal(t, []string{"id", "method"}, m.Params)
}
