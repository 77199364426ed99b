package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/src/api", filepath.Join(home, "src/api")},
		{"~other/src", "~other/src"},
		{"/abs/path", "/abs/path"},
		{"rel/~/path", "rel/~/path"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.input))
		})
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("USER", "ana")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", Expand(""))
	assert.Equal(t, "/data/ana", Expand("/data/${USER}"))
	assert.Equal(t, home+"/work", Expand("${HOME}/work"))
	assert.Equal(t, "${BRANCH}", Expand("${BRANCH}"), "unknown variables are left alone")
	assert.Equal(t, "~/x", Expand("~/x"), "tilde is not expanded")
}

func TestGetUser_Fallbacks(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("LOGNAME", "")
	t.Setenv("USERNAME", "win")
	assert.Equal(t, "win", getUser())

	t.Setenv("USERNAME", "")
	assert.Equal(t, "user", getUser())
}

func TestExpandPath(t *testing.T) {
	t.Setenv("USER", "ana")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "repos/ana"), ExpandPath("~/repos/${USER}"))
}

func TestExpandPlugin(t *testing.T) {
	t.Setenv("USER", "ana")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	direct := expandPlugin(PluginConfig{Name: "disk", Command: "~/bin/probe", Args: []string{"--user", "${USER}"}})
	assert.Equal(t, filepath.Join(home, "bin/probe"), direct.Command)
	assert.Equal(t, []string{"--user", "ana"}, direct.Args)

	shell := expandPlugin(PluginConfig{Name: "sh", Command: "echo ${USER}", Shell: true})
	assert.Equal(t, "echo ${USER}", shell.Command)
}

func TestExpandPlugin_DoesNotAliasArgs(t *testing.T) {
	t.Setenv("USER", "ana")
	orig := []string{"${USER}"}
	_ = expandPlugin(PluginConfig{Command: "x", Args: orig})
	assert.Equal(t, "${USER}", orig[0])
}
