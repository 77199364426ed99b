package exec

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingCommand_ReadsStderr(t *testing.T) {
	tests := []struct {
		name      string
		stderr    string
		exitCode  int
		wantCmd   string
		wantFound bool
	}{
		{"bash command not found", "bash: jq: command not found", 127, "jq", true},
		{"bash -c line prefix", "bash: line 1: jq: command not found", 127, "jq", true},
		{"bash missing path", "bash: ./bin/check: No such file or directory", 127, "./bin/check", true},
		{"dash not found", "sh: 1: node: not found", 127, "node", true},
		{"127 without a name", "something odd", 127, "disk-check", true},
		{"env shebang", "env: node: No such file or directory", 1, "node", true},
		{"env shebang quoted", "/usr/bin/env: ‘python3’: No such file or directory", 127, "python3", true},
		{"nested /bin/sh", "/bin/sh: jq: not found", 2, "jq", true},
		{"command not found needs 127", "bash: jq: command not found", 1, "", false},
		{"ordinary failure", "Error: file not found", 1, "", false},
		{"permission denied", "bash: ./x: Permission denied", 126, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Result{Stderr: []byte(tt.stderr), ExitCode: tt.exitCode}
			cmd, found := MissingCommand("disk-check", res, nil)
			assert.Equal(t, tt.wantFound, found, "found mismatch")
			if tt.wantFound {
				assert.Equal(t, tt.wantCmd, cmd, "command name mismatch")
			}
		})
	}
}

func TestMissingCommand(t *testing.T) {
	t.Run("start error for missing binary", func(t *testing.T) {
		_, err := Capture(context.Background(), "", "devdash-no-such-binary-xyz")
		require.Error(t, err)

		cmd, found := MissingCommand("devdash-no-such-binary-xyz", Result{}, err)
		assert.True(t, found)
		assert.Equal(t, "devdash-no-such-binary-xyz", cmd)
	})

	t.Run("other start error", func(t *testing.T) {
		_, found := MissingCommand("x", Result{}, errors.New("permission denied"))
		assert.False(t, found)
	})

	t.Run("shell reports the name", func(t *testing.T) {
		res := Result{Stderr: []byte("bash: jq: command not found\n"), ExitCode: 127}
		cmd, found := MissingCommand("bash", res, nil)
		assert.True(t, found)
		assert.Equal(t, "jq", cmd)
	})

	t.Run("127 without a name falls back", func(t *testing.T) {
		cmd, found := MissingCommand("disk-check", Result{ExitCode: 127}, nil)
		assert.True(t, found)
		assert.Equal(t, "disk-check", cmd)
	})

	t.Run("dependency inside a script", func(t *testing.T) {
		res := Result{Stderr: []byte("env: node: No such file or directory"), ExitCode: 1}
		cmd, found := MissingCommand("bash", res, nil)
		assert.True(t, found)
		assert.Equal(t, "node", cmd)
	})

	t.Run("ordinary failure", func(t *testing.T) {
		_, found := MissingCommand("bash", Result{Stderr: []byte("boom"), ExitCode: 2}, nil)
		assert.False(t, found)
	})

	t.Run("success", func(t *testing.T) {
		_, found := MissingCommand("bash", Result{}, nil)
		assert.False(t, found)
	})
}

func TestMissingCommand_RealShell(t *testing.T) {
	name, args := ShellCommand("devdash-no-such-command-xyz", nil)
	res, err := Capture(context.Background(), "", name, args...)
	require.NoError(t, err)
	require.Equal(t, 127, res.ExitCode, fmt.Sprintf("stderr: %s", res.Stderr))

	cmd, found := MissingCommand(name, res, nil)
	assert.True(t, found)
	assert.Equal(t, "devdash-no-such-command-xyz", cmd)
}
