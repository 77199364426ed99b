package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown command", errors.New(`unknown command "foo" for "devdash"`), true},
		{"unknown flag", errors.New("unknown flag: --bogus"), true},
		{"other error", errors.New("config not found"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"quoted name", errors.New(`unknown command "snap" for "devdash"`), "snap"},
		{"no quotes", errors.New("unknown flag: --bogus"), ""},
		{"unterminated quote", errors.New(`unknown command "snap`), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"snapshot", "init", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"config", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"interval", "repo", "log-file", "no-watch"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}
