package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewTranspileCommand(), "transpile <file>", []string{"out-file"}},
		{NewBuildCommand(), "build [paths...]", []string{"force", "jobs"}},
		{NewRunCommand(), "run <file> [--engine python|starlark]", []string{"engine"}},
		{NewWatchCommand(), "watch [paths...]", []string{"debounce"}},
		{NewServeCommand(), "serve [paths...]", []string{"port", "watch", "debounce"}},
		{NewCheckCommand(), "check [paths...]", nil},
		{NewASTCommand(), "ast <file>", []string{"format"}},
		{NewTokensCommand(), "tokens <file>", nil},
		{NewReplCommand(), "repl", nil},
		{NewInitCommand(), "init [directory]", []string{"force"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestTranspileShorthand(t *testing.T) {
	flag := NewTranspileCommand().Flags().Lookup("out-file")
	if assert.NotNil(t, flag) {
		// -o belongs to the global output format flag.
		assert.Equal(t, "f", flag.Shorthand)
	}
}

func TestCacheSubcommands(t *testing.T) {
	cmd := NewCacheCommand()
	assert.Equal(t, "cache", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"status", "clear"}, names)
}
