package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bython/internal/cli/config"
	"github.com/leapstack-labs/bython/internal/cli/testutil"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "release build",
			info:    NewBuildInfo("0.1.0", "abc1234", "2026-01-02"),
			wantOut: []string{"bython v0.1.0\n", "commit:   abc1234", "built:    2026-01-02 with go", "target:   Python 3", "engines:  python, starlark"},
		},
		{
			name:    "dev build",
			info:    NewBuildInfo("dev", "unknown", "unknown"),
			wantOut: []string{"bython vdev\n", "keywords: and class def"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			cmd := NewVersionCommand(tt.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(nil)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestVersionCommandJSON(t *testing.T) {
	config.ResetConfig()
	path := filepath.Join(t.TempDir(), "bython.yaml")
	testutil.WriteFile(t, path, "output: json\n")
	cfg, err := config.LoadConfig(path, nil)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.OutputFormat)
	t.Cleanup(config.ResetConfig)

	cmd := NewVersionCommand(NewBuildInfo("1.2.3", "abc", "today"))
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	var got BuildInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1.2.3", got.Version)
	assert.Equal(t, "Python 3", got.Target)
	assert.Equal(t, []string{"python", "starlark"}, got.Engines)
	assert.Contains(t, got.Keywords, "while")
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{})
	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
