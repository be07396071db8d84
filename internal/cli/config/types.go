// Package config provides configuration management for the bython CLI.
//
// It layers defaults, the project config file, BYTHON_ environment variables
// and explicitly set flags with koanf, and extends the shared project
// settings from internal/config with CLI-only fields.
package config

import (
	sharedcfg "github.com/leapstack-labs/bython/internal/config"
)

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// ServeConfig holds configuration for the playground server.
type ServeConfig struct {
	Port int `koanf:"port"`
}

// Config holds all CLI configuration options.
type Config struct {
	OutDir       string      `koanf:"out_dir"`
	SourceExt    string      `koanf:"source_ext"`
	TargetExt    string      `koanf:"target_ext"`
	Interpreter  string      `koanf:"interpreter"`
	Engine       string      `koanf:"engine"`
	Jobs         int         `koanf:"jobs"`
	StatePath    string      `koanf:"state_path"`
	Cache        bool        `koanf:"cache"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Watch        WatchConfig `koanf:"watch"`
	Serve        ServeConfig `koanf:"serve"`

	// ProjectRoot is the directory relative paths were resolved against.
	ProjectRoot string `koanf:"-"`
}

// Project returns the shared project settings.
func (c *Config) Project() sharedcfg.ProjectConfig {
	return sharedcfg.ProjectConfig{
		OutDir:      c.OutDir,
		SourceExt:   c.SourceExt,
		TargetExt:   c.TargetExt,
		Interpreter: c.Interpreter,
		Engine:      c.Engine,
		Jobs:        c.Jobs,
	}
}

// Default returns a Config holding only default values.
func Default() *Config {
	return &Config{
		SourceExt:    sharedcfg.DefaultSourceExt,
		TargetExt:    sharedcfg.DefaultTargetExt,
		Interpreter:  sharedcfg.DefaultInterpreter,
		Engine:       sharedcfg.DefaultEngine,
		Jobs:         sharedcfg.DefaultJobs,
		StatePath:    DefaultStateFile,
		Cache:        true,
		OutputFormat: DefaultOutput,
		Watch:        WatchConfig{DebounceMS: sharedcfg.DefaultDebounceMS},
		Serve:        ServeConfig{Port: sharedcfg.DefaultServePort},
	}
}

// Default configuration values
const (
	DefaultStateFile = sharedcfg.DefaultStateFile
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
