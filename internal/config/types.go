// Package config provides shared project settings for bython.
// It is decoupled from CLI concerns so the engine, runner and server can
// depend on it without importing cobra or koanf wiring.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Engine names the backend that executes generated code.
type Engine string

// Known engines.
const (
	EnginePython   Engine = "python"
	EngineStarlark Engine = "starlark"
)

// Engines lists every known engine.
var Engines = []Engine{EnginePython, EngineStarlark}

// ParseEngine resolves an engine name, case-insensitively.
func ParseEngine(name string) (Engine, error) {
	for _, e := range Engines {
		if strings.EqualFold(name, string(e)) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown engine %q (want one of: python, starlark)", name)
}

// ProjectConfig holds the settings that shape a build.
type ProjectConfig struct {
	OutDir      string `koanf:"out_dir"`
	SourceExt   string `koanf:"source_ext"`
	TargetExt   string `koanf:"target_ext"`
	Interpreter string `koanf:"interpreter"`
	Engine      string `koanf:"engine"`
	Jobs        int    `koanf:"jobs"`
}

// Validate checks the settings for consistency.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if _, err := ParseEngine(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if err := validateExt("source_ext", c.SourceExt); err != nil {
		errs = append(errs, err)
	}
	if err := validateExt("target_ext", c.TargetExt); err != nil {
		errs = append(errs, err)
	}
	if c.SourceExt != "" && c.SourceExt == c.TargetExt {
		errs = append(errs, fmt.Errorf("source_ext and target_ext must differ, both are %q", c.SourceExt))
	}
	return errors.Join(errs...)
}

func validateExt(key, ext string) error {
	if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("%s must start with a dot, got %q", key, ext)
	}
	return nil
}
