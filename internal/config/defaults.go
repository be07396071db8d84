package config

// Default configuration values.
const (
	DefaultSourceExt   = ".by"
	DefaultTargetExt   = ".py"
	DefaultInterpreter = "python3"
	DefaultEngine      = string(EnginePython)
	DefaultJobs        = 4
	DefaultDebounceMS  = 100
	DefaultServePort   = 8766
	DefaultStateFile   = ".bython/state.db"
)

// ApplyDefaults fills unset values of c.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.SourceExt == "" {
		c.SourceExt = DefaultSourceExt
	}
	if c.TargetExt == "" {
		c.TargetExt = DefaultTargetExt
	}
	if c.Interpreter == "" {
		c.Interpreter = DefaultInterpreter
	}
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.Jobs == 0 {
		c.Jobs = DefaultJobs
	}
}
