package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/internal/engine"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Force bool
}

// BuildOutput is the JSON output for the build command.
type BuildOutput struct {
	RunID    string            `json:"run_id,omitempty"`
	Files    []BuildFileOutput `json:"files"`
	Summary  BuildSummary      `json:"summary"`
	Duration int64             `json:"duration_ms"`
}

// BuildFileOutput describes one file in the build output.
type BuildFileOutput struct {
	Source     string `json:"source"`
	Output     string `json:"output"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// BuildSummary counts build outcomes.
type BuildSummary struct {
	Built   int `json:"built"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Translate every source file under the given paths",
		Long: `Translate every source file under the given paths (default: the current
directory) to Python.

Files are translated concurrently. Output goes next to each source, or into
out_dir keeping the relative layout. Files whose content has not changed
since the last build are skipped unless --force or --no-cache is given.
A failing file does not stop the others.`,
		Example: `  # Build the current directory
  bython build

  # Build into a separate directory with 8 workers
  bython build src --out-dir build --jobs 8

  # Rebuild everything
  bython build --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Rebuild files even if unchanged")
	cmd.Flags().Int("jobs", 0, "Number of files to translate at once")

	return cmd
}

func runBuild(cmd *cobra.Command, paths []string, opts *BuildOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cmdCtx.Engine.Build(cmd.Context(), paths, engine.BuildOptions{Force: opts.Force})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if err := renderBuildResult(cmdCtx.Renderer, res); err != nil {
		return err
	}
	if res.HasErrors() {
		return fmt.Errorf("%d of %d files failed", res.Failed, len(res.Files))
	}
	return nil
}

func newBuildOutput(res *engine.BuildResult) BuildOutput {
	out := BuildOutput{
		RunID:    res.RunID,
		Files:    make([]BuildFileOutput, 0, len(res.Files)),
		Summary:  BuildSummary{Built: res.Built, Skipped: res.Skipped, Failed: res.Failed},
		Duration: res.Duration.Milliseconds(),
	}
	for _, f := range res.Files {
		fo := BuildFileOutput{
			Source:     f.Source,
			Output:     f.Output,
			Status:     string(f.Status),
			DurationMS: f.Duration.Milliseconds(),
		}
		if f.Err != nil {
			fo.Error = formatDiagnostic(f.Err)
		}
		out.Files = append(out.Files, fo)
	}
	return out
}

func renderBuildResult(r *output.Renderer, res *engine.BuildResult) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(newBuildOutput(res))
	}

	if len(res.Files) == 0 {
		r.Warning("no source files found")
		return nil
	}

	rows := make([][]string, 0, len(res.Files))
	for _, f := range res.Files {
		rows = append(rows, []string{
			f.Source,
			f.Output,
			output.StatusLabel(string(f.Status)),
			f.Duration.Round(time.Microsecond).String(),
		})
	}
	r.Header(2, fmt.Sprintf("Build (%d files)", len(res.Files)))
	r.Table([]string{"Source", "Output", "Status", "Time"}, rows)

	for _, f := range res.Files {
		if f.Err != nil {
			r.Error(formatDiagnostic(f.Err))
		}
	}

	summary := fmt.Sprintf("%d built, %d skipped, %d failed in %s",
		res.Built, res.Skipped, res.Failed, res.Duration.Round(time.Millisecond))
	if res.HasErrors() {
		r.StatusLine("failed", summary)
	} else {
		r.Success(summary)
	}
	return nil
}
