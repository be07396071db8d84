package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/internal/engine"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rebuild source files as they change",
		Long: `Build the given paths, then watch them and rebuild each changed source
file. Changes are batched until no file has changed for the debounce period.
Stop with Ctrl-C.`,
		Example: `  # Watch the current directory
  bython watch

  # Watch src with a longer quiet period
  bython watch src --debounce 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}

	cmd.Flags().Int("debounce", 0, "Quiet period in milliseconds before rebuilding")

	return cmd
}

func runWatch(cmd *cobra.Command, paths []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cmdCtx.Renderer
	debounce := time.Duration(cmdCtx.Cfg.Watch.DebounceMS) * time.Millisecond

	if r.EffectiveMode() != output.ModeJSON {
		r.Println(r.Muted(fmt.Sprintf("watching %v (debounce %s)", displayPaths(paths), debounce)))
	}

	return cmdCtx.Engine.Watch(ctx, paths, engine.WatchOptions{
		Debounce: debounce,
		OnBuild: func(res *engine.BuildResult, err error) {
			if err != nil {
				if ctx.Err() == nil {
					r.Error(err.Error())
				}
				return
			}
			if renderErr := renderBuildResult(r, res); renderErr != nil {
				cmdCtx.Logger.Error("failed to render build", "error", renderErr)
			}
		},
	})
}

func displayPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}
	return paths
}
