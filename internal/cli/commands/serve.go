package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/engine"
	"github.com/leapstack-labs/bython/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve [paths...]",
		Short: "Serve the translator over HTTP",
		Long: `Start an HTTP server exposing the translator.

Endpoints:
  POST /api/transpile  {"source": "..."} -> {"output": "..."}
  POST /api/ast        {"source": "..."} -> {"ast": {...}}
  GET  /api/events     server-sent build events (with --watch)
  GET  /healthz        liveness check

Source errors are answered with status 422 and a JSON body naming the
error kind, message, line and column.`,
		Example: `  # Serve on the default port
  bython serve

  # Serve on port 9000 and rebuild src on change
  bython serve src --port 9000 --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, watch)
		},
	}

	cmd.Flags().Int("port", 0, "Port to listen on")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch paths and stream rebuilds on /api/events")
	cmd.Flags().Int("debounce", 0, "Quiet period in milliseconds before rebuilding")

	return cmd
}

func runServe(cmd *cobra.Command, paths []string, watch bool) error {
	var (
		cmdCtx *CommandContext
		eng    *engine.Engine
	)
	if watch {
		c, cleanup, err := NewCommandContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmdCtx, eng = c, c.Engine
	} else {
		cmdCtx = NewCommandContextWithoutEngine(cmd)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := cmdCtx.Cfg
	srv := server.New(server.Config{
		Port:       cfg.Serve.Port,
		Engine:     eng,
		WatchPaths: paths,
		Debounce:   time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		Logger:     cmdCtx.Logger,
	})

	cmdCtx.Renderer.Println(cmdCtx.Renderer.Muted(fmt.Sprintf("listening on http://localhost:%d", cfg.Serve.Port)))
	return srv.Serve(ctx)
}
