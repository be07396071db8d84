package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	"github.com/leapstack-labs/bython/internal/state"
)

// CacheOutput is the JSON output for cache status.
type CacheOutput struct {
	StatePath string          `json:"state_path"`
	LastRun   *state.Run      `json:"last_run,omitempty"`
	Entries   []CacheEntryOut `json:"entries"`
}

// CacheEntryOut is one cached file.
type CacheEntryOut struct {
	File      string    `json:"file"`
	Output    string    `json:"output"`
	Hash      string    `json:"hash"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCacheCommand creates the cache command.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the build cache",
		Long: `The build cache records a content hash per source file so unchanged files
are skipped by build and watch. It also records every build run.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the last build run and cached files",
		Args:  cobra.NoArgs,
		RunE:  runCacheStatus,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every cached file so the next build rebuilds all",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})

	return cmd
}

func openCache(cmd *cobra.Command) (*CommandContext, state.Store, func(), error) {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	store := cmdCtx.Engine.Store()
	if store == nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("build cache is disabled")
	}
	return cmdCtx, store, cleanup, nil
}

func runCacheStatus(cmd *cobra.Command, _ []string) error {
	cmdCtx, store, cleanup, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := store.GetLatestRun()
	if err != nil {
		return fmt.Errorf("failed to read last run: %w", err)
	}
	hashes, err := store.ListContentHashes()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	out := CacheOutput{StatePath: cmdCtx.Cfg.StatePath, LastRun: run, Entries: make([]CacheEntryOut, 0, len(hashes))}
	for _, h := range hashes {
		out.Entries = append(out.Entries, CacheEntryOut{File: h.FilePath, Output: h.OutputPath, Hash: h.ContentHash, UpdatedAt: h.UpdatedAt})
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Header(1, "Build cache")
	r.Println(output.FormatKeyValue("State", out.StatePath))
	if run != nil {
		r.Println(output.FormatKeyValue("Last run", fmt.Sprintf("%s (%s, %d files, %d errors)",
			run.ID, output.StatusLabel(string(run.Status)), run.Files, run.Errors)))
	}
	r.Println()

	rows := make([][]string, 0, len(out.Entries))
	for _, e := range out.Entries {
		hash := e.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		rows = append(rows, []string{e.File, e.Output, hash, e.UpdatedAt.Local().Format(time.DateTime)})
	}
	r.Table([]string{"File", "Output", "Hash", "Updated"}, rows)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cmdCtx, store, cleanup, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	hashes, err := store.ListContentHashes()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}
	for _, h := range hashes {
		if err := store.DeleteContentHash(h.FilePath); err != nil {
			return fmt.Errorf("failed to clear %s: %w", h.FilePath, err)
		}
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("cleared %d cached files", len(hashes)))
	return nil
}
