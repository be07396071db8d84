package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	intconfig "github.com/leapstack-labs/bython/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bython project",
		Long: `Initialize a new bython project.

This creates:
  - bython.yaml configuration file
  - src/main.by example program
  - .gitignore for the build cache and output`,
		Example: `  # Initialize in current directory
  bython init

  # Initialize in a new directory
  bython init my-project

  # Force overwrite existing files
  bython init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.StatusLine("created", f)
	}

	r.Println("")
	r.Success("bython project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit src/main.by")
	r.Println("  2. Run 'bython build src' to generate Python into build/")
	r.Println("  3. Run 'bython run src/main.by' to execute it")
	r.Println("  4. Run 'bython watch src' to rebuild on save")

	return nil
}
