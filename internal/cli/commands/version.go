package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bython/internal/cli/output"
	intconfig "github.com/leapstack-labs/bython/internal/config"
	"github.com/leapstack-labs/bython/pkg/token"
)

// BuildInfo identifies the running binary and what it translates to.
type BuildInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Target    string   `json:"target"`
	Engines   []string `json:"engines"`
	Keywords  []string `json:"keywords"`
}

// NewBuildInfo fills in the runtime fields around the values stamped at
// build time.
func NewBuildInfo(version, commit, buildDate string) BuildInfo {
	engines := make([]string, len(intconfig.Engines))
	for i, e := range intconfig.Engines {
		engines[i] = string(e)
	}
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Target:    "Python 3",
		Engines:   engines,
		Keywords:  token.Keywords,
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the bython version, the commit and date it was built from, and
the target language, run engines and reserved words it was built with.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContextWithoutEngine(cmd).Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(info)
			}

			r.Printf("bython v%s\n", info.Version)
			r.Printf("  commit:   %s\n", info.Commit)
			r.Printf("  built:    %s with %s\n", info.BuildDate, info.GoVersion)
			r.Printf("  target:   %s\n", info.Target)
			r.Printf("  engines:  %s\n", strings.Join(info.Engines, ", "))
			r.Printf("  keywords: %s\n", strings.Join(info.Keywords, " "))
			return nil
		},
	}
}
