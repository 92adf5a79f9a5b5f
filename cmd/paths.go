package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/lokitools/schema/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput represents the XDG-compliant paths used by loki tools.
type PathsOutput struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
	StateDir  string `json:"state_dir"`
	CacheDir  string `json:"cache_dir"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the XDG-compliant paths used by loki tools",
		Long: `Print the XDG-compliant paths used by loki tools.

This command outputs the paths in JSON format by default, making it easy
to parse from scripts and other tools.

The paths follow the XDG Base Directory Specification, with LOKI_HOME as
a portable-root override:
- config_dir: Settings files (loki.yml, *.toml fragments)
- data_dir: Persistent data (exported schemas)
- state_dir: Runtime state and logs
- cache_dir: Temporary/regenerable data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir: paths.ConfigDir(),
				DataDir:   paths.DataDir(),
				StateDir:  paths.StateDir(),
				CacheDir:  paths.CacheDir(),
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		},
	}

	return cmd
}
