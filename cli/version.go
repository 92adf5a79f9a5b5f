package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo holds version information for a loki component
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
	BuildArch string
}

// SetVersionTemplate sets a custom version template for a cobra command
func SetVersionTemplate(cmd *cobra.Command, info VersionInfo) {
	cmd.SetVersionTemplate(fmt.Sprintf(`{{.Name}} {{.Version}}
  Commit:    %s
  Built:     %s
  Arch:      %s
`, info.Commit, info.BuildDate, info.BuildArch))
}
