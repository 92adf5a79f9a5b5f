package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/lokitools/schema/cli"
	"github.com/lokitools/schema/cmd"
	"github.com/lokitools/schema/pkg/profiling"
	"github.com/lokitools/schema/tui/theme"
	"github.com/lokitools/schema/version"
)

//go:embed docs.json
var docsJSON []byte

func main() {
	rootCmd := cli.NewStandardCommand(
		"lokischema",
		"Schema tooling for the loki ecosystem: hook registration checking and $ref resolution",
	)

	info := version.GetInfo()
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(rootCmd)
	rootCmd.PersistentPreRunE = profiler.PreRun
	rootCmd.PersistentPostRun = profiler.PostRun

	// Add subcommands
	rootCmd.AddCommand(cmd.NewCheckCmd())
	rootCmd.AddCommand(cmd.NewResolveCmd())
	rootCmd.AddCommand(cmd.NewResetCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewTreeCmd())
	rootCmd.AddCommand(cmd.NewPathsCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.AddCommand(cli.NewDocsCommand(docsJSON))

	cli.ApplyStyledHelpRecursive(rootCmd)
	cli.SetStyledHelpWithExtras(rootCmd, printEnvironmentHelp)

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		verbose := false
		for _, arg := range os.Args[1:] {
			if arg == "-v" || arg == "--verbose" {
				verbose = true
			}
		}
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}

// printEnvironmentHelp renders the ENVIRONMENT section of the root help.
func printEnvironmentHelp(t *theme.Theme) {
	section := t.Italic.Foreground(t.Colors.Orange)
	fmt.Println("\n " + section.Render("ENVIRONMENT"))
	for _, env := range [][2]string{
		{"LOKI_LOG_LEVEL", "Log level override: debug, info, warning, error"},
		{"LOKI_THEME", "Color theme: kanagawa, gruvbox, terminal"},
		{"LOKI_ICONS", "Set to 'ascii' to disable Nerd Font icons"},
		{"LOKI_HOME", "Portable root overriding all XDG directories"},
	} {
		fmt.Printf(" %s %s\n", t.Accent.Render(fmt.Sprintf("%-15s", env[0])), env[1])
	}
}
