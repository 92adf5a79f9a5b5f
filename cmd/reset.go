package cmd

import (
	"fmt"

	"github.com/lokitools/schema/cli"
	"github.com/lokitools/schema/logging"
	"github.com/lokitools/schema/resolver"
	"github.com/spf13/cobra"
)

func NewResetCmd() *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "reset [path]",
		Short: "Rewrite JSON documents with canonical formatting",
		Long: `Reads and rewrites every .json file under the target directory without
changing its content, normalizing indentation and key order so resolver output
diffs stay small.

Examples:
  # Normalize a schema tree before committing
  lokischema reset ./schemas`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)

			cfg, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}

			targetDir, err := resolveTargetDir(args, cfg.Resolver.Target)
			if err != nil {
				return err
			}

			opts := resolver.Options{Exclude: cfg.Resolver.Exclude}
			if cmd.Flags().Changed("exclude") {
				opts.Exclude = exclude
			}

			r, err := resolver.New(opts)
			if err != nil {
				return err
			}

			logger.Debugf("Resetting JSON files under %s", targetDir)
			count, err := r.Reset(targetDir)
			if err != nil {
				return err
			}

			logging.NewPrettyLogger().Success(fmt.Sprintf("Rewrote %d file(s)", count))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Pattern for files to skip (repeatable, overrides settings)")

	return cmd
}
