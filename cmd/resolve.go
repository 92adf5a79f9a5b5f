package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lokitools/schema/cli"
	"github.com/lokitools/schema/errors"
	"github.com/lokitools/schema/logging"
	"github.com/lokitools/schema/resolver"
	"github.com/lokitools/schema/util/pathutil"
	"github.com/spf13/cobra"
)

func NewResolveCmd() *cobra.Command {
	var (
		exclude  []string
		keepKeys []string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Substitute $ref values in JSON schema documents in place",
		Long: `Scans a directory tree for .json schema documents and rewrites each $ref
with the schema it points to. Internal references resolve against their own
document; external references pull from sibling files, deferring until the
referenced file is itself fully resolved.

The target directory comes from the path argument or the 'resolver.target'
setting. A lock file inside the target keeps concurrent runs from interleaving
writes.

Examples:
  # Resolve a schema tree once
  lokischema resolve ./schemas

  # Keep resolving as files change
  lokischema resolve ./schemas --watch

  # Skip vendored documents
  lokischema resolve ./schemas --exclude "vendor/**"`,
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

			opts := resolver.Options{
				Exclude:  cfg.Resolver.Exclude,
				KeepKeys: cfg.Resolver.KeepKeys,
				Preserve: cfg.Resolver.Preserve,
			}
			if cmd.Flags().Changed("exclude") {
				opts.Exclude = exclude
			}
			if cmd.Flags().Changed("keep-key") {
				opts.KeepKeys = keepKeys
			}

			r, err := resolver.New(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := r.Run(ctx, targetDir); err != nil {
				return err
			}

			if !watch {
				logging.NewPrettyLogger().Success("Resolution complete")
				return nil
			}

			watcher, err := resolver.NewWatcher(r, targetDir, cfg.Resolver.WatchDebounceMs)
			if err != nil {
				return err
			}
			defer watcher.Close()

			logger.Debugf("Entering watch mode over %s", targetDir)
			logging.NewPrettyLogger().InfoPretty(fmt.Sprintf("Watching %s for changes (ctrl+c to stop)", targetDir))
			watcher.Start(ctx)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Pattern for files to skip (repeatable, overrides settings)")
	cmd.Flags().StringArrayVar(&keepKeys, "keep-key", nil, "Object key re-applied after substitution (repeatable, overrides settings)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run resolution when documents change")

	return cmd
}

// resolveTargetDir picks the directory to operate on: explicit argument, then
// the resolver.target setting. Configured values go through ~ and env
// expansion since YAML carries them verbatim.
func resolveTargetDir(args []string, configured string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if configured != "" {
		return pathutil.Expand(configured)
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"no target directory: pass a path argument or set resolver.target in loki.yml")
}
