package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lokitools/schema/cli"
	"github.com/lokitools/schema/errors"
	"github.com/lokitools/schema/hookcfg"
	"github.com/lokitools/schema/logging"
	"github.com/lokitools/schema/util/pathutil"
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate and lint a hook registration file",
		Long: `Parses a hook registration file, validates it against the embedded JSON
Schema, and lints it for structural problems: unpinned or malformed revisions,
repositories without hooks, local hooks missing an entry or language, duplicate
registrations, and unrecognized keys.

Without an argument the file is taken from the 'hooks.config' setting, falling
back to the .pre-commit-config.yaml discovered upward from the working
directory.

Examples:
  # Check the discovered configuration
  lokischema check

  # Check a specific file and fail on warnings
  lokischema check ci/.pre-commit-config.yaml --strict

  # Machine-readable findings
  lokischema check --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			logger := cli.GetLogger(cmd)

			cfg, err := cli.LoadSettings(cmd)
			if err != nil {
				return err
			}

			path, err := resolveCheckPath(args, cfg.Hooks.Config)
			if err != nil {
				return err
			}
			logger.Debugf("Checking hook configuration at %s", path)

			report, err := hookcfg.LintFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return errors.ConfigNotFound(path)
				}
				return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read hook configuration").
					WithDetail("path", path)
			}

			strictMode := strict || cfg.Hooks.Strict
			failed := report.Errors() > 0 || (strictMode && report.Warnings() > 0)

			if opts.JSONOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				renderReport(report, failed)
			}

			if failed {
				return errors.New(errors.ErrCodeConfigValidation,
					fmt.Sprintf("%d error(s), %d warning(s)", report.Errors(), report.Warnings()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")

	return cmd
}

// resolveCheckPath picks the configuration file: explicit argument, then the
// hooks.config setting, then upward discovery. Configured values go through
// ~ and env expansion since YAML carries them verbatim.
func resolveCheckPath(args []string, configured string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if configured != "" {
		return pathutil.Expand(configured)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return hookcfg.FindConfigFile(cwd)
}

// renderReport prints findings for humans, grouped as they appear in the file.
func renderReport(report *hookcfg.Report, failed bool) {
	pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)

	if report.Path != "" {
		pretty.Path("Config", report.Path)
		pretty.Divider()
	}

	for _, finding := range report.Findings {
		message := finding.Message
		if finding.Hook != "" {
			message = fmt.Sprintf("[%s] %s", finding.Hook, message)
		} else if finding.Repo != "" {
			message = fmt.Sprintf("[%s] %s", finding.Repo, message)
		}
		switch finding.Severity {
		case hookcfg.SeverityError:
			pretty.ErrorPretty(fmt.Sprintf("%s: %s", finding.Code, message), nil)
		default:
			pretty.WarnPretty(fmt.Sprintf("%s: %s", finding.Code, message))
		}
	}

	if len(report.Findings) > 0 {
		pretty.Blank()
	}
	if failed {
		pretty.ErrorPretty(fmt.Sprintf("FAIL: %d error(s), %d warning(s)",
			report.Errors(), report.Warnings()), nil)
	} else if report.Warnings() > 0 {
		pretty.Success(fmt.Sprintf("PASS with %d warning(s)", report.Warnings()))
	} else {
		pretty.Success("PASS: configuration is valid")
	}
}
