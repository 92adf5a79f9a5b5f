package cli

import (
	"os"

	"github.com/lokitools/schema/logging"
	"github.com/lokitools/schema/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds common options for loki commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
	LogLevel   string
}

// NewStandardCommand creates a new command with standard loki flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	// Standard flags for all loki tools
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to loki.yml settings file")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warning, or error")

	// Apply styled help
	SetStyledHelp(cmd)

	return cmd
}

// GetLogger creates a logger based on command flags
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	// NewLogger returns a configured logrus.Entry, we need the underlying logger
	entry := logging.NewLogger("loki-cli")
	logger := entry.Logger

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(parsed)
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logLevel, _ := cmd.Flags().GetString("log-level")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
		LogLevel:   logLevel,
	}
}

// LoadSettings loads settings honoring the --config flag. Without the flag the
// layered lookup applies, and when no settings file exists anywhere the
// defaults are returned rather than an error.
func LoadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		return settings.Load(configFile)
	}

	cfg, err := settings.LoadDefault()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, err
		}
		if _, findErr := settings.FindSettingsFile(cwd); findErr != nil {
			// No settings file at any layer
			defaults := &settings.Settings{}
			defaults.SetDefaults()
			return defaults, nil
		}
		return nil, err
	}
	return cfg, nil
}
