package settings

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/lokitools/schema/errors"
	"github.com/lokitools/schema/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

var settingsNames = []string{
	"loki.yml",
	"loki.yaml",
	".loki.yml",
	".loki.yaml",
}

// Load reads and parses a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSettingsInvalid, "settings file not found: "+path).
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to read settings file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses settings from a byte array.
func LoadFromBytes(data []byte) (*Settings, error) {
	expanded := expandEnvVars(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse YAML settings")
	}

	s.SetDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadDefault finds and loads settings with hierarchical merging:
// 1. Global fragments (~/.config/loki/*.toml) - base layer
// 2. Global settings (~/.config/loki/loki.yml) - overrides fragments
// 3. Project settings (loki.yml) - overrides global
func LoadDefault() (*Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads settings with hierarchical merging starting from the given directory.
func LoadFrom(startDir string) (*Settings, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger loads settings with hierarchical merging and logging.
// Settings are optional at every layer; an error is returned only when no
// layer exists at all, or when a discovered file fails to parse.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Settings, error) {
	var finalSettings *Settings

	// 1. Load global TOML fragments if any exist (optional)
	for _, fragment := range loadGlobalFragments(logger) {
		if finalSettings == nil {
			finalSettings = fragment.Settings
		} else {
			finalSettings = mergeSettings(finalSettings, fragment.Settings)
		}
	}

	// 2. Load global settings if they exist (optional)
	globalPath := getXDGSettingsPath()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global settings")
			globalData, err := os.ReadFile(globalPath)
			if err == nil {
				expanded := expandEnvVars(string(globalData))
				var global Settings
				if err := yaml.Unmarshal([]byte(expanded), &global); err == nil {
					if finalSettings == nil {
						finalSettings = &global
					} else {
						finalSettings = mergeSettings(finalSettings, &global)
					}
				} else {
					logger.WithError(err).Warn("Failed to parse global settings, continuing without them")
				}
			} else {
				logger.WithError(err).Warn("Failed to read global settings, continuing without them")
			}
		}
	}

	// 3. Load and merge project settings (optional)
	projectPath, err := FindSettingsFile(startDir)
	if err == nil {
		logger.WithField("path", projectPath).Debug("Loading project settings")
		projectData, err := os.ReadFile(projectPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to read project settings").
				WithDetail("path", projectPath)
		}

		expanded := expandEnvVars(string(projectData))
		var project Settings
		if err := yaml.Unmarshal([]byte(expanded), &project); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse project settings").
				WithDetail("path", projectPath)
		}

		if finalSettings == nil {
			finalSettings = &project
		} else {
			logger.Debug("Merging project settings over global settings")
			finalSettings = mergeSettings(finalSettings, &project)
		}
	}

	if finalSettings == nil {
		return nil, errors.New(errors.ErrCodeSettingsInvalid, "no settings file found").
			WithDetail("searchPath", startDir)
	}

	finalSettings.SetDefaults()

	if err := finalSettings.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Settings loaded and validated successfully")

	return finalSettings, nil
}

// FindSettingsFile searches for loki settings files with the following precedence:
// 1. Current directory up to filesystem root
// 2. Git repository root (if in a git repo)
// 3. XDG config directory (~/.config/loki/loki.yml)
func FindSettingsFile(startDir string) (string, error) {
	// 1. Search from current directory up to filesystem root
	dir := startDir
	for {
		for _, name := range settingsNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// 2. Check git repository root if we're in a git repo
	if gitRoot, err := getGitRoot(startDir); err == nil && gitRoot != "" {
		for _, name := range settingsNames {
			path := filepath.Join(gitRoot, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	// 3. Check XDG config directory
	if xdgPath := getXDGSettingsPath(); xdgPath != "" {
		if info, err := os.Stat(xdgPath); err == nil && !info.IsDir() {
			return xdgPath, nil
		}
	}

	return "", errors.New(errors.ErrCodeSettingsInvalid, "no settings file found").
		WithDetail("searchPath", startDir)
}

// loadGlobalFragments reads modular ~/.config/loki/*.toml files in sorted
// order so fragment precedence is stable across runs.
func loadGlobalFragments(logger *logrus.Logger) []OverrideSource {
	dir := getXDGSettingsDir()
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var fragments []OverrideSource
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.WithError(err).WithField("path", path).Warn("Failed to read settings fragment, skipping")
			continue
		}

		expanded := expandEnvVars(string(data))
		var fragment Settings
		if err := toml.Unmarshal([]byte(expanded), &fragment); err != nil {
			logger.WithError(err).WithField("path", path).Warn("Failed to parse settings fragment, skipping")
			continue
		}

		fragments = append(fragments, OverrideSource{Path: path, Settings: &fragment})
	}

	return fragments
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getGitRoot attempts to find the git repository root.
func getGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// getXDGSettingsDir returns the XDG config directory for loki.
func getXDGSettingsDir() string {
	return paths.ConfigDir()
}

// getXDGSettingsPath returns the XDG settings file path for loki.
func getXDGSettingsPath() string {
	dir := getXDGSettingsDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "loki.yml")
}
