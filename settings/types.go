package settings

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ResolverSettings configures reference resolution over a schema tree.
type ResolverSettings struct {
	// Target is the default directory scanned for .json schema files.
	Target string `yaml:"target,omitempty" toml:"target,omitempty" jsonschema:"description=Default directory scanned for .json schema files"`
	// Exclude lists gitignore-style patterns for files to skip during scanning.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Gitignore-style patterns for files to skip"`
	// KeepKeys lists object keys that are re-applied after a reference is replaced.
	KeepKeys []string `yaml:"keep_keys,omitempty" toml:"keep_keys,omitempty" jsonschema:"description=Object keys re-applied after a reference is replaced"`
	// Preserve lists sibling properties carried over from the referencing object.
	Preserve []string `yaml:"preserve,omitempty" toml:"preserve,omitempty" jsonschema:"description=Sibling properties carried over from the referencing object"`
	// SchemaKey is the top-level key under which schemas live in an OpenAPI document.
	SchemaKey string `yaml:"schema_key,omitempty" toml:"schema_key,omitempty" jsonschema:"description=Top-level key under which schemas live (default: components)"`
	// WatchDebounceMs is the debounce window for rapid file changes in watch mode.
	WatchDebounceMs int `yaml:"watch_debounce_ms,omitempty" toml:"watch_debounce_ms,omitempty" jsonschema:"description=Debounce window for rapid file changes in milliseconds (default: 250)"`
}

// HookSettings configures hook registration checking.
type HookSettings struct {
	// Config is the path to the hook registration file to check.
	Config string `yaml:"config,omitempty" toml:"config,omitempty" jsonschema:"description=Path to the hook registration file (default: discovered .pre-commit-config.yaml)"`
	// Strict promotes unknown-key warnings to errors.
	Strict bool `yaml:"strict,omitempty" toml:"strict,omitempty" jsonschema:"description=Promote unknown-key warnings to errors"`
}

// Settings represents the loki.yml configuration.
type Settings struct {
	Version  string            `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Settings version (e.g. 1.0)"`
	Resolver *ResolverSettings `yaml:"resolver,omitempty" toml:"resolver,omitempty" jsonschema:"description=Reference resolution settings"`
	Hooks    *HookSettings     `yaml:"hooks,omitempty" toml:"hooks,omitempty" jsonschema:"description=Hook registration checking settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// DefaultKeepKeys are the object keys re-applied after reference substitution
// unless overridden in settings.
var DefaultKeepKeys = []string{"i6RefCollectionName"}

// DefaultPreserve are the sibling properties carried over from a referencing
// object into its resolved replacement.
var DefaultPreserve = []string{"nullable", "title", "description", "x-virtual", "format"}

// SetDefaults sets default values for settings.
func (s *Settings) SetDefaults() {
	if s.Version == "" {
		s.Version = "1.0"
	}
	if s.Resolver == nil {
		s.Resolver = &ResolverSettings{}
	}
	if s.Resolver.SchemaKey == "" {
		s.Resolver.SchemaKey = "components"
	}
	if len(s.Resolver.KeepKeys) == 0 {
		s.Resolver.KeepKeys = append([]string(nil), DefaultKeepKeys...)
	}
	if len(s.Resolver.Preserve) == 0 {
		s.Resolver.Preserve = append([]string(nil), DefaultPreserve...)
	}
	if s.Resolver.WatchDebounceMs == 0 {
		s.Resolver.WatchDebounceMs = 250
	}
	if s.Hooks == nil {
		s.Hooks = &HookSettings{}
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded loki.yml into the provided target struct. The target must be a pointer.
// This provides a type-safe way for sibling tools to access their custom
// configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (s *Settings) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := s.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// SettingsSource identifies the origin of a settings value.
type SettingsSource string

const (
	SourceDefault        SettingsSource = "default"
	SourceGlobal         SettingsSource = "global"
	SourceGlobalFragment SettingsSource = "global-fragment"
	SourceProject        SettingsSource = "project"
	SourceOverride       SettingsSource = "override"
)

// OverrideSource holds raw settings from an override file and its path.
type OverrideSource struct {
	Path     string
	Settings *Settings
}
