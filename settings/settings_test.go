package settings

import (
	"testing"
)

// TestExtensions verifies that custom extensions in loki.yml are properly loaded
func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
resolver:
  target: specs/

# Extension fields consumed by the logging package
logging:
  level: debug
  format:
    preset: json

# Extension fields from another hypothetical tool
monitoring:
  enabled: true
  interval: 30
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if cfg.Extensions == nil {
		t.Fatal("Extensions map should not be nil")
	}

	if _, ok := cfg.Extensions["logging"]; !ok {
		t.Fatal("Expected 'logging' extension to be present")
	}

	// Test UnmarshalExtension for logging
	type formatCfg struct {
		Preset string `yaml:"preset"`
	}
	type loggingCfg struct {
		Level  string    `yaml:"level"`
		Format formatCfg `yaml:"format"`
	}

	var logCfg loggingCfg
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}

	if logCfg.Level != "debug" {
		t.Errorf("Expected level to be 'debug', got '%s'", logCfg.Level)
	}

	if logCfg.Format.Preset != "json" {
		t.Errorf("Expected format preset to be 'json', got '%s'", logCfg.Format.Preset)
	}

	// Test monitoring extension
	type monitoringCfg struct {
		Enabled  bool `yaml:"enabled"`
		Interval int  `yaml:"interval"`
	}

	var monCfg monitoringCfg
	if err := cfg.UnmarshalExtension("monitoring", &monCfg); err != nil {
		t.Fatalf("Failed to unmarshal monitoring extension: %v", err)
	}

	if !monCfg.Enabled {
		t.Error("Expected monitoring to be enabled")
	}

	if monCfg.Interval != 30 {
		t.Errorf("Expected interval to be 30, got %d", monCfg.Interval)
	}

	// Test non-existent extension (should not error)
	type unknownCfg struct {
		SomeField string `yaml:"some_field"`
	}

	var unknown unknownCfg
	if err := cfg.UnmarshalExtension("unknown", &unknown); err != nil {
		t.Fatalf("UnmarshalExtension should not error for non-existent keys: %v", err)
	}

	if unknown.SomeField != "" {
		t.Errorf("Expected SomeField to be empty for non-existent extension")
	}
}

func TestSetDefaults(t *testing.T) {
	var s Settings
	s.SetDefaults()

	if s.Version != "1.0" {
		t.Errorf("Expected default version 1.0, got %s", s.Version)
	}
	if s.Resolver == nil {
		t.Fatal("Resolver settings should be initialized")
	}
	if s.Resolver.SchemaKey != "components" {
		t.Errorf("Expected default schema_key 'components', got %s", s.Resolver.SchemaKey)
	}
	if len(s.Resolver.KeepKeys) != 1 || s.Resolver.KeepKeys[0] != "i6RefCollectionName" {
		t.Errorf("Expected default keep_keys [i6RefCollectionName], got %v", s.Resolver.KeepKeys)
	}
	if s.Resolver.WatchDebounceMs != 250 {
		t.Errorf("Expected default debounce 250, got %d", s.Resolver.WatchDebounceMs)
	}

	wantPreserve := []string{"nullable", "title", "description", "x-virtual", "format"}
	if len(s.Resolver.Preserve) != len(wantPreserve) {
		t.Fatalf("Expected %d preserve fields, got %v", len(wantPreserve), s.Resolver.Preserve)
	}
	for i, field := range wantPreserve {
		if s.Resolver.Preserve[i] != field {
			t.Errorf("Preserve[%d]: expected %s, got %s", i, field, s.Resolver.Preserve[i])
		}
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("LOKI_TEST_TARGET", "/data/specs")

	yamlContent := []byte(`
resolver:
  target: ${LOKI_TEST_TARGET}
  schema_key: ${LOKI_TEST_MISSING:-components}
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	if cfg.Resolver.Target != "/data/specs" {
		t.Errorf("Expected expanded target '/data/specs', got '%s'", cfg.Resolver.Target)
	}
	if cfg.Resolver.SchemaKey != "components" {
		t.Errorf("Expected default-expanded schema_key 'components', got '%s'", cfg.Resolver.SchemaKey)
	}
}

func TestValidateRejectsNegativeDebounce(t *testing.T) {
	yamlContent := []byte(`
resolver:
  watch_debounce_ms: -5
`)

	if _, err := LoadFromBytes(yamlContent); err == nil {
		t.Fatal("Expected validation error for negative debounce")
	}
}
