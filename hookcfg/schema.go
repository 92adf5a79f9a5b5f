package hookcfg

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the hook registration file.
// It reflects the Config struct from types.go; inline extension maps are
// excluded so the schema describes only the recognized shape.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Unknown keys are captured by the inline maps and surfaced by lint,
		// so the schema itself describes a closed shape.
		AllowAdditionalProperties: false,
		// Expand the root struct instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Hook Registration Configuration"
	schema.Description = "Schema for .pre-commit-config.yaml hook registration files."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
