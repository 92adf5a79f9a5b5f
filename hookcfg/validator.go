package hookcfg

import (
	"github.com/lokitools/schema/schema"
)

// SchemaValidator validates hook configuration against the embedded JSON Schema.
// This is a wrapper around schema.Validator so callers in this package never
// touch the compiler directly.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a new schema validator, loading the embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
