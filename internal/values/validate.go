// Package values loads, validates, and defaults the nest chart values.
package values

import (
	"bytes"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/nestops-dev/nestops/internal/values/schema"
)

const schemaID = "values.json"

// ValidateValues validates a decoded values document against the embedded
// JSON schema. Validation is strict: unknown fields are rejected so typos
// like "replicacount" fail loudly instead of silently deploying defaults.
func ValidateValues(obj map[string]any) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()

	jsonSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema.GetValuesSchema()))
	if err != nil {
		return fmt.Errorf("invalid values schema JSON: %w", err)
	}

	if err := compiler.AddResource(schemaID, jsonSchema); err != nil {
		return fmt.Errorf("failed to load values schema: %w", err)
	}

	compiled, err := compiler.Compile(schemaID)
	if err != nil {
		return fmt.Errorf("failed to compile values schema: %w", err)
	}

	if err := compiled.Validate(obj); err != nil {
		return fmt.Errorf("values validation failed: %w", err)
	}
	return nil
}
