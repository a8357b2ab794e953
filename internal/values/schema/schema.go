package schema

import (
	_ "embed"
)

// valuesSchema is the JSON schema the values file is validated against.
//
//go:embed values.json
var valuesSchema []byte

// GetValuesSchema returns the JSON schema for validating chart values.
func GetValuesSchema() []byte {
	return valuesSchema
}
