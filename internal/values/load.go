package values

import (
	"encoding/json"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/fluxcd/pkg/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"sigs.k8s.io/yaml"
)

// Load reads a values file, expands ${VAR} references from the process
// environment, merges the result over the chart defaults, validates the
// merged document, and decodes it into a typed Values.
//
// An empty path returns the defaults unchanged, so every command works
// without a values file.
func Load(path string) (*Values, error) {
	merged, err := loadMergedMap(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateValues(merged); err != nil {
		return nil, err
	}

	var vals Values
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &vals,
		WeaklyTypedInput: false,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build values decoder: %w", err)
	}
	if err := decoder.Decode(merged); err != nil {
		return nil, fmt.Errorf("failed to decode values: %w", err)
	}

	if err := vals.ValidateSemantics(); err != nil {
		return nil, err
	}

	return &vals, nil
}

// loadMergedMap produces the effective values document: user values file
// (if any) merged over the chart defaults.
func loadMergedMap(path string) (map[string]any, error) {
	merged, err := defaultsMap()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file at the default path means the user never wrote
		// one; the chart defaults apply. An explicit path must exist.
		if os.IsNotExist(err) && path == DefaultValuesPath {
			return merged, nil
		}
		return nil, fmt.Errorf("failed to read values file %s: %w", path, err)
	}

	expanded, err := substituteVariables(data)
	if err != nil {
		return nil, err
	}

	var user map[string]any
	if err := yaml.Unmarshal(expanded, &user); err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}

	if err := mergo.Merge(&merged, user, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge values over defaults: %w", err)
	}

	return merged, nil
}

// defaultsMap converts the typed defaults into the generic map shape the
// merge and validation steps operate on.
func defaultsMap() (map[string]any, error) {
	data, err := json.Marshal(Defaults())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default values: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default values: %w", err)
	}
	return m, nil
}

// substituteVariables expands ${VAR} references in the values file from
// the process environment. Unset variables expand to the empty string,
// matching shell semantics, so optional overrides can stay in the file.
func substituteVariables(data []byte) ([]byte, error) {
	content, err := envsubst.Eval(string(data), func(s string) (string, bool) {
		return os.Getenv(s), true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to substitute variables: %w", err)
	}
	return []byte(content), nil
}

// ToMap converts typed values back into the map shape Helm consumes.
func (v *Values) ToMap() (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal values: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal values: %w", err)
	}
	return m, nil
}
