package values

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeValuesFile writes a values file into a temp dir and returns its path.
func writeValuesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	vals, err := Load("")
	require.NoError(t, err)

	defaults := Defaults()
	assert.Equal(t, &defaults, vals)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeValuesFile(t, `
replicaCount: 3
image:
  tag: "1.4.2"
ingress:
  enabled: true
  host: nest.example.com
  tls: true
`)

	vals, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, vals.ReplicaCount)
	assert.Equal(t, "1.4.2", vals.Image.Tag)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultImageRepository, vals.Image.Repository)
	assert.Equal(t, DefaultServicePort, vals.Service.Port)
	assert.True(t, vals.Ingress.Enabled)
	assert.Equal(t, "nest.example.com", vals.Ingress.Host)
}

func TestLoadSubstitutesEnvironmentVariables(t *testing.T) {
	t.Setenv("NEST_IMAGE_TAG", "2.0.1")

	path := writeValuesFile(t, `
image:
  tag: "${NEST_IMAGE_TAG}"
`)

	vals, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", vals.Image.Tag)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown field",
			content: "replicacount: 3\n",
		},
		{
			name:    "bad pull policy",
			content: "image:\n  pullPolicy: Sometimes\n",
		},
		{
			name:    "port out of range",
			content: "service:\n  port: 70000\n",
		},
		{
			name:    "uppercase name override",
			content: "nameOverride: Nest\n",
		},
		{
			name:    "probe path without leading slash",
			content: "probes:\n  liveness:\n    path: health\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeValuesFile(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read values file")
}

func TestLoadDefaultPathMissingFallsBackToDefaults(t *testing.T) {
	// The default path not existing means no overrides; an explicit
	// path that does not exist stays an error (covered above).
	vals, err := Load(DefaultValuesPath)
	require.NoError(t, err)

	defaults := Defaults()
	assert.Equal(t, defaults.Image.Repository, vals.Image.Repository)
	assert.Equal(t, defaults.Service.Port, vals.Service.Port)
	assert.Equal(t, defaults.ServiceAccount.Create, vals.ServiceAccount.Create)
}
