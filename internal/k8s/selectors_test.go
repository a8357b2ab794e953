package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestops-dev/nestops/internal/release"
)

func TestBuildSelector(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		appName  string
		expected string
	}{
		{
			name:     "instance only",
			instance: "prod",
			expected: "app.kubernetes.io/instance=prod",
		},
		{
			name:     "instance and name",
			instance: "prod",
			appName:  "nest",
			expected: "app.kubernetes.io/instance=prod,app.kubernetes.io/name=nest",
		},
		{
			name:     "empty criteria match everything",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSelector(tt.instance, tt.appName)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReleaseSelector(t *testing.T) {
	rc := release.Context{ChartName: "nest", ChartVersion: "0.1.0", ReleaseName: "prod"}

	got, err := ReleaseSelector(rc)
	require.NoError(t, err)

	// Must match exactly the selector labels the chart stamps on pods.
	assert.Equal(t, "app.kubernetes.io/instance=prod,app.kubernetes.io/name=nest", got)
}

func TestBuildSelectorRejectsInvalidValues(t *testing.T) {
	_, err := BuildSelector("not/a/valid/value", "")
	require.Error(t, err)
}
