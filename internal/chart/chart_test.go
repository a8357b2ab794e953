package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestops-dev/nestops/internal/values"
)

func TestPrepareExpandsChart(t *testing.T) {
	dir, err := Prepare(context.Background(), DefaultMetadata())
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	chartYAML, err := os.ReadFile(filepath.Join(dir, "Chart.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(chartYAML), "name: nest")
	assert.Contains(t, string(chartYAML), "version: "+Version)
	assert.Contains(t, string(chartYAML), `appVersion: "`+AppVersion+`"`)
	// The .gotmpl source must not leak into the prepared tree.
	assert.NoFileExists(t, filepath.Join(dir, ChartYamlTemplate))

	// Helper templates get their underscore prefix back.
	assert.FileExists(t, filepath.Join(dir, "templates", "_helpers.tpl"))
	assert.NoFileExists(t, filepath.Join(dir, "templates", "helpers.tpl"))

	for _, name := range []string{
		"deployment.yaml",
		"service.yaml",
		"serviceaccount.yaml",
		"hpa.yaml",
		"ingress.yaml",
		"NOTES.txt",
	} {
		assert.FileExists(t, filepath.Join(dir, "templates", name))
	}

	assert.FileExists(t, filepath.Join(dir, ValuesYamlFile))
}

func TestPrepareReturnsPrivateCopies(t *testing.T) {
	first, err := Prepare(context.Background(), DefaultMetadata())
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(first) })

	second, err := Prepare(context.Background(), DefaultMetadata())
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(second) })

	// Each caller owns its tree; deleting one must not break the other.
	assert.NotEqual(t, first, second)
	require.NoError(t, os.RemoveAll(first))
	assert.FileExists(t, filepath.Join(second, "Chart.yaml"))
}

func TestGenerateCacheKeyIsDeterministic(t *testing.T) {
	a, err := GenerateCacheKey(DefaultMetadata())
	require.NoError(t, err)
	b, err := GenerateCacheKey(DefaultMetadata())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := DefaultMetadata()
	other.Version = "9.9.9"
	c, err := GenerateCacheKey(other)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestReleaseContext(t *testing.T) {
	vals := &values.Values{
		NameOverride:     "bird",
		FullnameOverride: "house",
		ServiceAccount: values.ServiceAccount{
			Create: true,
			Name:   "nest-sa",
		},
	}

	ctx := ReleaseContext("prod", vals)

	assert.Equal(t, Name, ctx.ChartName)
	assert.Equal(t, Version, ctx.ChartVersion)
	assert.Equal(t, AppVersion, ctx.AppVersion)
	assert.Equal(t, "prod", ctx.ReleaseName)
	assert.Equal(t, "bird", ctx.NameOverride)
	assert.Equal(t, "house", ctx.FullnameOverride)
	assert.True(t, ctx.CreateServiceAccount)
	assert.Equal(t, "nest-sa", ctx.ServiceAccount)

	require.NoError(t, ctx.Validate())
}

func TestReleaseContextWithoutValues(t *testing.T) {
	ctx := ReleaseContext("prod", nil)

	assert.Equal(t, "prod-nest", ctx.FullName())
	assert.Equal(t, "default", ctx.ServiceAccountName())
}
