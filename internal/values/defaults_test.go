package values

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
)

func TestDefaultsMatchSchemaShape(t *testing.T) {
	m, err := defaultsMap()
	require.NoError(t, err)

	keys := maps.Keys(m)
	sort.Strings(keys)

	for _, want := range []string{"image", "service", "serviceAccount", "probes", "autoscaling", "ingress"} {
		assert.Contains(t, keys, want)
	}

	// The defaults must validate against the embedded schema, otherwise a
	// bare "nestops deploy" with no values file would fail.
	assert.NoError(t, ValidateValues(m))
}

func TestDefaultsMapIsDetached(t *testing.T) {
	first, err := defaultsMap()
	require.NoError(t, err)

	second, err := defaultsMap()
	require.NoError(t, err)

	// Mutating one copy must not leak into a later load.
	overlay := map[string]any{"replicaCount": float64(9)}
	maps.Copy(first, overlay)

	assert.NotEqual(t, first["replicaCount"], second["replicaCount"])
}
