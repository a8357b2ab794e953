package release

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ctx     Context
		wantErr string
	}{
		{
			name: "valid context",
			ctx:  Context{ChartName: "nest", ReleaseName: "prod"},
		},
		{
			name:    "missing chart name",
			ctx:     Context{ReleaseName: "prod"},
			wantErr: "chart name must not be empty",
		},
		{
			name:    "missing release name",
			ctx:     Context{ChartName: "nest"},
			wantErr: "release name must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShortName(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected string
	}{
		{
			name:     "chart name by default",
			ctx:      Context{ChartName: "nest", ReleaseName: "prod"},
			expected: "nest",
		},
		{
			name:     "name override wins",
			ctx:      Context{ChartName: "nest", ReleaseName: "prod", NameOverride: "birdhouse"},
			expected: "birdhouse",
		},
		{
			name:     "long name truncated to DNS label limit",
			ctx:      Context{ChartName: strings.Repeat("a", 70), ReleaseName: "prod"},
			expected: strings.Repeat("a", 63),
		},
		{
			name:     "trailing hyphen stripped after truncation",
			ctx:      Context{ChartName: strings.Repeat("a", 62) + "--suffix", ReleaseName: "prod"},
			expected: strings.Repeat("a", 62),
		},
		{
			name:     "every trailing hyphen stripped, not just one",
			ctx:      Context{ChartName: strings.Repeat("a", 60) + "---suffix", ReleaseName: "prod"},
			expected: strings.Repeat("a", 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.ShortName())
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected string
	}{
		{
			name:     "release name prepended to chart name",
			ctx:      Context{ChartName: "nest", ReleaseName: "prod"},
			expected: "prod-nest",
		},
		{
			name:     "release name equal to chart name is not duplicated",
			ctx:      Context{ChartName: "nest", ReleaseName: "nest"},
			expected: "nest",
		},
		{
			name:     "release name containing chart name is not duplicated",
			ctx:      Context{ChartName: "nest", ReleaseName: "nest-prod"},
			expected: "nest-prod",
		},
		{
			name:     "containment check is case sensitive",
			ctx:      Context{ChartName: "nest", ReleaseName: "NEST-prod"},
			expected: "NEST-prod-nest",
		},
		{
			name:     "fullname override wins over everything",
			ctx:      Context{ChartName: "nest", ReleaseName: "prod", FullnameOverride: "custom-name"},
			expected: "custom-name",
		},
		{
			name:     "fullname override is truncated",
			ctx:      Context{ChartName: "nest", ReleaseName: "prod", FullnameOverride: strings.Repeat("b", 70)},
			expected: strings.Repeat("b", 63),
		},
		{
			name:     "name override participates in containment check",
			ctx:      Context{ChartName: "nest", ReleaseName: "bird-prod", NameOverride: "bird"},
			expected: "bird-prod",
		},
		{
			name:     "concatenation is truncated without trailing hyphen",
			ctx:      Context{ChartName: strings.Repeat("c", 60), ReleaseName: "rel"},
			expected: "rel-" + strings.Repeat("c", 59),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ctx.FullName()
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len(got), MaxNameLength)
			assert.False(t, strings.HasSuffix(got, "-"))
		})
	}
}

func TestChartID(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected string
	}{
		{
			name:     "plain version",
			ctx:      Context{ChartName: "nest", ChartVersion: "0.1.0", ReleaseName: "prod"},
			expected: "nest-0.1.0",
		},
		{
			name:     "build metadata separator replaced",
			ctx:      Context{ChartName: "nest", ChartVersion: "1.2.3+build5", ReleaseName: "prod"},
			expected: "nest-1.2.3_build5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ctx.ChartID()
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, "+")
		})
	}
}

func TestSelectorLabels(t *testing.T) {
	ctx := Context{ChartName: "nest", ChartVersion: "0.1.0", ReleaseName: "prod"}

	labels := ctx.SelectorLabels()

	assert.Equal(t, map[string]string{
		"app.kubernetes.io/name":     "nest",
		"app.kubernetes.io/instance": "prod",
	}, labels)
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected map[string]string
	}{
		{
			name: "all labels with app version",
			ctx: Context{
				ChartName:    "nest",
				ChartVersion: "0.1.0",
				AppVersion:   "1.16.0",
				ReleaseName:  "prod",
			},
			expected: map[string]string{
				"app.kubernetes.io/name":       "nest",
				"app.kubernetes.io/instance":   "prod",
				"app.kubernetes.io/version":    "1.16.0",
				"app.kubernetes.io/managed-by": "Helm",
				"helm.sh/chart":                "nest-0.1.0",
			},
		},
		{
			name: "version label omitted when app version is unset",
			ctx: Context{
				ChartName:    "nest",
				ChartVersion: "0.1.0",
				ReleaseName:  "prod",
			},
			expected: map[string]string{
				"app.kubernetes.io/name":       "nest",
				"app.kubernetes.io/instance":   "prod",
				"app.kubernetes.io/managed-by": "Helm",
				"helm.sh/chart":                "nest-0.1.0",
			},
		},
		{
			name: "custom releasing tool name",
			ctx: Context{
				ChartName:    "nest",
				ChartVersion: "0.1.0",
				ReleaseName:  "prod",
				Service:      "nestops",
			},
			expected: map[string]string{
				"app.kubernetes.io/name":       "nest",
				"app.kubernetes.io/instance":   "prod",
				"app.kubernetes.io/managed-by": "nestops",
				"helm.sh/chart":                "nest-0.1.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.Labels())
		})
	}
}

// Selector labels must stay a subset of the full label set for every
// context, since the full set is what gets written to pod templates the
// selector has to match.
func TestLabelsContainSelectorLabels(t *testing.T) {
	contexts := []Context{
		{ChartName: "nest", ChartVersion: "0.1.0", ReleaseName: "prod"},
		{ChartName: "nest", ChartVersion: "1.2.3+build5", AppVersion: "2.0", ReleaseName: "nest"},
		{ChartName: "nest", ReleaseName: "prod", NameOverride: "bird", FullnameOverride: "house"},
	}

	for _, ctx := range contexts {
		full := ctx.Labels()
		for key, value := range ctx.SelectorLabels() {
			assert.Equal(t, value, full[key], "label %s", key)
		}
	}
}

func TestServiceAccountName(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected string
	}{
		{
			name: "explicit name when creating",
			ctx: Context{
				ChartName: "nest", ReleaseName: "prod",
				CreateServiceAccount: true, ServiceAccount: "nest-sa",
			},
			expected: "nest-sa",
		},
		{
			name: "full name when creating without explicit name",
			ctx: Context{
				ChartName: "nest", ReleaseName: "prod",
				CreateServiceAccount: true,
			},
			expected: "prod-nest",
		},
		{
			name: "explicit name when not creating",
			ctx: Context{
				ChartName: "nest", ReleaseName: "prod",
				ServiceAccount: "existing-sa",
			},
			expected: "existing-sa",
		},
		{
			name:     "namespace default when not creating and unset",
			ctx:      Context{ChartName: "nest", ReleaseName: "prod"},
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.ServiceAccountName())
		})
	}
}

func TestDerivationIsIdempotent(t *testing.T) {
	ctx := Context{
		ChartName:            "nest",
		ChartVersion:         "1.2.3+build5",
		AppVersion:           "1.16.0",
		ReleaseName:          "nest-prod",
		CreateServiceAccount: true,
	}

	assert.Equal(t, ctx.ShortName(), ctx.ShortName())
	assert.Equal(t, ctx.FullName(), ctx.FullName())
	assert.Equal(t, ctx.ChartID(), ctx.ChartID())
	assert.Equal(t, ctx.ServiceAccountName(), ctx.ServiceAccountName())
	assert.Equal(t, ctx.Labels(), ctx.Labels())
	assert.Equal(t, ctx.SelectorLabels(), ctx.SelectorLabels())
}
