package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageRef(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Image
		wantErr  bool
	}{
		{
			name:     "simple tagged image",
			input:    "nginx:1.21",
			expected: Image{Repository: "nginx", Tag: "1.21"},
		},
		{
			name:     "registry with port and tag",
			input:    "registry.example.com:5000/nest:1.21",
			expected: Image{Repository: "registry.example.com:5000/nest", Tag: "1.21"},
		},
		{
			name:  "digest reference",
			input: "nest@sha256:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			expected: Image{
				Repository: "nest",
				Digest:     "sha256:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			},
		},
		{
			name:     "bare repository keeps no tag",
			input:    "ghcr.io/nestops-dev/nest",
			expected: Image{Repository: "ghcr.io/nestops-dev/nest"},
		},
		{
			name:    "empty reference",
			input:   "",
			wantErr: true,
		},
		{
			name:    "invalid reference",
			input:   "UPPERCASE/not valid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseImageRef(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, img)
		})
	}
}

func TestImageRef(t *testing.T) {
	tests := []struct {
		name       string
		image      Image
		defaultTag string
		expected   string
	}{
		{
			name:     "tag wins when set",
			image:    Image{Repository: "ghcr.io/nestops-dev/nest", Tag: "1.2.0"},
			expected: "ghcr.io/nestops-dev/nest:1.2.0",
		},
		{
			name:       "default tag fills in",
			image:      Image{Repository: "ghcr.io/nestops-dev/nest"},
			defaultTag: "1.0.0",
			expected:   "ghcr.io/nestops-dev/nest:1.0.0",
		},
		{
			name: "digest wins over tag",
			image: Image{
				Repository: "ghcr.io/nestops-dev/nest",
				Tag:        "1.2.0",
				Digest:     "sha256:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			},
			expected: "ghcr.io/nestops-dev/nest@sha256:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
		{
			name:     "bare repository stays bare",
			image:    Image{Repository: "ghcr.io/nestops-dev/nest"},
			expected: "ghcr.io/nestops-dev/nest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.image.Ref(tt.defaultTag))
		})
	}
}
