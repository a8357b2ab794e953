package values

import (
	"fmt"

	"github.com/distribution/reference"
)

// ParseImageRef parses a container image reference into its repository
// and tag or digest parts. It handles registries with ports, digest
// references, and bare names (which get no tag rather than "latest", so
// the chart's appVersion fallback still applies).
func ParseImageRef(imageRef string) (Image, error) {
	if imageRef == "" {
		return Image{}, fmt.Errorf("image reference must not be empty")
	}

	parsed, err := reference.ParseNormalizedNamed(imageRef)
	if err != nil {
		return Image{}, fmt.Errorf("invalid image reference %q: %w", imageRef, err)
	}

	img := Image{Repository: reference.FamiliarName(parsed)}

	if digested, ok := parsed.(reference.Digested); ok {
		img.Digest = digested.Digest().String()
		return img, nil
	}
	if tagged, ok := parsed.(reference.Tagged); ok {
		img.Tag = tagged.Tag()
	}
	return img, nil
}

// Ref renders the image back into a single pullable reference. Digest
// wins over tag; a bare repository falls back to the given default tag.
func (i Image) Ref(defaultTag string) string {
	if i.Digest != "" {
		return i.Repository + "@" + i.Digest
	}
	tag := i.Tag
	if tag == "" {
		tag = defaultTag
	}
	if tag == "" {
		return i.Repository
	}
	return i.Repository + ":" + tag
}
