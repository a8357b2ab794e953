package values

import (
	"fmt"

	"github.com/nestops-dev/nestops/internal/util"
)

// ValidateSemantics checks constraints the JSON schema cannot express,
// such as image reference syntax, cross-field autoscaling bounds and
// resource quantity syntax.
func (v *Values) ValidateSemantics() error {
	if err := util.ValidateNonEmpty(v.Image.Repository, "image repository"); err != nil {
		return fmt.Errorf("invalid image configuration: %w", err)
	}
	// Round-trip the configured image through the reference parser so a
	// bad repository, tag, or digest fails here instead of at pull time.
	if _, err := ParseImageRef(v.Image.Ref("")); err != nil {
		return fmt.Errorf("invalid image configuration: %w", err)
	}

	if v.Autoscaling.Enabled {
		if err := util.ValidateMinMaxReplicas(v.Autoscaling.MinReplicas, v.Autoscaling.MaxReplicas); err != nil {
			return fmt.Errorf("invalid autoscaling configuration: %w", err)
		}
	}

	for resource, quantity := range v.Resources.Requests {
		if err := util.ValidateResourceString(quantity, resource); err != nil {
			return fmt.Errorf("invalid resource request: %w", err)
		}
	}
	for resource, quantity := range v.Resources.Limits {
		if err := util.ValidateResourceString(quantity, resource); err != nil {
			return fmt.Errorf("invalid resource limit: %w", err)
		}
	}

	return nil
}
