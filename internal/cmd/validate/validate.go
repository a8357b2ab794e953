// Package validate implements the validate sub-command.
package validate

import (
	"fmt"

	"github.com/nestops-dev/nestops/internal/chart"
	"github.com/nestops-dev/nestops/internal/logging"
	"github.com/nestops-dev/nestops/internal/runtime"
	"github.com/spf13/cobra"
)

// New creates the validate sub-command for the CLI.
func New() *cobra.Command {
	validateCommand := &cobra.Command{
		Use:   "validate",
		Short: "Validate a nest values file",
		Long:  `Validate a nest values file against the built-in JSON schema without contacting the cluster.`,
		Example: `
# Validate the default values file (./nest-values.yaml)
nestops validate

# Validate an explicit values file
nestops validate -f ./path/to/nest-values.yaml
`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	return validateCommand
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	rt := runtime.FromRuntime(cmd.Context())
	if rt == nil {
		return fmt.Errorf("runtime not initialized")
	}

	vals, err := rt.Values(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load values: %w", err)
	}

	// An unset tag falls back to the chart's appVersion, matching what
	// the deployment template renders.
	logger.Info("Image resolved", "image", vals.Image.Ref(chart.AppVersion))
	logger.Info("Values validated successfully")

	return nil
}
