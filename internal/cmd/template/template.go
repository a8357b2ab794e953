// Package template implements the template sub-command.
package template

import (
	"fmt"
	"strings"

	"github.com/nestops-dev/nestops/internal/chart"
	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/logging"
	"github.com/nestops-dev/nestops/internal/runtime"
	"github.com/spf13/cobra"
)

// New creates the template sub-command for the CLI.
func New() *cobra.Command {
	templateCommand := &cobra.Command{
		Use:   "template <release-name>",
		Short: "Render the nest chart templates locally",
		Long:  `Render the nest chart templates locally and print the resulting Kubernetes manifests without contacting the cluster.`,
		Example: `
# Render the manifests for a release named "nest"
nestops template nest

# Render with an explicit values file
nestops template nest -f ./path/to/nest-values.yaml

# Render and include the release notes
nestops template nest --show-notes
		`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("you must specify exactly one release name (e.g., 'nestops template nest'). Received %d argument(s): %v", len(args), args)
			}
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("release name cannot be empty")
			}
			return nil
		},
		RunE: runTemplate,
	}

	templateCommand.Flags().Bool("show-notes", false, "Include the rendered release notes in the output")

	return templateCommand
}

func runTemplate(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	releaseName := args[0]

	rt := runtime.FromRuntime(cmd.Context())
	if rt == nil {
		return fmt.Errorf("runtime not initialized")
	}

	vals, err := rt.Values(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load values: %w", err)
	}

	helmClient, err := cli.GetHelmClient(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize helm client: %w", err)
	}

	showNotes, err := cmd.Flags().GetBool("show-notes")
	if err != nil {
		return fmt.Errorf("failed to get show-notes flag: %w", err)
	}

	rc := chart.ReleaseContext(releaseName, vals)
	valsMap, err := vals.ToMap()
	if err != nil {
		return fmt.Errorf("failed to convert values: %w", err)
	}

	logger.Debug("Rendering chart templates", "release", releaseName)

	rel, err := helmClient.Render(cmd.Context(), rc, valsMap)
	if err != nil {
		return fmt.Errorf("failed to render templates: %w", err)
	}

	manifest := strings.TrimSpace(rel.Manifest) + "\n"

	colorized, err := cli.ColorizeYAMLWithChroma([]byte(manifest))
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), manifest)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), colorized)
	}

	if showNotes && rel.Info != nil && rel.Info.Notes != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nNOTES:\n%s\n", strings.TrimSpace(rel.Info.Notes))
	}

	return nil
}
