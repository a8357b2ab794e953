// Package deploy implements the deploy sub-command.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/nestops-dev/nestops/internal/chart"
	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/logging"
	"github.com/nestops-dev/nestops/internal/runtime"
	"github.com/spf13/cobra"
)

// New creates the deploy sub-command for the CLI.
func New() *cobra.Command {
	deployCommand := &cobra.Command{
		Use:   "deploy <release-name>",
		Short: "Deploy the nest service to a Kubernetes cluster",
		Long:  `Deploy the nest service to a Kubernetes cluster as a Helm release with the given name. An existing release is upgraded in place.`,
		Example: `
# Deploy a release named "nest" using the default values file (./nest-values.yaml)
nestops deploy nest

# Deploy with an explicit values file
nestops deploy nest -f ./path/to/nest-values.yaml

# Render and validate without touching the cluster
nestops deploy nest --dry-run
		`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("you must specify exactly one release name (e.g., 'nestops deploy nest'). Received %d argument(s): %v", len(args), args)
			}
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("release name cannot be empty")
			}
			return nil
		},
		RunE: runDeploy,
	}

	deployCommand.Flags().BoolP("dry-run", "d", false, "Perform a dry run (render templates without installing)")

	return deployCommand
}

func runDeploy(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	logger.Debug("Starting deployment process")

	releaseName := args[0]

	rt := runtime.FromRuntime(cmd.Context())
	if rt == nil {
		return fmt.Errorf("runtime not initialized")
	}

	if rt.DebugKeepTempChart() {
		logger.Debug("Debug mode: rendered chart directories will be kept on disk")
	}

	vals, err := rt.Values(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load values: %w", err)
	}

	logger.Debug("Values loaded successfully", "release", releaseName)

	logger.Debug("Initializing Helm client")
	helmClient, err := cli.GetHelmClient(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize helm client: %w", err)
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	rc := chart.ReleaseContext(releaseName, vals)
	valsMap, err := vals.ToMap()
	if err != nil {
		return fmt.Errorf("failed to convert values: %w", err)
	}

	var spinnerTitle string
	if dryRun {
		logger.Info("Performing dry run for release", "release", releaseName, "namespace", rt.Namespace())
		spinnerTitle = fmt.Sprintf("Performing dry run for release '%s'...", releaseName)
	} else {
		logger.Debug("Installing release", "release", releaseName, "namespace", rt.Namespace())
		spinnerTitle = fmt.Sprintf("Deploying release '%s' to namespace '%s'...", releaseName, rt.Namespace())
	}

	err = spinner.New().
		Title(spinnerTitle).
		Context(cmd.Context()).
		ActionWithErr(func(ctx context.Context) error {
			return helmClient.Install(ctx, rc, valsMap, dryRun)
		}).
		Run()

	if err != nil {
		if dryRun {
			return fmt.Errorf("deploy dry run failed: %w", err)
		}
		return fmt.Errorf("deploy failed: %w", err)
	}

	if dryRun {
		logger.Info("Dry run completed successfully")
	} else {
		logger.Info("Release deployed successfully", "release", releaseName, "resources", rc.FullName())
	}

	return nil
}
