// Package delete implements the delete sub-command.
package delete

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/logging"
	"github.com/nestops-dev/nestops/internal/ui"
	"github.com/spf13/cobra"
	v1 "helm.sh/helm/v4/pkg/release/v1"
)

// New creates the delete sub-command for the CLI.
func New() *cobra.Command {
	deleteCommand := &cobra.Command{
		Use:     "delete <release-name>",
		Aliases: []string{"uninstall", "remove"},
		Short:   "Delete a deployed release",
		Long:    `Delete (uninstall) a deployed nest release and its resources from the Kubernetes cluster.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("release name is required, eg. 'nestops delete nest'")
			}
			if strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("release name cannot be empty")
			}
			return nil
		},
		RunE: runDelete,
	}

	deleteCommand.Flags().Bool("force", false, "Force deletion without confirmation")
	deleteCommand.Flags().Bool("dry-run", false, "Simulate the deletion without actually removing the release")
	deleteCommand.Flags().Bool("show-resources", false, "Show detailed resources that would be deleted (implies --dry-run)")

	return deleteCommand
}

func runDelete(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	releaseName := args[0]

	logger.Infof("Starting delete process for release '%s'", releaseName)

	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	showResources, _ := cmd.Flags().GetBool("show-resources")

	// show-resources implies dry-run
	if showResources {
		dryRun = true
	}

	helmClient, err := cli.GetHelmClient(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize helm client: %w", err)
	}

	// Check if the release exists before proceeding
	logger.Infof("Checking release '%s' status", releaseName)
	rel, err := helmClient.Get(cmd.Context(), releaseName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			logger.Warnf("Release '%s' not found", releaseName)
			if !force {
				return fmt.Errorf("release '%s' not found - use --force to ignore", releaseName)
			}
			logger.Infof("Continuing with --force flag despite missing release '%s'", releaseName)
		} else {
			return fmt.Errorf("failed to check release status: %w", err)
		}
	} else {
		logger.Infof("Release '%s' found, proceeding with deletion", releaseName)
	}

	if dryRun {
		return showDryRunOutput(releaseName, rel, showResources, logger)
	}

	if !force {
		confirmed, err := ui.Confirm(
			fmt.Sprintf("Delete release '%s'?", releaseName),
			fmt.Sprintf("This will permanently remove release '%s' and all its resources from the cluster.", releaseName),
		)
		if err != nil {
			logger.Debugf("failed to get confirmation: %v", err)
			return fmt.Errorf("failed to get confirmation")
		}

		if !confirmed {
			logger.Infof("Delete operation for release '%s' cancelled by user", releaseName)
			return nil
		}
	}

	err = spinner.New().
		Title(fmt.Sprintf("Deleting release '%s'...", releaseName)).
		Context(cmd.Context()).
		ActionWithErr(func(ctx context.Context) error {
			return helmClient.Uninstall(ctx, releaseName)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("failed to delete release: %w", err)
	}

	logger.Infof("Release '%s' deleted successfully", releaseName)

	return nil
}

// showDryRunOutput displays detailed information about what would be deleted
func showDryRunOutput(releaseName string, rel *v1.Release, showResources bool, logger *log.Logger) error {
	if rel == nil {
		logger.Infof("DRY RUN: Release '%s' not found - nothing to delete", releaseName)
		return nil
	}

	status := "unknown"
	revision := 0
	lastDeployed := "unknown"

	if rel.Info != nil {
		status = rel.Info.Status.String()
		if !rel.Info.LastDeployed.IsZero() {
			lastDeployed = rel.Info.LastDeployed.Format("2006-01-02 15:04:05 MST")
		}
	}
	if rel.Version > 0 {
		revision = rel.Version
	}

	logger.Infof("DRY RUN: Would delete the following release:")
	logger.Infof("  Release Name: %s", rel.Name)
	logger.Infof("  Namespace: %s", rel.Namespace)
	logger.Infof("  Status: %s", status)
	logger.Infof("  Revision: %d", revision)
	logger.Infof("  Last Deployed: %s", lastDeployed)

	if rel.Info != nil && rel.Info.Description != "" {
		logger.Infof("  Description: %s", rel.Info.Description)
	}

	if showResources && rel.Manifest != "" {
		logger.Infof("Resources that would be deleted:")
		if err := displayResourcesSummary(rel.Manifest, logger); err != nil {
			logger.Warnf("Could not parse manifest resources: %v", err)
		}
	}

	if len(rel.Config) > 0 {
		logger.Infof("Configuration values would be lost:")
		displayConfigSummary(rel.Config, logger)
	}

	logger.Infof("To perform the actual deletion, run without --dry-run:")
	logger.Infof("  nestops delete %s", releaseName)

	return nil
}

// displayResourcesSummary parses and displays a summary of Kubernetes resources
func displayResourcesSummary(manifest string, logger *log.Logger) error {
	if manifest == "" {
		logger.Infof("  (No manifest data available)")
		return nil
	}

	// Count resource kinds without fully parsing the manifest
	resourceCounts := make(map[string]int)
	for _, line := range strings.Split(manifest, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "kind:") {
			kind := strings.TrimSpace(strings.TrimPrefix(line, "kind:"))
			if kind != "" {
				resourceCounts[kind]++
			}
		}
	}

	if len(resourceCounts) == 0 {
		logger.Infof("  (Could not parse resource information)")
		return nil
	}

	for kind, count := range resourceCounts {
		if count == 1 {
			logger.Infof("  - %s", kind)
		} else {
			logger.Infof("  - %s (%d instances)", kind, count)
		}
	}

	return nil
}

// displayConfigSummary shows a summary of the configuration values
func displayConfigSummary(config map[string]any, logger *log.Logger) {
	if len(config) == 0 {
		logger.Infof("  (No configuration values)")
		return
	}

	count := 0
	for key, value := range config {
		if count >= 5 { // Limit to first 5 keys to avoid spam
			logger.Infof("  ... and %d more configuration keys", len(config)-5)
			break
		}

		valueStr := fmt.Sprintf("%v", value)
		if len(valueStr) > 50 {
			valueStr = valueStr[:47] + "..."
		}

		logger.Infof("  - %s: %s", key, valueStr)
		count++
	}
}
