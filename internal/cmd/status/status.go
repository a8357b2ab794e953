// Package status implements the status sub-command.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/k8s"
	"github.com/nestops-dev/nestops/internal/release"
	"github.com/nestops-dev/nestops/internal/runtime"
	"github.com/nestops-dev/nestops/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	v1 "helm.sh/helm/v4/pkg/release/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

// New creates the status sub-command for the CLI.
func New() *cobra.Command {
	statusCommand := &cobra.Command{
		Use:   "status [release-name]",
		Short: "Display the status of deployed releases",
		Long:  `Display status information about deployed nest releases, including their current state, revision and pods. Without a release name, all releases in the namespace are shown.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("at most one release name may be given")
			}
			if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("release name cannot be empty")
			}
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output format: %w", err)
			}

			if !slices.Contains(cli.OutputFormats, outputFormat) {
				return fmt.Errorf("invalid output format: '%s', must be one of: %s", outputFormat, strings.Join(cli.OutputFormats, ", "))
			}

			return nil
		},
		RunE: runStatus,
		Example: `
# Display status for all releases in the namespace
nestops status

# Display status for a single release
nestops status nest

# Show detailed pod information
nestops status nest --detailed`,
	}

	statusCommand.Flags().StringP("output", "o", cli.OutputFormatTable, "Output format: table, json, yaml")
	statusCommand.Flags().Bool("detailed", false, "Show detailed pod information")

	return statusCommand
}

func runStatus(cmd *cobra.Command, args []string) error {
	var releaseName string
	if len(args) == 1 {
		releaseName = args[0]
	}

	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output format: %w", err)
	}

	detailed, err := cmd.Flags().GetBool("detailed")
	if err != nil {
		return fmt.Errorf("failed to get detailed flag: %w", err)
	}

	helmClient, err := cli.GetHelmClient(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize helm client: %w", err)
	}

	releases, err := getReleases(cmd.Context(), releaseName, helmClient)
	if err != nil {
		return fmt.Errorf("failed to get releases: %w", err)
	}

	var k8sClient *k8s.Client
	if detailed {
		rt := runtime.FromRuntime(cmd.Context())
		if rt == nil {
			return fmt.Errorf("runtime not available in context - cannot get detailed pod information")
		}
		k8sClient, err = k8s.NewClientFromRuntime(cmd.Context(), rt)
		if err != nil {
			return fmt.Errorf("failed to create k8s client: %w", err)
		}
	}

	return outputReleases(cmd.Context(), releases, outputFormat, detailed, k8sClient)
}

// getReleases retrieves the nestops-managed releases, optionally restricted
// to a single release name.
func getReleases(ctx context.Context, releaseName string, helmClient runtime.HelmClient) ([]*v1.Release, error) {
	selector := labels.NewSelector()

	if releaseName != "" {
		req, err := labels.NewRequirement(release.LabelInstance, selection.Equals, []string{releaseName})
		if err != nil {
			return nil, fmt.Errorf("failed to create release label requirement: %w", err)
		}
		selector = selector.Add(*req)
	}

	releases, err := helmClient.List(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	if len(releases) == 0 {
		if releaseName != "" {
			return nil, fmt.Errorf("no release named '%s' found\n\nHint: Use 'nestops status' to see all deployed releases", releaseName)
		}
		return nil, fmt.Errorf("no releases found in the current namespace")
	}

	return releases, nil
}

// outputReleases renders the releases in the requested format.
func outputReleases(ctx context.Context, releases []*v1.Release, outputFormat string, detailed bool, k8sClient *k8s.Client) error {
	// Sort by release name for consistent output
	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Name < releases[j].Name
	})

	switch outputFormat {
	case cli.OutputFormatJSON:
		return outputJSON(ctx, releases, detailed, k8sClient)
	case cli.OutputFormatYAML:
		return outputYAML(ctx, releases, detailed, k8sClient)
	case cli.OutputFormatTable:
		printTable(ctx, releases, detailed, k8sClient)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func buildViewModels(ctx context.Context, releases []*v1.Release, detailed bool, k8sClient *k8s.Client) []cli.ReleaseViewModel {
	viewModels := make([]cli.ReleaseViewModel, len(releases))
	for i, rel := range releases {
		if detailed && k8sClient != nil {
			viewModels[i] = cli.ReleaseToViewModelWithPods(ctx, k8sClient, rel)
		} else {
			viewModels[i] = cli.ReleaseToViewModel(rel)
		}
	}
	return viewModels
}

func outputJSON(ctx context.Context, releases []*v1.Release, detailed bool, k8sClient *k8s.Client) error {
	viewModels := buildViewModels(ctx, releases, detailed, k8sClient)

	out, err := json.MarshalIndent(viewModels, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize json: %w", err)
	}

	colorized, err := cli.ColorizeJSONWithChroma(out)
	if err != nil {
		fmt.Println(string(out))
		return nil
	}

	fmt.Print(colorized)
	return nil
}

func outputYAML(ctx context.Context, releases []*v1.Release, detailed bool, k8sClient *k8s.Client) error {
	viewModels := buildViewModels(ctx, releases, detailed, k8sClient)

	out, err := yaml.Marshal(viewModels)
	if err != nil {
		return fmt.Errorf("failed to serialize yaml: %w", err)
	}

	colorized, err := cli.ColorizeYAMLWithChroma(out)
	if err != nil {
		fmt.Print(string(out))
		return nil
	}

	fmt.Print(colorized)
	return nil
}

func printTable(ctx context.Context, releases []*v1.Release, detailed bool, k8sClient *k8s.Client) {
	columns := cli.GetTableColumns(detailed)
	table := ui.NewTable().SetColumns(columns)

	viewModels := buildViewModels(ctx, releases, detailed, k8sClient)

	rows := make([]ui.Row, len(viewModels))
	for i, vm := range viewModels {
		row := cli.ViewModelToRow(vm)
		row["status"] = fmt.Sprintf("● %s", vm.Status)
		rows[i] = row
	}

	table.SetRows(rows).Print()
}
