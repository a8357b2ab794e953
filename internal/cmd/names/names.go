// Package names implements the names sub-command.
package names

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/nestops-dev/nestops/internal/chart"
	"github.com/nestops-dev/nestops/internal/cli"
	"github.com/nestops-dev/nestops/internal/k8s"
	"github.com/nestops-dev/nestops/internal/release"
	"github.com/nestops-dev/nestops/internal/runtime"
	"github.com/nestops-dev/nestops/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NamesViewModel is the curated output structure for json/yaml output.
type NamesViewModel struct {
	Release            string            `json:"release" yaml:"release"`
	ShortName          string            `json:"shortName" yaml:"shortName"`
	FullName           string            `json:"fullName" yaml:"fullName"`
	Chart              string            `json:"chart" yaml:"chart"`
	ServiceAccountName string            `json:"serviceAccountName" yaml:"serviceAccountName"`
	SelectorLabels     map[string]string `json:"selectorLabels" yaml:"selectorLabels"`
	Labels             map[string]string `json:"labels" yaml:"labels"`
	PodSelector        string            `json:"podSelector" yaml:"podSelector"`
}

// New creates the names sub-command for the CLI.
func New() *cobra.Command {
	namesCommand := &cobra.Command{
		Use:   "names <release-name>",
		Short: "Show the resource names and labels a release would use",
		Long: `Show the resource names, chart identifier, service account name and labels
that a release with the given name would produce, without contacting the cluster.

Useful for predicting the Kubernetes object names a deployment will create,
for example when wiring external DNS records or network policies.`,
		Example: `
# Names for a release called "nest"
nestops names nest

# Names with a fullname override, as JSON
nestops names nest --fullname-override=smart-home --output json
		`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("you must specify exactly one release name (e.g., 'nestops names nest'). Received %d argument(s): %v", len(args), args)
			}
			if strings.TrimSpace(args[0]) == "" {
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
		RunE: runNames,
	}

	namesCommand.Flags().StringP("output", "o", cli.OutputFormatTable, "Output format: table, json, yaml")
	namesCommand.Flags().String("name-override", "", "Override the chart name used for resource naming")
	namesCommand.Flags().String("fullname-override", "", "Override the fully qualified resource name")

	return namesCommand
}

func runNames(cmd *cobra.Command, args []string) error {
	releaseName := args[0]

	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output format: %w", err)
	}

	rc, err := resolveContext(cmd, releaseName)
	if err != nil {
		return err
	}

	podSelector, err := k8s.ReleaseSelector(rc)
	if err != nil {
		return fmt.Errorf("failed to build pod selector: %w", err)
	}

	vm := NamesViewModel{
		Release:            releaseName,
		ShortName:          rc.ShortName(),
		FullName:           rc.FullName(),
		Chart:              rc.ChartID(),
		ServiceAccountName: rc.ServiceAccountName(),
		SelectorLabels:     rc.SelectorLabels(),
		Labels:             rc.Labels(),
		PodSelector:        podSelector,
	}

	switch outputFormat {
	case cli.OutputFormatJSON:
		return outputJSON(cmd, vm)
	case cli.OutputFormatYAML:
		return outputYAML(cmd, vm)
	case cli.OutputFormatTable:
		printTable(vm)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// resolveContext builds the release context from the values file, applying
// any override flags on top. A missing values file is not an error here, the
// defaults describe what a bare deployment would produce.
func resolveContext(cmd *cobra.Command, releaseName string) (release.Context, error) {
	rt := runtime.FromRuntime(cmd.Context())
	if rt == nil {
		return release.Context{}, fmt.Errorf("runtime not initialized")
	}

	vals, err := rt.Values(cmd.Context())
	if err != nil {
		return release.Context{}, fmt.Errorf("failed to load values: %w", err)
	}

	rc := chart.ReleaseContext(releaseName, vals)

	nameOverride, err := cmd.Flags().GetString("name-override")
	if err != nil {
		return release.Context{}, fmt.Errorf("failed to get name-override flag: %w", err)
	}
	fullnameOverride, err := cmd.Flags().GetString("fullname-override")
	if err != nil {
		return release.Context{}, fmt.Errorf("failed to get fullname-override flag: %w", err)
	}

	if nameOverride != "" {
		rc.NameOverride = nameOverride
	}
	if fullnameOverride != "" {
		rc.FullnameOverride = fullnameOverride
	}

	return rc, nil
}

func outputJSON(cmd *cobra.Command, vm NamesViewModel) error {
	out, err := json.MarshalIndent(vm, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize json: %w", err)
	}

	colorized, err := cli.ColorizeJSONWithChroma(out)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), colorized)
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func outputYAML(cmd *cobra.Command, vm NamesViewModel) error {
	out, err := yaml.Marshal(vm)
	if err != nil {
		return fmt.Errorf("failed to serialize yaml: %w", err)
	}

	colorized, err := cli.ColorizeYAMLWithChroma(out)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), colorized)
	return nil
}

func printTable(vm NamesViewModel) {
	rows := []ui.Row{
		{"field": "Release", "value": vm.Release},
		{"field": "Short name", "value": vm.ShortName},
		{"field": "Full name", "value": vm.FullName},
		{"field": "Chart", "value": vm.Chart},
		{"field": "Service account", "value": vm.ServiceAccountName},
		{"field": "Selector labels", "value": formatLabels(vm.SelectorLabels)},
		{"field": "Labels", "value": formatLabels(vm.Labels)},
		{"field": "Pod selector", "value": vm.PodSelector},
	}

	ui.NewTable().
		SetColumns([]ui.Column{
			{Title: "FIELD", Key: "field", MinWidth: 16, MaxWidth: 20},
			{Title: "VALUE", Key: "value", MinWidth: 20},
		}).
		SetRows(rows).
		Print()
}

// formatLabels renders a label map as a stable comma-separated string.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, labels[k]))
	}
	return strings.Join(pairs, ",")
}
