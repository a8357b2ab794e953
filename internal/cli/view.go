// Copyright 2025 The Nestops Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/nestops-dev/nestops/internal/k8s"
	"github.com/nestops-dev/nestops/internal/release"
	"github.com/nestops-dev/nestops/internal/ui"
	"github.com/spf13/cast"
	v1 "helm.sh/helm/v4/pkg/release/v1"
)

// ReleaseViewModel is the curated output structure for json/yaml output,
// matching what is displayed in table mode.
type ReleaseViewModel struct {
	Release      string         `json:"release" yaml:"release"`
	Namespace    string         `json:"namespace" yaml:"namespace"`
	Chart        string         `json:"chart" yaml:"chart"`
	AppVersion   string         `json:"appVersion,omitempty" yaml:"appVersion,omitempty"`
	Status       string         `json:"status" yaml:"status"`
	Revision     int            `json:"revision" yaml:"revision"`
	LastDeployed string         `json:"lastDeployed,omitempty" yaml:"lastDeployed,omitempty"`
	Age          string         `json:"age,omitempty" yaml:"age,omitempty"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Values       map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
	Notes        string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	PodCount     int            `json:"podCount" yaml:"podCount"`
	ReadyPods    int            `json:"readyPods" yaml:"readyPods"`
	PodStatus    string         `json:"podStatus" yaml:"podStatus"` // e.g., "3/3", "2/3", "0/3"
}

// chartID reads the chart identifier from the release labels, falling back
// to the chart metadata carried by the release itself.
func chartID(rel *v1.Release) (chart, appVersion string) {
	if rel.Labels != nil {
		chart = rel.Labels[release.LabelChart]
		appVersion = rel.Labels[release.LabelVersion]
	}
	if rel.Chart != nil && rel.Chart.Metadata != nil {
		if chart == "" {
			chart = rel.Chart.Metadata.Name + "-" + rel.Chart.Metadata.Version
		}
		if appVersion == "" {
			appVersion = rel.Chart.Metadata.AppVersion
		}
	}
	return chart, appVersion
}

// getPodInfo retrieves pod information for a release
func getPodInfo(ctx context.Context, k8sClient *k8s.Client, rel *v1.Release) (int, int, string) {
	if k8sClient == nil {
		return 0, 0, "0/0"
	}

	totalPods, readyPods, status, err := k8sClient.GetPodStatus(ctx, rel.Name)
	if err != nil {
		return 0, 0, "0/0"
	}

	return totalPods, readyPods, status
}

// ReleaseToViewModel converts a Helm release to a view model for output
func ReleaseToViewModel(rel *v1.Release) ReleaseViewModel {
	chart, appVersion := chartID(rel)

	vm := ReleaseViewModel{
		Release:    rel.Name,
		Namespace:  rel.Namespace,
		Chart:      chart,
		AppVersion: appVersion,
		Revision:   rel.Version,
		Status:     "unknown",
	}

	if rel.Info != nil {
		vm.Status = rel.Info.Status.String()
		if !rel.Info.LastDeployed.IsZero() {
			vm.LastDeployed = rel.Info.LastDeployed.Format(time.RFC3339)
			vm.Age = humanize.Time(rel.Info.LastDeployed.Time)
		}
		vm.Description = rel.Info.Description
		vm.Notes = rel.Info.Notes
	}

	if len(rel.Config) > 0 {
		vm.Values = rel.Config
	}

	return vm
}

// ReleaseToViewModelWithPods converts a Helm release to a view model with pod information
func ReleaseToViewModelWithPods(ctx context.Context, k8sClient *k8s.Client, rel *v1.Release) ReleaseViewModel {
	vm := ReleaseToViewModel(rel)

	totalPods, readyPods, podStatus := getPodInfo(ctx, k8sClient, rel)
	vm.PodCount = totalPods
	vm.ReadyPods = readyPods
	vm.PodStatus = podStatus

	return vm
}

// ViewModelToRow converts a view model to a table row.
func ViewModelToRow(vm ReleaseViewModel) ui.Row {
	return ui.Row{
		"release":   vm.Release,
		"namespace": vm.Namespace,
		"chart":     vm.Chart,
		"status":    vm.Status,
		"ready":     vm.PodStatus,
		"revision":  cast.ToString(vm.Revision),
		"age":       vm.Age,
	}
}

// GetTableColumns returns the release table column configuration. Pod
// columns are shown only when detailed is set.
func GetTableColumns(detailed bool) []ui.Column {
	return []ui.Column{
		{
			Title:    "RELEASE",
			Key:      "release",
			MinWidth: 10,
			MaxWidth: 30,
			StyleFunc: func(value string) lipgloss.Style {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorBrightWhite))
			},
		},
		{
			Title:    "STATUS",
			Key:      "status",
			MinWidth: 10,
			MaxWidth: 16,
			StyleFunc: func(value string) lipgloss.Style {
				return ui.GetStatusStyle(value)
			},
		},
		{
			Title:    "READY",
			Key:      "ready",
			MinWidth: 6,
			MaxWidth: 10,
			StyleFunc: func(value string) lipgloss.Style {
				return ui.GetReadyStyle(value)
			},
			Hidden: !detailed,
		},
		{
			Title: "REV",
			Key:   "revision",
			Width: 4,
			StyleFunc: func(value string) lipgloss.Style {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorGray))
			},
		},
		{
			Title:    "CHART",
			Key:      "chart",
			MinWidth: 10,
			MaxWidth: 20,
			StyleFunc: func(value string) lipgloss.Style {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorGray))
			},
		},
		{
			Title:    "AGE",
			Key:      "age",
			MinWidth: 8,
			MaxWidth: 20,
			StyleFunc: func(value string) lipgloss.Style {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorGray))
			},
		},
		{
			Title:    "NAMESPACE",
			Key:      "namespace",
			MinWidth: 10,
			MaxWidth: 15,
			StyleFunc: func(value string) lipgloss.Style {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorGray))
			},
		},
	}
}
