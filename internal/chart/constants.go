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

package chart

// Chart Identity
const (
	// Name is the declared name of the embedded nest chart.
	Name = "nest"

	// Version is the chart version stamped into Chart.yaml.
	Version = "0.1.0"

	// AppVersion is the nest service version the chart deploys by default.
	AppVersion = "1.0.0"

	// Description is the chart description stamped into Chart.yaml.
	Description = "The nest home-automation service"
)

// Packaging Constants
const (
	// TempChartPrefix is the prefix for temporary chart directories.
	TempChartPrefix = "nestops-chart-"

	// ChartYamlTemplate is the template file name for Chart.yaml.
	ChartYamlTemplate = "Chart.yaml.gotmpl"

	// ValuesYamlFile is the name of the values file.
	ValuesYamlFile = "values.yaml"
)
