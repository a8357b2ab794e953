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

package release

// Naming Constants
const (
	// MaxNameLength is the DNS label limit Kubernetes enforces on names.
	MaxNameLength = 63

	// DefaultServiceAccountName is the namespace default service account.
	DefaultServiceAccountName = "default"

	// DefaultService is the managed-by value when no releasing tool name
	// is supplied.
	DefaultService = "Helm"
)

// Kubernetes Recommended Labels
const (
	// LabelName is the label key for the application name.
	LabelName = "app.kubernetes.io/name"

	// LabelInstance is the label key for the release instance.
	LabelInstance = "app.kubernetes.io/instance"

	// LabelChart is the label key for the chart name and version.
	LabelChart = "helm.sh/chart"

	// LabelVersion is the label key for the application version.
	LabelVersion = "app.kubernetes.io/version"

	// LabelManagedBy is the label key for the releasing tool.
	LabelManagedBy = "app.kubernetes.io/managed-by"
)
