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

// Package values loads, validates, and defaults the nest chart values.
package values

// File and Path Constants
const (
	// DefaultValuesPath is the default path for the values file.
	DefaultValuesPath = "nest-values.yaml"
)

// Image Defaults
const (
	// DefaultImageRepository is the nest service image.
	DefaultImageRepository = "ghcr.io/nestops-dev/nest"

	// DefaultImagePullPolicy avoids re-pulling immutable tags.
	DefaultImagePullPolicy = "IfNotPresent"
)

// Service Defaults
const (
	// DefaultServiceType exposes the service inside the cluster only.
	DefaultServiceType = "ClusterIP"

	// DefaultServicePort is the port the nest service listens on.
	DefaultServicePort = 5091
)

// Probe Defaults are the HTTP health endpoints the nest service exposes.
const (
	DefaultLivenessPath  = "/api/health/alive"
	DefaultReadinessPath = "/api/health/ready"
)
