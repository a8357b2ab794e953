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

package runtime

import (
	"context"

	v1 "helm.sh/helm/v4/pkg/release/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"

	"github.com/nestops-dev/nestops/internal/release"
	"github.com/nestops-dev/nestops/internal/values"
)

// HelmClient defines the interface for Helm operations.
// This abstraction allows for easier testing and potential alternative implementations.
type HelmClient interface {
	// Install installs or upgrades a release of the embedded chart
	Install(ctx context.Context, rc release.Context, vals map[string]any, dryRun bool) error

	// Render renders the chart client-side without touching the cluster
	Render(ctx context.Context, rc release.Context, vals map[string]any) (*v1.Release, error)

	// Uninstall removes a release
	Uninstall(ctx context.Context, releaseName string) error

	// Get retrieves the latest revision of a release
	Get(ctx context.Context, releaseName string) (*v1.Release, error)

	// List returns the nestops-managed releases matching the selector
	List(ctx context.Context, selector labels.Selector) ([]*v1.Release, error)

	// History returns the revision history of a release
	History(ctx context.Context, releaseName string) ([]*v1.Release, error)

	// Rollback rolls a release back to a previous revision
	Rollback(ctx context.Context, releaseName string, revision int) error
}

// KubernetesClient defines the interface for Kubernetes operations.
// This abstraction enables testing with mock Kubernetes clients.
type KubernetesClient interface {
	kubernetes.Interface
}

// ValuesLoader defines the interface for loading chart values.
type ValuesLoader interface {
	// Load reads, merges, and validates a values file
	Load(path string) (*values.Values, error)
}

// LoggerProvider defines the interface for logging operations.
// This enables structured logging with different implementations and levels.
type LoggerProvider interface {
	// Debug logs a debug-level message
	Debug(msg string, keyvals ...interface{})

	// Info logs an info-level message
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning-level message
	Warn(msg string, keyvals ...interface{})

	// Error logs an error-level message
	Error(msg string, keyvals ...interface{})

	// Fatal logs a fatal-level message and exits
	Fatal(msg string, keyvals ...interface{})

	// With returns a new logger with the given key-value pairs
	With(keyvals ...interface{}) LoggerProvider
}
