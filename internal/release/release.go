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

// Package release derives the names and labels for one deployed instance
// of the nest chart. The same derivation rules live in the chart's
// helpers.tpl so that manifests rendered out-of-band by plain Helm agree
// with what this package computes; this package is the testable source of
// truth the CLI uses for release labels, selectors, and status lookups.
package release

import (
	"fmt"
	"strings"
)

// Context carries the inputs a single render/install operation derives
// names from. It is treated as immutable: every method has a value
// receiver and the same Context always yields the same output.
type Context struct {
	// ChartName is the chart's declared name. Required.
	ChartName string

	// ChartVersion is the chart's semver-like version. It may contain
	// build metadata after a "+".
	ChartVersion string

	// AppVersion is the version of the deployed application, or empty
	// when the chart does not declare one.
	AppVersion string

	// ReleaseName is the release identifier chosen at install time. Required.
	ReleaseName string

	// Service is the name of the tool performing the release, used for
	// the app.kubernetes.io/managed-by label. Defaults to "Helm".
	Service string

	// NameOverride replaces the chart name as the base of derived names
	// when non-empty.
	NameOverride string

	// FullnameOverride replaces the whole fully-qualified name when
	// non-empty.
	FullnameOverride string

	// CreateServiceAccount mirrors the chart's serviceAccount.create value.
	CreateServiceAccount bool

	// ServiceAccount is the user-supplied service account name, or empty.
	ServiceAccount string
}

// Validate reports a configuration error when a required field is empty.
// Empty names must fail fast: Kubernetes rejects empty object names, and
// defaulting them silently would hide the broken configuration.
func (c Context) Validate() error {
	if c.ChartName == "" {
		return fmt.Errorf("release context: chart name must not be empty")
	}
	if c.ReleaseName == "" {
		return fmt.Errorf("release context: release name must not be empty")
	}
	return nil
}

// truncateName enforces the 63-character DNS label limit Kubernetes
// applies to name fields and strips any hyphens the cut left dangling.
func truncateName(name string) string {
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return strings.TrimRight(name, "-")
}

// baseName is the short name before truncation, shared by ShortName and
// FullName so both derive from the same override precedence.
func (c Context) baseName() string {
	if c.NameOverride != "" {
		return c.NameOverride
	}
	return c.ChartName
}

// ShortName returns the chart name, or the name override when set,
// truncated to the DNS label limit.
func (c Context) ShortName() string {
	return truncateName(c.baseName())
}

// FullName returns the fully-qualified release name used for most
// resource names. When the release name already embeds the chart name
// (release "nest-prod" for chart "nest") the release name is used as-is
// instead of producing "nest-prod-nest". The containment check is a
// literal substring match; existing releases depend on exactly this
// behavior, so it must not get smarter about case or token boundaries.
func (c Context) FullName() string {
	if c.FullnameOverride != "" {
		return truncateName(c.FullnameOverride)
	}
	base := c.baseName()
	if strings.Contains(c.ReleaseName, base) {
		return truncateName(c.ReleaseName)
	}
	return truncateName(c.ReleaseName + "-" + base)
}

// ChartID returns the chart name and version joined for the helm.sh/chart
// label. "+" is not a valid character in label values, so semver build
// metadata separators become "_".
func (c Context) ChartID() string {
	id := c.ChartName + "-" + c.ChartVersion
	return truncateName(strings.ReplaceAll(id, "+", "_"))
}

// SelectorLabels returns the labels Deployments and Services match pods
// on. Selectors are immutable after creation, so the shape and values of
// this map are a compatibility contract: changing it would break
// upgrades of every existing release.
func (c Context) SelectorLabels() map[string]string {
	return map[string]string{
		LabelName:     c.ShortName(),
		LabelInstance: c.ReleaseName,
	}
}

// Labels returns the full standard label set applied to every rendered
// object. It is always a superset of SelectorLabels.
func (c Context) Labels() map[string]string {
	labels := c.SelectorLabels()
	labels[LabelChart] = c.ChartID()
	if c.AppVersion != "" {
		labels[LabelVersion] = c.AppVersion
	}
	labels[LabelManagedBy] = c.service()
	return labels
}

// ServiceAccountName returns the service account the workload runs as.
// When the chart manages the account, the explicit name wins over the
// fully-qualified release name; otherwise an unset name falls back to
// the namespace default account.
func (c Context) ServiceAccountName() string {
	if c.CreateServiceAccount {
		if c.ServiceAccount != "" {
			return c.ServiceAccount
		}
		return c.FullName()
	}
	if c.ServiceAccount != "" {
		return c.ServiceAccount
	}
	return DefaultServiceAccountName
}

func (c Context) service() string {
	if c.Service != "" {
		return c.Service
	}
	return DefaultService
}
