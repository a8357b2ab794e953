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

// Package k8s provides functions to interact with Kubernetes selectors.
package k8s

import (
	"fmt"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"

	"github.com/nestops-dev/nestops/internal/release"
)

// SelectorBuilder assembles label selectors from the labels the release
// derivation stamps on every object.
type SelectorBuilder struct {
	selector labels.Selector
}

// NewSelectorBuilder creates a new selector builder.
func NewSelectorBuilder() *SelectorBuilder {
	return &SelectorBuilder{
		selector: labels.NewSelector(),
	}
}

// WithInstance adds an instance (release name) requirement to the selector.
func (sb *SelectorBuilder) WithInstance(instance string) (*SelectorBuilder, error) {
	if instance == "" {
		return sb, nil
	}

	req, err := labels.NewRequirement(release.LabelInstance, selection.Equals, []string{instance})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance label requirement: %w", err)
	}
	sb.selector = sb.selector.Add(*req)
	return sb, nil
}

// WithName adds an application name requirement to the selector.
func (sb *SelectorBuilder) WithName(name string) (*SelectorBuilder, error) {
	if name == "" {
		return sb, nil
	}

	req, err := labels.NewRequirement(release.LabelName, selection.Equals, []string{name})
	if err != nil {
		return nil, fmt.Errorf("failed to create name label requirement: %w", err)
	}
	sb.selector = sb.selector.Add(*req)
	return sb, nil
}

// Build returns the final label selector string.
func (sb *SelectorBuilder) Build() string {
	return sb.selector.String()
}

// BuildSelector builds a selector string matching the pods of a release.
// Both criteria are optional; an empty selector matches everything.
func BuildSelector(instance, name string) (string, error) {
	builder := NewSelectorBuilder()

	var err error
	builder, err = builder.WithInstance(instance)
	if err != nil {
		return "", err
	}

	builder, err = builder.WithName(name)
	if err != nil {
		return "", err
	}

	return builder.Build(), nil
}

// ReleaseSelector builds the selector matching exactly the pods the
// chart's Deployment selects for the given context.
func ReleaseSelector(rc release.Context) (string, error) {
	return BuildSelector(rc.ReleaseName, rc.ShortName())
}
