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

// Package k8s provides functions to interact with Kubernetes pods.
package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/nestops-dev/nestops/internal/release"
)

// PodInfo contains information about a pod.
type PodInfo struct {
	Name       string
	Namespace  string
	Containers []string
	Status     string
}

// GetRunningPods lists the running pods belonging to a release.
func (c *Client) GetRunningPods(ctx context.Context, releaseName string) ([]PodInfo, error) {
	selector, err := BuildSelector(releaseName, "")
	if err != nil {
		return nil, fmt.Errorf("failed to build selector: %w", err)
	}

	pods, err := c.k8sClient.CoreV1().Pods(c.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
		FieldSelector: "status.phase=Running",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	podInfos := make([]PodInfo, 0, len(pods.Items))
	for _, pod := range pods.Items {
		containers := make([]string, 0, len(pod.Spec.Containers))
		for _, container := range pod.Spec.Containers {
			containers = append(containers, container.Name)
		}

		podInfos = append(podInfos, PodInfo{
			Name:       pod.Name,
			Namespace:  pod.Namespace,
			Containers: containers,
			Status:     string(pod.Status.Phase),
		})
	}

	return podInfos, nil
}

// GetPodStatus counts the pods of a release and how many are ready.
// The third return value is a display string like "2/3".
func (c *Client) GetPodStatus(ctx context.Context, releaseName string) (int, int, string, error) {
	selector := fmt.Sprintf("%s=%s", release.LabelInstance, releaseName)

	pods, err := c.k8sClient.CoreV1().Pods(c.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return 0, 0, "0/0", fmt.Errorf("failed to list pods for release %s: %w", releaseName, err)
	}

	totalPods := len(pods.Items)
	readyPods := 0

	for _, pod := range pods.Items {
		if pod.Status.Phase == corev1.PodRunning && isPodReady(pod) {
			readyPods++
		}
	}

	return totalPods, readyPods, fmt.Sprintf("%d/%d", readyPods, totalPods), nil
}

// isPodReady reports whether every container in the pod is ready.
func isPodReady(pod corev1.Pod) bool {
	for _, container := range pod.Status.ContainerStatuses {
		if !container.Ready {
			return false
		}
	}
	return true
}
