package cli

import (
	"context"
	"fmt"

	"github.com/nestops-dev/nestops/internal/k8s"
	"github.com/nestops-dev/nestops/internal/runtime"
)

// GetHelmClient initializes and returns a Helm client from the runtime context.
func GetHelmClient(ctx context.Context) (runtime.HelmClient, error) {
	rt := runtime.FromRuntime(ctx)
	if rt == nil {
		return nil, fmt.Errorf("runtime not initialized")
	}

	helmClient, err := rt.Helm()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize helm client: %w", err)
	}

	return helmClient, nil
}

// GetKubernetesClient initializes and returns a Kubernetes client from the
// runtime context. Commands that only enrich output with pod information
// should treat an error here as non-fatal.
func GetKubernetesClient(ctx context.Context) (*k8s.Client, error) {
	rt := runtime.FromRuntime(ctx)
	if rt == nil {
		return nil, fmt.Errorf("runtime not initialized")
	}

	kubeClient, err := k8s.NewClientFromRuntime(ctx, rt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize kubernetes client: %w", err)
	}

	return kubeClient, nil
}
