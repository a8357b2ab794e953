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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	v1 "helm.sh/helm/v4/pkg/release/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"

	"github.com/nestops-dev/nestops/internal/release"
)

// MockHelmClient is a mock implementation of HelmClient for testing
type MockHelmClient struct {
	mock.Mock
}

func (m *MockHelmClient) Install(ctx context.Context, rc release.Context, vals map[string]any, dryRun bool) error {
	args := m.Called(ctx, rc, vals, dryRun)
	return args.Error(0)
}

func (m *MockHelmClient) Render(ctx context.Context, rc release.Context, vals map[string]any) (*v1.Release, error) {
	args := m.Called(ctx, rc, vals)
	return args.Get(0).(*v1.Release), args.Error(1)
}

func (m *MockHelmClient) Uninstall(ctx context.Context, releaseName string) error {
	args := m.Called(ctx, releaseName)
	return args.Error(0)
}

func (m *MockHelmClient) Get(ctx context.Context, releaseName string) (*v1.Release, error) {
	args := m.Called(ctx, releaseName)
	return args.Get(0).(*v1.Release), args.Error(1)
}

func (m *MockHelmClient) List(ctx context.Context, selector labels.Selector) ([]*v1.Release, error) {
	args := m.Called(ctx, selector)
	return args.Get(0).([]*v1.Release), args.Error(1)
}

func (m *MockHelmClient) History(ctx context.Context, releaseName string) ([]*v1.Release, error) {
	args := m.Called(ctx, releaseName)
	return args.Get(0).([]*v1.Release), args.Error(1)
}

func (m *MockHelmClient) Rollback(ctx context.Context, releaseName string, revision int) error {
	args := m.Called(ctx, releaseName, revision)
	return args.Error(0)
}

// MockKubernetesClient is a mock implementation of KubernetesClient for testing
type MockKubernetesClient struct {
	kubernetes.Interface
	mock.Mock
}

func TestHelmClientIsMemoized(t *testing.T) {
	calls := 0
	mockHelm := &MockHelmClient{}

	rt := New(WithHelmFactory(func(*Runtime) (HelmClient, error) {
		calls++
		return mockHelm, nil
	}))

	first, err := rt.Helm()
	require.NoError(t, err)
	second, err := rt.Helm()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestHelmFactoryErrorIsPropagated(t *testing.T) {
	rt := New(
		WithNamespace("nest"),
		WithHelmFactory(func(*Runtime) (HelmClient, error) {
			return nil, errors.New("boom")
		}),
	)

	_, err := rt.Helm()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `namespace="nest"`)
}

func TestKubernetesClientIsMemoized(t *testing.T) {
	calls := 0
	mockK8s := &MockKubernetesClient{}

	rt := New(WithKubernetesFactory(func(*Runtime) (KubernetesClient, error) {
		calls++
		return mockK8s, nil
	}))

	first, err := rt.Kubernetes()
	require.NoError(t, err)
	second, err := rt.Kubernetes()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestValuesAreMemoized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("replicaCount: 2\n"), 0o644))

	rt := New(WithValuesPath(path))

	first, err := rt.Values(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.ReplicaCount)

	// Editing the file after the first load must not change the result.
	require.NoError(t, os.WriteFile(path, []byte("replicaCount: 5\n"), 0o644))
	second, err := rt.Values(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestNamespaceDefault(t *testing.T) {
	assert.Equal(t, DefaultNamespace, New().Namespace())
	assert.Equal(t, "nest", New(WithNamespace("nest")).Namespace())
}

func TestRuntimeContextRoundTrip(t *testing.T) {
	rt := New()
	ctx := WithRuntime(context.Background(), rt)

	assert.Same(t, rt, FromRuntime(ctx))
	assert.Nil(t, FromRuntime(context.Background()))
}

func TestCloseResetsClients(t *testing.T) {
	calls := 0
	rt := New(WithHelmFactory(func(*Runtime) (HelmClient, error) {
		calls++
		return &MockHelmClient{}, nil
	}))

	_, err := rt.Helm()
	require.NoError(t, err)
	require.NoError(t, rt.Close())
	_, err = rt.Helm()
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestValidateTimeout(t *testing.T) {
	assert.True(t, ValidateTimeout(5*time.Minute))
	assert.False(t, ValidateTimeout(time.Second))
	assert.False(t, ValidateTimeout(2*time.Hour))
}

func TestValidateStorageDriver(t *testing.T) {
	for _, driver := range GetValidStorageDrivers() {
		assert.True(t, ValidateStorageDriver(driver))
	}
	assert.False(t, ValidateStorageDriver("postgres"))
}
