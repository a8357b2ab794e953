package helm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nestops-dev/nestops/internal/release"
	"github.com/stretchr/testify/assert"
	"helm.sh/helm/v4/pkg/storage/driver"
)

func TestWrapHelmError(t *testing.T) {
	c := &Client{}

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "driver not found error",
			err:     fmt.Errorf("query: %w", driver.ErrReleaseNotFound),
			wantMsg: "release 'nest' not found",
		},
		{
			name:    "not found in message",
			err:     errors.New("release: not found"),
			wantMsg: "release 'nest' not found",
		},
		{
			name:    "pending operation",
			err:     errors.New("another operation (install/upgrade/rollback) is in progress"),
			wantMsg: "another operation is in progress for release 'nest', please try again later",
		},
		{
			name:    "timeout",
			err:     errors.New("timeout waiting for resources"),
			wantMsg: "operation timed out for release 'nest'",
		},
		{
			name:    "connection refused",
			err:     errors.New("dial tcp 127.0.0.1:6443: connection refused"),
			wantMsg: "unable to connect to Kubernetes cluster",
		},
		{
			name:    "forbidden",
			err:     errors.New("secrets is forbidden for user"),
			wantMsg: "insufficient permissions for install operation on release 'nest'",
		},
		{
			name:    "already exists",
			err:     errors.New("cannot re-use a name that is still in use: already exists"),
			wantMsg: "release 'nest' already exists",
		},
		{
			name:    "unknown error",
			err:     errors.New("kaboom"),
			wantMsg: "helm install failed for release 'nest'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.wrapHelmError("install", "nest", tt.err)
			assert.ErrorContains(t, got, tt.wantMsg)
		})
	}
}

func TestReleaseLabels(t *testing.T) {
	rc := release.Context{
		ChartName:    "nest",
		ChartVersion: "0.1.0",
		AppVersion:   "1.0.0",
		ReleaseName:  "prod",
	}

	got := releaseLabels(rc)

	assert.Equal(t, ManagedByValue, got[release.LabelManagedBy])
	assert.Equal(t, "prod", got[release.LabelInstance])
	assert.Equal(t, "nest", got[release.LabelName])

	// The caller's context must not be mutated, the chart templates still
	// render managed-by from .Release.Service.
	assert.Empty(t, rc.Service)
}
