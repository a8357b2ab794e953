package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSemantics(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *Values)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(v *Values) {},
		},
		{
			name: "empty image repository",
			mutate: func(v *Values) {
				v.Image.Repository = ""
			},
			wantErr: "invalid image configuration",
		},
		{
			name: "unparseable image repository",
			mutate: func(v *Values) {
				v.Image.Repository = "ghcr.io/Nestops Dev/nest"
			},
			wantErr: "invalid image configuration",
		},
		{
			name: "malformed image tag",
			mutate: func(v *Values) {
				v.Image.Tag = "-latest"
			},
			wantErr: "invalid image configuration",
		},
		{
			name: "pinned digest is valid",
			mutate: func(v *Values) {
				v.Image.Digest = "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
			},
		},
		{
			name: "autoscaling disabled skips replica bounds",
			mutate: func(v *Values) {
				v.Autoscaling.Enabled = false
				v.Autoscaling.MinReplicas = 10
				v.Autoscaling.MaxReplicas = 2
			},
		},
		{
			name: "autoscaling min above max",
			mutate: func(v *Values) {
				v.Autoscaling.Enabled = true
				v.Autoscaling.MinReplicas = 5
				v.Autoscaling.MaxReplicas = 2
			},
			wantErr: "minimum replicas",
		},
		{
			name: "cpu request in millicores",
			mutate: func(v *Values) {
				v.Resources.Requests = map[string]string{"cpu": "250m"}
			},
		},
		{
			name: "invalid cpu request",
			mutate: func(v *Values) {
				v.Resources.Requests = map[string]string{"cpu": "lots"}
			},
			wantErr: "invalid resource request",
		},
		{
			name: "memory limit without unit",
			mutate: func(v *Values) {
				v.Resources.Limits = map[string]string{"memory": "512"}
			},
			wantErr: "invalid resource limit",
		},
		{
			name: "memory limit with binary unit",
			mutate: func(v *Values) {
				v.Resources.Limits = map[string]string{"memory": "512Mi"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := Defaults()
			tt.mutate(&vals)

			err := vals.ValidateSemantics()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
