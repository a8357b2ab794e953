package values

// Defaults returns the chart's built-in values, matching the values.yaml
// shipped inside the embedded chart. User-supplied values are merged on
// top of this baseline before validation.
func Defaults() Values {
	return Values{
		ReplicaCount: 1,
		Image: Image{
			Repository: DefaultImageRepository,
			PullPolicy: DefaultImagePullPolicy,
		},
		ServiceAccount: ServiceAccount{
			Create: true,
		},
		Service: Service{
			Type: DefaultServiceType,
			Port: DefaultServicePort,
		},
		Probes: Probes{
			Liveness: Probe{
				Path:                DefaultLivenessPath,
				InitialDelaySeconds: 10,
				PeriodSeconds:       30,
				TimeoutSeconds:      5,
			},
			Readiness: Probe{
				Path:                DefaultReadinessPath,
				InitialDelaySeconds: 5,
				PeriodSeconds:       10,
				TimeoutSeconds:      5,
			},
		},
		Resources: Resources{
			Requests: map[string]string{
				"cpu":    "100m",
				"memory": "128Mi",
			},
			Limits: map[string]string{
				"cpu":    "500m",
				"memory": "256Mi",
			},
		},
		Autoscaling: Autoscaling{
			Enabled:                        false,
			MinReplicas:                    1,
			MaxReplicas:                    3,
			TargetCPUUtilizationPercentage: 80,
		},
	}
}
