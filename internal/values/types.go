package values

// Values defines the configurable surface of the nest chart. Everything
// here is passed through to the chart unchanged after validation; nestops
// interprets only the naming-related fields (nameOverride,
// fullnameOverride, serviceAccount) when deriving release names.
type Values struct {
	ReplicaCount     int            `json:"replicaCount,omitempty" yaml:"replicaCount,omitempty"`
	Image            Image          `json:"image" yaml:"image"`
	ImagePullSecrets []NameRef      `json:"imagePullSecrets,omitempty" yaml:"imagePullSecrets,omitempty"`
	NameOverride     string         `json:"nameOverride,omitempty" yaml:"nameOverride,omitempty"`
	FullnameOverride string         `json:"fullnameOverride,omitempty" yaml:"fullnameOverride,omitempty"`
	ServiceAccount   ServiceAccount `json:"serviceAccount" yaml:"serviceAccount"`
	PodAnnotations   map[string]string `json:"podAnnotations,omitempty" yaml:"podAnnotations,omitempty"`
	Service          Service        `json:"service" yaml:"service"`
	Ingress          Ingress        `json:"ingress" yaml:"ingress"`
	Probes           Probes         `json:"probes" yaml:"probes"`
	Resources        Resources      `json:"resources" yaml:"resources"`
	Autoscaling      Autoscaling    `json:"autoscaling" yaml:"autoscaling"`
	Env              map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	NodeSelector     map[string]string `json:"nodeSelector,omitempty" yaml:"nodeSelector,omitempty"`
	Tolerations      []map[string]any  `json:"tolerations,omitempty" yaml:"tolerations,omitempty"`
	Affinity         map[string]any    `json:"affinity,omitempty" yaml:"affinity,omitempty"`
}

// Image identifies the container image to deploy.
type Image struct {
	Repository string `json:"repository" yaml:"repository"`
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Digest     string `json:"digest,omitempty" yaml:"digest,omitempty"`
	PullPolicy string `json:"pullPolicy,omitempty" yaml:"pullPolicy,omitempty"`
}

// NameRef is a reference to a named object, such as a pull secret.
type NameRef struct {
	Name string `json:"name" yaml:"name"`
}

// ServiceAccount controls whether the chart manages a service account and
// what it is called. An empty name means "derive it" (see the release
// package for the derivation rules).
type ServiceAccount struct {
	Create      bool              `json:"create" yaml:"create"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
}

// Service defines how the workload is exposed inside the cluster.
type Service struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// Ingress specifies the ingress settings for exposing the service via HTTP/HTTPS.
type Ingress struct {
	Enabled     bool              `json:"enabled" yaml:"enabled"`
	ClassName   string            `json:"className,omitempty" yaml:"className,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Host        string            `json:"host,omitempty" yaml:"host,omitempty"`
	TLS         bool              `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// Probes groups the HTTP health checks the kubelet runs against the pod.
type Probes struct {
	Liveness  Probe `json:"liveness" yaml:"liveness"`
	Readiness Probe `json:"readiness" yaml:"readiness"`
}

// Probe defines a single HTTP health check.
type Probe struct {
	Path                string `json:"path" yaml:"path"`
	InitialDelaySeconds int    `json:"initialDelaySeconds,omitempty" yaml:"initialDelaySeconds,omitempty"`
	PeriodSeconds       int    `json:"periodSeconds,omitempty" yaml:"periodSeconds,omitempty"`
	TimeoutSeconds      int    `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
}

// Resources defines the resource requests and limits for the container.
type Resources struct {
	Requests map[string]string `json:"requests,omitempty" yaml:"requests,omitempty"`
	Limits   map[string]string `json:"limits,omitempty" yaml:"limits,omitempty"`
}

// Autoscaling defines the horizontal pod autoscaler settings.
type Autoscaling struct {
	Enabled                           bool `json:"enabled" yaml:"enabled"`
	MinReplicas                       int  `json:"minReplicas,omitempty" yaml:"minReplicas,omitempty"`
	MaxReplicas                       int  `json:"maxReplicas,omitempty" yaml:"maxReplicas,omitempty"`
	TargetCPUUtilizationPercentage    int  `json:"targetCPUUtilizationPercentage,omitempty" yaml:"targetCPUUtilizationPercentage,omitempty"`
	TargetMemoryUtilizationPercentage int  `json:"targetMemoryUtilizationPercentage,omitempty" yaml:"targetMemoryUtilizationPercentage,omitempty"`
}
