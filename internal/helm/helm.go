// Package helm wraps the Helm SDK actions nestops uses to install,
// inspect, and remove releases of the embedded nest chart.
package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"helm.sh/helm/v4/pkg/action"
	"helm.sh/helm/v4/pkg/chart/v2/loader"
	"helm.sh/helm/v4/pkg/cli"
	"helm.sh/helm/v4/pkg/kube"
	v1 "helm.sh/helm/v4/pkg/release/v1"
	"helm.sh/helm/v4/pkg/storage/driver"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"

	"github.com/nestops-dev/nestops/internal/chart"
	"github.com/nestops-dev/nestops/internal/release"
)

type Client struct {
	settings      *cli.EnvSettings
	config        *action.Configuration
	timeout       time.Duration
	namespace     string
	kubeconfig    string
	storageDriver string
	debug         bool
}

// Option is a functional option for configuring the Helm client
type Option func(*Client)

// WithNamespace sets the Kubernetes namespace for Helm operations
func WithNamespace(namespace string) Option {
	return func(c *Client) {
		c.namespace = namespace
	}
}

// WithKubeconfig sets the path to the kubeconfig file
func WithKubeconfig(kubeconfig string) Option {
	return func(c *Client) {
		c.kubeconfig = kubeconfig
	}
}

// WithStorageDriver sets the Helm storage driver (secret, configmap, or memory)
func WithStorageDriver(driver string) Option {
	return func(c *Client) {
		c.storageDriver = driver
	}
}

// WithTimeout sets the default timeout for Helm operations
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithDebug controls whether to keep temporary chart directories.
func WithDebug(keep bool) Option {
	return func(c *Client) {
		c.debug = keep
	}
}

// NewClient initializes Helm action configuration with functional options.
// Default storage driver is "secret" if not specified.
// Default timeout is 5 minutes if not specified.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		storageDriver: DefaultStorageDriver,
		timeout:       5 * time.Minute,
	}

	for _, opt := range opts {
		opt(c)
	}

	settings := cli.New()

	if c.kubeconfig != "" {
		settings.KubeConfig = c.kubeconfig
	}
	if c.namespace != "" {
		settings.SetNamespace(c.namespace)
	}

	validDrivers := map[string]bool{"secret": true, "configmap": true, "memory": true}
	if !validDrivers[c.storageDriver] {
		return nil, fmt.Errorf("invalid storage driver '%s': must be one of 'secret', 'configmap', or 'memory'", c.storageDriver)
	}

	c.config = new(action.Configuration)
	if err := c.config.Init(settings.RESTClientGetter(), settings.Namespace(), c.storageDriver); err != nil {
		return nil, fmt.Errorf("failed to initialize Helm configuration: %w", err)
	}

	c.settings = settings

	return c, nil
}

// releaseLabels are the labels stored on the Helm release object itself.
// The managed-by value is nestops, not the chart's .Release.Service, so
// List can tell our releases apart from hand-installed ones.
func releaseLabels(rc release.Context) map[string]string {
	rc.Service = ManagedByValue
	return rc.Labels()
}

// Install installs or upgrades a release of the embedded nest chart.
// Whether to install or upgrade is decided by probing release history.
func (c *Client) Install(ctx context.Context, rc release.Context, vals map[string]any, dryRun bool) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	chartPath, err := chart.Prepare(ctx, chart.DefaultMetadata())
	if err != nil {
		return fmt.Errorf("failed to prepare chart: %w", err)
	}
	if !c.debug {
		defer os.RemoveAll(chartPath)
	}

	ch, err := loader.Load(chartPath)
	if err != nil {
		return fmt.Errorf("failed to load chart: %w", err)
	}

	labels := releaseLabels(rc)

	// For dry-run, always treat as install to avoid cluster connectivity issues
	if dryRun {
		install := action.NewInstall(c.config)
		install.ReleaseName = rc.ReleaseName
		install.Namespace = c.settings.Namespace()
		install.CreateNamespace = true
		install.Timeout = c.timeout
		install.WaitStrategy = kube.StatusWatcherStrategy
		install.RollbackOnFailure = true
		install.DryRun = true
		install.ClientOnly = true
		install.DisableHooks = true
		install.DisableOpenAPIValidation = true
		install.Labels = labels

		if _, err := install.RunWithContext(ctx, ch, vals); err != nil {
			return c.wrapHelmError("install", rc.ReleaseName, err)
		}
		return nil
	}

	// Decide install vs upgrade by checking release history
	history := action.NewHistory(c.config)
	history.Max = 1
	if _, histErr := history.Run(rc.ReleaseName); histErr != nil {
		// Not found -> fresh install
		install := action.NewInstall(c.config)
		install.ReleaseName = rc.ReleaseName
		install.Namespace = c.settings.Namespace()
		install.CreateNamespace = true
		install.Timeout = c.timeout
		install.WaitStrategy = kube.StatusWatcherStrategy
		install.RollbackOnFailure = true
		install.Labels = labels

		if _, err := install.RunWithContext(ctx, ch, vals); err != nil {
			return c.wrapHelmError("install", rc.ReleaseName, err)
		}
		return nil
	}

	upgrade := action.NewUpgrade(c.config)
	upgrade.Namespace = c.settings.Namespace()
	upgrade.Timeout = c.timeout
	upgrade.RollbackOnFailure = true
	upgrade.WaitStrategy = kube.StatusWatcherStrategy
	upgrade.Labels = labels
	if _, err := upgrade.RunWithContext(ctx, rc.ReleaseName, ch, vals); err != nil {
		return c.wrapHelmError("upgrade", rc.ReleaseName, err)
	}
	return nil
}

// Render renders the chart client-side and returns the release with its
// manifest and notes populated. Nothing touches the cluster.
func (c *Client) Render(ctx context.Context, rc release.Context, vals map[string]any) (*v1.Release, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	chartPath, err := chart.Prepare(ctx, chart.DefaultMetadata())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare chart: %w", err)
	}
	if !c.debug {
		defer os.RemoveAll(chartPath)
	}

	ch, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	install := action.NewInstall(c.config)
	install.ReleaseName = rc.ReleaseName
	install.Namespace = c.settings.Namespace()
	install.DryRun = true
	install.ClientOnly = true
	install.DisableHooks = true
	install.DisableOpenAPIValidation = true
	install.Replace = true
	install.Labels = releaseLabels(rc)

	rel, err := install.RunWithContext(ctx, ch, vals)
	if err != nil {
		return nil, c.wrapHelmError("template", rc.ReleaseName, err)
	}
	return rel, nil
}

// List returns the nestops-managed releases in the current namespace.
func (c *Client) List(ctx context.Context, selector labels.Selector) ([]*v1.Release, error) {
	req, err := labels.NewRequirement(release.LabelManagedBy, selection.Equals, []string{ManagedByValue})
	if err != nil {
		return nil, fmt.Errorf("failed to create managed-by label requirement: %w", err)
	}
	selector = selector.Add(*req)

	lister := action.NewList(c.config)
	lister.All = false
	lister.AllNamespaces = false
	lister.Selector = selector.String()
	lister.StateMask = action.ListAll

	rels, err := lister.Run()
	if err != nil {
		return nil, c.wrapHelmError("list", "", err)
	}
	return rels, nil
}

// Get returns the latest revision of a release.
func (c *Client) Get(ctx context.Context, releaseName string) (*v1.Release, error) {
	if releaseName == "" {
		return nil, errors.New("release name cannot be empty")
	}
	get := action.NewGet(c.config)
	get.Version = 0
	rel, err := get.Run(releaseName)
	if err != nil {
		return nil, c.wrapHelmError("get", releaseName, err)
	}
	return rel, nil
}

// Uninstall removes the given release.
func (c *Client) Uninstall(ctx context.Context, releaseName string) error {
	if releaseName == "" {
		return errors.New("release name cannot be empty")
	}

	un := action.NewUninstall(c.config)
	un.IgnoreNotFound = true
	un.KeepHistory = false
	un.Timeout = c.timeout
	un.WaitStrategy = kube.StatusWatcherStrategy

	if _, err := un.Run(releaseName); err != nil {
		return c.wrapHelmError("uninstall", releaseName, err)
	}
	return nil
}

// History returns the revision history of a release, newest last.
func (c *Client) History(ctx context.Context, releaseName string) ([]*v1.Release, error) {
	if releaseName == "" {
		return nil, errors.New("release name cannot be empty")
	}

	history := action.NewHistory(c.config)
	history.Max = HistoryLimit
	releases, err := history.Run(releaseName)
	if err != nil {
		return nil, c.wrapHelmError("history", releaseName, err)
	}
	return releases, nil
}

// Rollback rolls a release back to a previous revision.
func (c *Client) Rollback(ctx context.Context, releaseName string, revision int) error {
	if releaseName == "" {
		return errors.New("release name cannot be empty")
	}

	rollback := action.NewRollback(c.config)
	rollback.Version = revision
	rollback.Timeout = c.timeout
	rollback.WaitStrategy = kube.StatusWatcherStrategy

	if err := rollback.Run(releaseName); err != nil {
		return c.wrapHelmError("rollback", releaseName, err)
	}
	return nil
}

// wrapHelmError provides better error messages for common Helm errors.
func (c *Client) wrapHelmError(operation, releaseName string, err error) error {
	if errors.Is(err, driver.ErrReleaseNotFound) {
		return fmt.Errorf("release '%s' not found", releaseName)
	}
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		return fmt.Errorf("release '%s' not found", releaseName)
	case strings.Contains(errMsg, "another operation") || strings.Contains(errMsg, "pending"):
		return fmt.Errorf("another operation is in progress for release '%s', please try again later", releaseName)
	case strings.Contains(errMsg, "timeout"):
		return fmt.Errorf("operation timed out for release '%s': %w", releaseName, err)
	case strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "dial"):
		return fmt.Errorf("unable to connect to Kubernetes cluster: %w", err)
	case strings.Contains(errMsg, "forbidden") || strings.Contains(errMsg, "unauthorized"):
		return fmt.Errorf("insufficient permissions for %s operation on release '%s': %w", operation, releaseName, err)
	case strings.Contains(errMsg, "already exists"):
		return fmt.Errorf("release '%s' already exists", releaseName)
	default:
		return fmt.Errorf("helm %s failed for release '%s': %w", operation, releaseName, err)
	}
}
