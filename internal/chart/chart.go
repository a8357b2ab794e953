// Package chart embeds the nest Helm chart and expands it to disk for
// the Helm SDK to load. The chart's helpers.tpl encodes the same naming
// rules as the release package; rendering goes through Helm so that
// `helm template` against the expanded chart and nestops agree.
package chart

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/Masterminds/sprig/v3"

	"github.com/nestops-dev/nestops/internal/release"
	"github.com/nestops-dev/nestops/internal/values"
)

// Embed the chart directory. Helper templates are stored without their
// underscore prefix because go:embed skips _-prefixed files; Prepare
// restores the prefix Helm expects.
//
//go:embed chart
var templateFS embed.FS

// Metadata holds the fields substituted into Chart.yaml.gotmpl.
type Metadata struct {
	Name        string
	Description string
	Version     string
	AppVersion  string
}

// DefaultMetadata returns the identity of the embedded nest chart.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:        Name,
		Description: Description,
		Version:     Version,
		AppVersion:  AppVersion,
	}
}

// ReleaseContext builds the name-derivation context for a release of the
// embedded chart, folding in the user's naming overrides.
func ReleaseContext(releaseName string, vals *values.Values) release.Context {
	ctx := release.Context{
		ChartName:    Name,
		ChartVersion: Version,
		AppVersion:   AppVersion,
		ReleaseName:  releaseName,
	}
	if vals != nil {
		ctx.NameOverride = vals.NameOverride
		ctx.FullnameOverride = vals.FullnameOverride
		ctx.CreateServiceAccount = vals.ServiceAccount.Create
		ctx.ServiceAccount = vals.ServiceAccount.Name
	}
	return ctx
}

// Prepare expands the embedded chart into a temporary directory,
// rendering .gotmpl files with Go templates and Sprig functions. It
// returns the root directory of the prepared chart. Identical metadata
// hits the prepare cache and gets a private copy of the cached tree.
func Prepare(ctx context.Context, meta Metadata) (string, error) {
	cacheKey, err := GenerateCacheKey(meta)
	if err != nil {
		return "", fmt.Errorf("failed to generate cache key: %w", err)
	}

	if cachedPath, found := GetCachedChart(cacheKey); found {
		// Hand out a copy so callers can delete their tree without
		// invalidating the cache entry.
		return CreateChartCopy(cachedPath)
	}

	// Evict stale entries every 10th miss to avoid a background goroutine.
	if count, _ := GetChartCacheStats(); count > 0 && count%10 == 0 {
		go CleanupExpiredCharts()
	}

	const root = "chart"

	tmpDir, err := os.MkdirTemp("", TempChartPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	err = fs.WalkDir(templateFS, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("failed to walk directory %s: %w", path, walkErr)
		}

		if path == root {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, root), "/")
		if rel == "" {
			return nil
		}
		dstPath := filepath.Join(tmpDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}

		data, readErr := templateFS.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read file %s: %w", path, readErr)
		}

		if strings.HasSuffix(path, ".gotmpl") {
			tpl, tplErr := template.New(filepath.Base(path)).Funcs(sprig.TxtFuncMap()).Parse(string(data))
			if tplErr != nil {
				return fmt.Errorf("failed to parse template %s: %w", path, tplErr)
			}
			var buf bytes.Buffer
			if execErr := tpl.Execute(&buf, meta); execErr != nil {
				return fmt.Errorf("failed to render template %s: %w", path, execErr)
			}
			dstPath = strings.TrimSuffix(dstPath, ".gotmpl")
			if writeErr := os.WriteFile(dstPath, buf.Bytes(), 0o644); writeErr != nil {
				return fmt.Errorf("failed to write rendered template %s: %w", dstPath, writeErr)
			}
			return nil
		}

		// Helper templates were embedded without their underscore prefix
		// (go:embed skips _-prefixed names); restore it so Helm treats
		// them as partials rather than manifests.
		if strings.Contains(path, "templates/") && filepath.Ext(d.Name()) == ".tpl" {
			dstPath = filepath.Join(filepath.Dir(dstPath), "_"+d.Name())
		}

		if writeErr := os.WriteFile(dstPath, data, 0o644); writeErr != nil {
			return fmt.Errorf("failed to write file %s: %w", dstPath, writeErr)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to expand embedded chart: %w", err)
	}

	SetCachedChart(cacheKey, tmpDir)

	return CreateChartCopy(tmpDir)
}
