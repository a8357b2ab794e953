package chart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// cacheEntry represents one prepared chart tree on disk.
type cacheEntry struct {
	Path      string
	CreatedAt time.Time
}

// prepareCache keeps prepared chart trees around so repeated renders of
// the same chart skip the template expansion.
var (
	prepareCache      = make(map[string]*cacheEntry)
	prepareCacheMutex sync.RWMutex
	prepareCacheTTL   = 1 * time.Hour
	embeddedHash      string
	embeddedHashOnce  sync.Once
)

// GenerateCacheKey creates a cache key covering both the chart metadata
// and the embedded template content, so editing the embedded chart
// invalidates cached trees.
func GenerateCacheKey(meta Metadata) (string, error) {
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart metadata for hashing: %w", err)
	}

	chartHash, err := getEmbeddedChartHash()
	if err != nil {
		return "", err
	}

	metaHash := sha256.Sum256(metaBytes)
	combined := sha256.Sum256([]byte(hex.EncodeToString(metaHash[:]) + "-" + chartHash))
	return hex.EncodeToString(combined[:]), nil
}

// getEmbeddedChartHash hashes every embedded chart file, path included,
// once per process.
func getEmbeddedChartHash() (string, error) {
	var err error

	embeddedHashOnce.Do(func() {
		hasher := sha256.New()

		walkErr := fs.WalkDir(templateFS, "chart", func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return fmt.Errorf("failed to access embedded chart file %s: %w", path, walkErr)
			}
			if d.IsDir() {
				return nil
			}

			data, readErr := templateFS.ReadFile(path)
			if readErr != nil {
				return fmt.Errorf("failed to read embedded file %s: %w", path, readErr)
			}

			hasher.Write([]byte(path))
			hasher.Write(data)
			return nil
		})
		if walkErr != nil {
			err = fmt.Errorf("failed to walk embedded chart directory: %w", walkErr)
			return
		}

		embeddedHash = hex.EncodeToString(hasher.Sum(nil))
	})
	if err != nil {
		return "", err
	}

	return embeddedHash, nil
}

// GetCachedChart retrieves a cached chart tree if it exists and is fresh.
func GetCachedChart(cacheKey string) (string, bool) {
	prepareCacheMutex.RLock()
	defer prepareCacheMutex.RUnlock()

	entry, exists := prepareCache[cacheKey]
	if !exists {
		return "", false
	}
	if time.Since(entry.CreatedAt) > prepareCacheTTL {
		return "", false
	}
	// The tree may have been removed out from under us.
	if _, err := os.Stat(entry.Path); os.IsNotExist(err) {
		return "", false
	}

	return entry.Path, true
}

// SetCachedChart stores a prepared chart tree in the cache.
func SetCachedChart(cacheKey, chartPath string) {
	prepareCacheMutex.Lock()
	defer prepareCacheMutex.Unlock()

	prepareCache[cacheKey] = &cacheEntry{
		Path:      chartPath,
		CreatedAt: time.Now(),
	}
}

// CleanupExpiredCharts removes expired cache entries and their trees.
func CleanupExpiredCharts() {
	prepareCacheMutex.Lock()
	defer prepareCacheMutex.Unlock()

	now := time.Now()
	for key, entry := range prepareCache {
		if now.Sub(entry.CreatedAt) > prepareCacheTTL {
			os.RemoveAll(entry.Path)
			delete(prepareCache, key)
		}
	}
}

// GetChartCacheStats returns the entry count and total on-disk size of
// the prepare cache.
func GetChartCacheStats() (count int, totalSize int64) {
	prepareCacheMutex.RLock()
	defer prepareCacheMutex.RUnlock()

	count = len(prepareCache)
	for _, entry := range prepareCache {
		if size, err := getDirSize(entry.Path); err == nil {
			totalSize += size
		}
	}
	return count, totalSize
}

// CreateChartCopy copies a prepared chart tree so the caller owns it.
func CreateChartCopy(sourcePath string) (string, error) {
	tmpDir, err := os.MkdirTemp("", TempChartPrefix+"copy-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir for chart copy: %w", err)
	}

	err = filepath.Walk(sourcePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		relPath, err := filepath.Rel(sourcePath, path)
		if err != nil {
			return fmt.Errorf("failed to calculate relative path for %s: %w", path, err)
		}
		destPath := filepath.Join(tmpDir, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read source file %s: %w", path, err)
		}
		if err := os.WriteFile(destPath, data, info.Mode()); err != nil {
			return fmt.Errorf("failed to write destination file %s: %w", destPath, err)
		}
		return nil
	})
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to copy cached chart: %w", err)
	}

	return tmpDir, nil
}

// getDirSize calculates the total size of a directory.
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
