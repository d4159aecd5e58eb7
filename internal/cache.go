package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CacheManager keeps the last dashboard built from a successful load for
// each source, so a failed load can fall back to what was shown before
type CacheManager struct {
	cacheDir string
}

// CacheIndexEntry describes one cached dashboard
type CacheIndexEntry struct {
	Key        string    `yaml:"key"`
	File       string    `yaml:"file"`
	SnapshotID string    `yaml:"snapshot_id"`
	SavedAt    time.Time `yaml:"saved_at"`
}

// CacheIndex is the YAML index of cached dashboards
type CacheIndex struct {
	Entries []CacheIndexEntry `yaml:"entries"`
}

// NewCacheManager creates a new cache manager
func NewCacheManager(cacheDir string) *CacheManager {
	return &CacheManager{
		cacheDir: cacheDir,
	}
}

// EnsureCacheDir ensures the cache directory exists
func (cm *CacheManager) EnsureCacheDir() error {
	return os.MkdirAll(cm.cacheDir, 0755)
}

// GetCacheDir returns the cache directory path
func (cm *CacheManager) GetCacheDir() string {
	return cm.cacheDir
}

// GetIndexPath returns the path to the YAML index
func (cm *CacheManager) GetIndexPath() string {
	return filepath.Join(cm.cacheDir, "index.yaml")
}

// GetDashboardPath returns the file a source key's dashboard is stored in
func (cm *CacheManager) GetDashboardPath(key string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
	return filepath.Join(cm.cacheDir, fmt.Sprintf("dashboard_%s.json", id))
}

// SaveDashboard stores d as the last-good dashboard for key. The stored
// copy is always unfiltered.
func (cm *CacheManager) SaveDashboard(key string, d *Dashboard) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	path := cm.GetDashboardPath(key)
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}

	index, err := cm.LoadIndex()
	if err != nil {
		index = &CacheIndex{}
	}
	entry := CacheIndexEntry{
		Key:        key,
		File:       filepath.Base(path),
		SnapshotID: d.SnapshotID,
		SavedAt:    time.Now().UTC(),
	}
	replaced := false
	for i := range index.Entries {
		if index.Entries[i].Key == key {
			index.Entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		index.Entries = append(index.Entries, entry)
	}
	sort.Slice(index.Entries, func(i, j int) bool {
		return index.Entries[i].Key < index.Entries[j].Key
	})

	return cm.SaveIndex(index)
}

// LoadDashboard returns the last-good dashboard for key
func (cm *CacheManager) LoadDashboard(key string) (*Dashboard, error) {
	data, err := os.ReadFile(cm.GetDashboardPath(key))
	if err != nil {
		return nil, err
	}

	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard: %w", err)
	}
	return &d, nil
}

// LoadIndex loads the cache index
func (cm *CacheManager) LoadIndex() (*CacheIndex, error) {
	data, err := os.ReadFile(cm.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var index CacheIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}

// SaveIndex saves the cache index
func (cm *CacheManager) SaveIndex(index *CacheIndex) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return os.WriteFile(cm.GetIndexPath(), data, 0644)
}

// ClearCache removes every cached dashboard and the index
func (cm *CacheManager) ClearCache() error {
	if _, err := os.Stat(cm.cacheDir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(cm.cacheDir)
}
