package thumbs

import (
	"fmt"
	"os"
	"path/filepath"

	"photo-bridge/internal/logging"
)

// DiskCache persists encoded thumbnails across runs under
// root/<parentDirName>_<hash8(parentDirPath)>/<cacheKey>.jpg.
// Writes are best-effort: a failed write leaves the entry memory-only for
// the session and is never treated as fatal.
type DiskCache struct {
	root string
}

// NewDiskCache creates a disk cache rooted at root, creating the directory
// if needed.
func NewDiskCache(root string) *DiskCache {
	if err := os.MkdirAll(root, 0755); err != nil {
		logging.Warn("DiskCache: failed to create cache root %s: %v", root, err)
	}
	return &DiskCache{root: root}
}

// Root returns the cache root directory.
func (d *DiskCache) Root() string {
	return d.root
}

// Path returns the on-disk location for a cache key whose source file lives
// in parentPath.
func (d *DiskCache) Path(key, parentPath string) string {
	return filepath.Join(d.root, cacheDirName(parentPath), key+".jpg")
}

// Put writes encoded thumbnail bytes, creating the per-parent subfolder.
// Failures are logged and swallowed.
func (d *DiskCache) Put(key, parentPath string, data []byte) {
	path := d.Path(key, parentPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logging.Warn("DiskCache: failed to create %s: %v", filepath.Dir(path), err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logging.Warn("DiskCache: failed to write %s: %v", path, err)
		return
	}
	logging.Debug("DiskCache: stored %s (%d bytes)", path, len(data))
}

// Get reads the encoded thumbnail bytes for key if they exist.
func (d *DiskCache) Get(key, parentPath string) ([]byte, bool) {
	data, err := os.ReadFile(d.Path(key, parentPath))
	if err != nil {
		return nil, false
	}
	return data, true
}

// ClearAll deletes and recreates the cache root.
func (d *DiskCache) ClearAll() error {
	if err := os.RemoveAll(d.root); err != nil {
		return fmt.Errorf("failed to clear disk cache: %w", err)
	}
	if err := os.MkdirAll(d.root, 0755); err != nil {
		return fmt.Errorf("failed to recreate cache root: %w", err)
	}
	logging.Info("DiskCache: cleared %s", d.root)
	return nil
}
