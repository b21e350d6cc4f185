package thumbs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// hash8 returns the first 8 hex digits of the 64-bit xxhash of s.
// xxhash is fixed and stable across runs and versions, unlike runtime
// string hashes, so cache directories survive restarts and upgrades.
func hash8(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))[:8]
}

// CacheKey derives the cache key for a source file. The key is built from
// the file's base name plus a short hash of its parent directory, so
// same-named files in different source folders never collide in the memory
// cache or the pending request table.
func CacheKey(path string) string {
	base := strings.ReplaceAll(filepath.Base(path), ".", "_")
	return base + "_" + hash8(filepath.Dir(path))
}

// cacheDirName returns the per-parent-directory subfolder under the cache
// root: "<parentDirName>_<hash8(parentDirPath)>".
func cacheDirName(parentPath string) string {
	return filepath.Base(parentPath) + "_" + hash8(parentPath)
}
