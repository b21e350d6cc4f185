package startup

import (
	"path/filepath"
	"testing"

	"photo-bridge/internal/thumbs"
)

func setRequiredDirs(t *testing.T) (photosDir, cacheDir string) {
	t.Helper()
	photosDir = t.TempDir()
	cacheDir = t.TempDir()
	t.Setenv("PHOTOS_DIR", photosDir)
	t.Setenv("CACHE_DIR", cacheDir)
	return photosDir, cacheDir
}

func TestLoadConfigDefaults(t *testing.T) {
	photosDir, cacheDir := setRequiredDirs(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.PhotosDir != photosDir {
		t.Errorf("PhotosDir = %s, want %s", config.PhotosDir, photosDir)
	}
	if config.Port != "8080" {
		t.Errorf("Port = %s, want 8080", config.Port)
	}
	if config.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %s, want 9090", config.MetricsPort)
	}
	if !config.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if config.ThumbnailSize != thumbs.DefaultThumbnailSize {
		t.Errorf("ThumbnailSize = %d, want %d", config.ThumbnailSize, thumbs.DefaultThumbnailSize)
	}
	if config.MemoryEntries != thumbs.DefaultMemoryEntries {
		t.Errorf("MemoryEntries = %d, want %d", config.MemoryEntries, thumbs.DefaultMemoryEntries)
	}
	if config.DecodeWorkers != 1 {
		t.Errorf("DecodeWorkers = %d, want 1", config.DecodeWorkers)
	}
	if config.ThumbnailDir != filepath.Join(cacheDir, "thumbnails") {
		t.Errorf("ThumbnailDir = %s, want under cache dir", config.ThumbnailDir)
	}
	if config.DatabasePath != filepath.Join(cacheDir, "photo-bridge.db") {
		t.Errorf("DatabasePath = %s, want under cache dir", config.DatabasePath)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredDirs(t)
	t.Setenv("PORT", "9999")
	t.Setenv("THUMBNAIL_SIZE", "512")
	t.Setenv("MEMORY_CACHE_ENTRIES", "1000")
	t.Setenv("DECODE_WORKERS", "4")
	t.Setenv("METRICS_ENABLED", "false")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.Port != "9999" {
		t.Errorf("Port = %s, want 9999", config.Port)
	}
	if config.ThumbnailSize != 512 {
		t.Errorf("ThumbnailSize = %d, want 512", config.ThumbnailSize)
	}
	if config.MemoryEntries != 1000 {
		t.Errorf("MemoryEntries = %d, want 1000", config.MemoryEntries)
	}
	if config.DecodeWorkers != 4 {
		t.Errorf("DecodeWorkers = %d, want 4", config.DecodeWorkers)
	}
	if config.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	setRequiredDirs(t)
	t.Setenv("THUMBNAIL_SIZE", "8") // below minimum
	t.Setenv("MEMORY_CACHE_ENTRIES", "bogus")
	t.Setenv("METRICS_ENABLED", "maybe")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.ThumbnailSize != thumbs.DefaultThumbnailSize {
		t.Errorf("ThumbnailSize = %d, want default for out-of-range value", config.ThumbnailSize)
	}
	if config.MemoryEntries != thumbs.DefaultMemoryEntries {
		t.Errorf("MemoryEntries = %d, want default for unparseable value", config.MemoryEntries)
	}
	if !config.MetricsEnabled {
		t.Error("MetricsEnabled should fall back to true")
	}
}

func TestLoadConfigMissingPhotosDir(t *testing.T) {
	t.Setenv("PHOTOS_DIR", filepath.Join(t.TempDir(), "does-not-exist"))
	t.Setenv("CACHE_DIR", t.TempDir())

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for a missing photos directory")
	}
}
