package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"photo-bridge/internal/logging"
	"photo-bridge/internal/thumbs"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Config holds all application configuration
type Config struct {
	PhotosDir      string
	CacheDir       string
	Port           string
	MetricsPort    string
	MetricsEnabled bool
	ThumbnailSize  int
	MemoryEntries  int
	DecodeWorkers  int

	// Derived paths
	ThumbnailDir string
	DatabasePath string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	logging.Info("photo-bridge %s (%s, built %s, %s %s/%s)",
		Version, Commit, BuildTime, GoVersion, runtime.GOOS, runtime.GOARCH)

	photosDir := getEnv("PHOTOS_DIR", "/photos")
	cacheDir := getEnv("CACHE_DIR", "/cache")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	thumbnailSize := getEnvInt("THUMBNAIL_SIZE", thumbs.DefaultThumbnailSize)
	memoryEntries := getEnvInt("MEMORY_CACHE_ENTRIES", thumbs.DefaultMemoryEntries)
	decodeWorkers := getEnvInt("DECODE_WORKERS", 1)

	logging.Info("Configuration:")
	logging.Info("  PHOTOS_DIR:           %s", photosDir)
	logging.Info("  CACHE_DIR:            %s", cacheDir)
	logging.Info("  PORT:                 %s", port)
	logging.Info("  METRICS_PORT:         %s", metricsPort)
	logging.Info("  METRICS_ENABLED:      %v", metricsEnabled)
	logging.Info("  THUMBNAIL_SIZE:       %d", thumbnailSize)
	logging.Info("  MEMORY_CACHE_ENTRIES: %d", memoryEntries)
	logging.Info("  DECODE_WORKERS:       %d", decodeWorkers)
	logging.Info("  LOG_LEVEL:            %s", logging.GetLevel())

	info, err := os.Stat(photosDir)
	if err != nil {
		return nil, fmt.Errorf("PHOTOS_DIR %s is not accessible: %w", photosDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("PHOTOS_DIR %s is not a directory", photosDir)
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("CACHE_DIR %s is not writable: %w", cacheDir, err)
	}

	if thumbnailSize < 16 || thumbnailSize > 4096 {
		logging.Warn("  Invalid THUMBNAIL_SIZE %d, using default %d", thumbnailSize, thumbs.DefaultThumbnailSize)
		thumbnailSize = thumbs.DefaultThumbnailSize
	}
	if memoryEntries <= 0 {
		logging.Warn("  Invalid MEMORY_CACHE_ENTRIES, using default %d", thumbs.DefaultMemoryEntries)
		memoryEntries = thumbs.DefaultMemoryEntries
	}
	if decodeWorkers <= 0 {
		decodeWorkers = 1
	}

	return &Config{
		PhotosDir:      photosDir,
		CacheDir:       cacheDir,
		Port:           port,
		MetricsPort:    metricsPort,
		MetricsEnabled: metricsEnabled,
		ThumbnailSize:  thumbnailSize,
		MemoryEntries:  memoryEntries,
		DecodeWorkers:  decodeWorkers,
		ThumbnailDir:   filepath.Join(cacheDir, "thumbnails"),
		DatabasePath:   filepath.Join(cacheDir, "photo-bridge.db"),
	}, nil
}

// LogFatal logs a fatal startup error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default %v", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("  Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}
