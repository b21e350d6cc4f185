package media

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"photo-bridge/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

// vipsStartup boots libvips. Overridable in tests.
var vipsStartup = func() {
	// Conservative memory settings; decode concurrency is bounded by the
	// generation workers, not by vips itself.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})
}

// InitVips initializes the libvips library.
// This should be called once at startup. govips panics rather than
// returning an error when libvips is missing or too old; that is reported
// as an error here so callers can fall back to the pure Go decode path.
func InitVips() (err error) {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			vipsAvailable = false
			err = fmt.Errorf("libvips startup: %v", r)
		}
	}()

	// Configure vips logging BEFORE Startup() so it respects LOG_LEVEL
	var vipsLogLevel vips.LogLevel
	if logging.IsDebugEnabled() {
		vipsLogLevel = vips.LogLevelInfo
	} else {
		vipsLogLevel = vips.LogLevelWarning
	}

	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch level {
		case vips.LogLevelError, vips.LogLevelCritical:
			logging.Error("[%s] %s", domain, msg)
		case vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, vipsLogLevel)

	vipsStartup()

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized successfully (version: %s)", vips.Version)
	return nil
}

// ShutdownVips cleans up libvips resources.
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Info("libvips shutdown complete")
	}
}

// IsVipsAvailable returns whether libvips is initialized and available.
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// ThumbnailWithVips decodes preview bytes with decode-time shrinking so the
// longest side is at most size pixels. Much more memory efficient than
// decoding the full image and resizing afterwards.
func ThumbnailWithVips(data []byte, size int) (image.Image, error) {
	ref, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	logging.Debug("Vips loaded %dx%d, shrinking to fit %d",
		ref.Width(), ref.Height(), size)

	// SizeDown keeps images already within bounds at their native size
	if err := ref.ThumbnailWithSize(size, size, vips.InterestingNone, vips.SizeDown); err != nil {
		return nil, fmt.Errorf("vips resize failed: %w", err)
	}

	imgBytes, _, err := ref.ExportJpeg(&vips.JpegExportParams{
		Quality:        95,
		StripMetadata:  false,
		OptimizeCoding: true,
	})
	if err != nil {
		return nil, fmt.Errorf("vips export failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(imgBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vips output: %w", err)
	}

	return img, nil
}
