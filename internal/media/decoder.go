package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photo-bridge/internal/logging"
)

// Photo is the result of decoding a source file: encoded preview bytes plus
// whatever capture metadata the file carried.
type Photo struct {
	Data []byte
	Meta *Metadata
}

// Decoder turns a source file path into preview bytes. Implementations are
// called from the generation workers only and need not be safe for use by
// other goroutines.
type Decoder interface {
	Decode(path string) (*Photo, error)
}

// RawExtensions maps lowercase file extensions to whether they are RAW
// camera formats carrying an embedded preview JPEG.
var RawExtensions = map[string]bool{
	".cr2": true, ".cr3": true, ".nef": true, ".nrw": true,
	".arw": true, ".srf": true, ".dng": true, ".raf": true,
	".orf": true, ".rw2": true, ".pef": true, ".srw": true,
	".raw": true,
}

// IsRaw reports whether the path looks like a RAW camera file.
func IsRaw(path string) bool {
	return RawExtensions[strings.ToLower(filepath.Ext(path))]
}

// FileDecoder is the default Decoder. RAW files yield their embedded preview
// JPEG; standard raster files yield the file contents as-is.
type FileDecoder struct{}

// NewFileDecoder creates the default file based decoder.
func NewFileDecoder() *FileDecoder {
	return &FileDecoder{}
}

// Decode reads the file at path and returns its preview bytes and metadata.
func (d *FileDecoder) Decode(path string) (*Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file not accessible: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file: %s", path)
	}

	if IsRaw(path) {
		preview, err := extractEmbeddedJPEG(data)
		if err != nil {
			return nil, fmt.Errorf("no embedded preview in %s: %w", filepath.Base(path), err)
		}
		logging.Debug("Decoder: extracted %d byte preview from %s", len(preview), filepath.Base(path))
		// EXIF lives in the container, not always in the preview itself
		meta := ExtractMetadata(data)
		if meta == nil {
			meta = ExtractMetadata(preview)
		}
		return &Photo{Data: preview, Meta: meta}, nil
	}

	return &Photo{Data: data, Meta: ExtractMetadata(data)}, nil
}
