package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"photo-bridge/internal/logging"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is the encode quality used for disk cache entries.
const JPEGQuality = 80

// DecodeImage decodes encoded preview bytes into an image, honoring EXIF
// orientation.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}

	logging.Debug("imaging.Decode failed: %v, trying stdlib decode", err)

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	logging.Debug("Decoded image format: %s", format)
	return img, nil
}

// Thumbnail decodes preview bytes and downscales so the longest side is at
// most size pixels, preserving aspect ratio. Images already within bounds
// are returned at their native size. Uses libvips decode-time shrinking
// when available.
func Thumbnail(data []byte, size int) (image.Image, error) {
	if IsVipsAvailable() {
		img, err := ThumbnailWithVips(data, size)
		if err == nil {
			return img, nil
		}
		logging.Debug("vips thumbnail failed: %v, falling back to imaging", err)
	}

	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= size && bounds.Dy() <= size {
		return img, nil
	}

	return imaging.Fit(img, size, size, imaging.Lanczos), nil
}

// EncodeJPEG encodes a thumbnail for the disk cache.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
