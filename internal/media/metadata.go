package media

import (
	"bytes"
	"time"

	"photo-bridge/internal/logging"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata is the capture information attached to a decoded photo.
// Every field is optional; a nil pointer means the source carried no value.
type Metadata struct {
	CameraMake   *string    `json:"cameraMake,omitempty"`
	CameraModel  *string    `json:"cameraModel,omitempty"`
	Lens         *string    `json:"lens,omitempty"`
	ISO          *int       `json:"iso,omitempty"`
	Aperture     *float64   `json:"aperture,omitempty"`     // f-number
	ShutterSpeed *float64   `json:"shutterSpeed,omitempty"` // seconds
	FocalLength  *float64   `json:"focalLength,omitempty"`  // millimeters
	Width        *int       `json:"width,omitempty"`
	Height       *int       `json:"height,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	TakenAt      *time.Time `json:"takenAt,omitempty"`
}

// ExtractMetadata parses EXIF data out of encoded image bytes.
// Returns nil when the bytes carry no parseable EXIF block.
func ExtractMetadata(data []byte) *Metadata {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Debug("ExtractMetadata: no EXIF block: %v", err)
		return nil
	}

	m := &Metadata{}

	m.CameraMake = exifString(x, exif.Make)
	m.CameraModel = exifString(x, exif.Model)
	m.Lens = exifString(x, exif.LensModel)
	m.ISO = exifInt(x, exif.ISOSpeedRatings)
	m.Aperture = exifRational(x, exif.FNumber)
	m.ShutterSpeed = exifRational(x, exif.ExposureTime)
	m.FocalLength = exifRational(x, exif.FocalLength)
	m.Width = exifInt(x, exif.PixelXDimension)
	m.Height = exifInt(x, exif.PixelYDimension)

	if taken, err := x.DateTime(); err == nil {
		m.TakenAt = &taken
	}

	if lat, long, err := x.LatLong(); err == nil {
		m.Latitude = &lat
		m.Longitude = &long
	}

	return m
}

func exifString(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil || s == "" {
		return nil
	}
	return &s
}

func exifInt(x *exif.Exif, name exif.FieldName) *int {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &v
}

func exifRational(x *exif.Exif, name exif.FieldName) *float64 {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}
