// Package media turns image files into preview bytes and decoded thumbnails.
//
// The Decoder interface is the boundary to the slow part of the pipeline:
// for RAW camera formats it extracts the embedded preview JPEG plus an
// optional EXIF metadata record, and for standard raster formats it reads
// the file directly. Decoding of preview bytes into an image, downscaling,
// and JPEG re-encoding live here too, with an optional libvips fast path.
package media
