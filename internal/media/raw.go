package media

import (
	"bytes"
	"fmt"
)

var (
	jpegSOI = []byte{0xFF, 0xD8, 0xFF}
	jpegEOI = []byte{0xFF, 0xD9}
)

// extractEmbeddedJPEG scans a RAW container for embedded JPEG streams and
// returns the largest one. RAW formats embed several previews (a tiny
// thumbnail plus one or more full-size previews); the largest is the one
// worth downscaling.
func extractEmbeddedJPEG(data []byte) ([]byte, error) {
	var best []byte

	offset := 0
	for offset < len(data) {
		start := bytes.Index(data[offset:], jpegSOI)
		if start < 0 {
			break
		}
		start += offset

		end := jpegStreamEnd(data, start)
		if end < 0 {
			// Not a well-formed stream; keep scanning past this SOI
			offset = start + len(jpegSOI)
			continue
		}

		candidate := data[start:end]
		if len(candidate) > len(best) {
			best = candidate
		}

		offset = end
	}

	if len(best) == 0 {
		return nil, fmt.Errorf("no JPEG stream found in %d bytes", len(data))
	}

	return best, nil
}

// jpegStreamEnd walks the marker segments of the JPEG stream beginning at
// start and returns the offset just past its EOI, or -1 if the stream is
// malformed or truncated. Length-prefixed segments (APPn, COM, tables) are
// skipped whole, so a preview carrying a nested EXIF thumbnail inside APP1
// does not end at the thumbnail's EOI.
func jpegStreamEnd(data []byte, start int) int {
	pos := start + 2
	for pos+1 < len(data) {
		if data[pos] != 0xFF {
			return -1
		}
		marker := data[pos+1]
		switch {
		case marker == 0xD9: // EOI
			return pos + 2
		case marker == 0xDA:
			// SOS: entropy-coded data follows, where a 0xFF byte is always
			// stuffed or a restart marker, so the next EOI pair is real.
			rest := bytes.Index(data[pos:], jpegEOI)
			if rest < 0 {
				return -1
			}
			return pos + rest + len(jpegEOI)
		case marker == 0xFF: // fill byte
			pos++
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD8):
			pos += 2
		default:
			if pos+3 >= len(data) {
				return -1
			}
			length := int(data[pos+2])<<8 | int(data[pos+3])
			if length < 2 {
				return -1
			}
			pos += 2 + length
		}
	}
	return -1
}
