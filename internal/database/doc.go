// Package database persists per-photo capture metadata (camera, lens,
// exposure, GPS, timestamp) in a local SQLite store. Writes happen
// best-effort from the generation workers after each successful decode;
// the preview API reads them back by source path.
package database
