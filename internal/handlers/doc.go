// Package handlers implements the HTTP API of the preview service:
// thumbnail delivery with priority hints, batch prefetch, capture metadata
// lookup, and cache administration.
package handlers
