/*
Package thumbs implements the thumbnail cache and generation scheduler.

# Overview

Decoding a RAW photo is expensive (tens to hundreds of milliseconds), while
a browsing grid needs thumbnails for dozens of photos at once and the set of
wanted thumbnails changes every time the user scrolls. This package sits
between the UI and the decoder and makes that workload cheap:

  - a bounded in-memory LRU cache of decoded images for instant re-display,
  - a content-hashed on-disk cache of encoded JPEGs that survives restarts,
  - a priority-ordered, request-coalescing pipeline in front of the decoder.

Callers submit a path with a priority and receive the decoded thumbnail
asynchronously through a completion callback. Cache hits deliver without
queueing; everything else flows through a small bounded set of generation
workers.

# Caches

The memory cache holds decoded image.Image values, capped by entry count
(DefaultMemoryEntries). A Get promotes the entry, so photos the user keeps
returning to stay resident while scroll-past entries age out.

The disk cache stores the encoded JPEG bytes under

	<cacheRoot>/<parentBase>_<hash8(parentDir)>/<cacheKey>.jpg

so each source folder maps to one cache subfolder and remains recognizable
when inspecting the cache by hand. Keys are derived from the photo's base
name plus an 8-hex-character xxhash of its parent directory; the hash keeps
same-named files in different folders apart (see key.go). Disk writes are
best-effort: a failed write logs a warning and the thumbnail is still
delivered from memory.

# Request lifecycle

RequestThumbnail first consults the memory cache. On a miss it consults the
pending table, which holds at most one live request per cache key:

  - no pending entry: the request is queued;
  - pending entry at lower or equal priority: the new request supersedes it,
    and the superseded callback is never invoked;
  - pending entry at strictly higher priority: the new request is dropped.

Both are deliberate latest-wins behaviors. During a fast scroll, hundreds of
requests are issued for photos the user has already scrolled past; the
newest request reflects where the user actually is, so it wins, and stale
callbacks into recycled grid cells are suppressed entirely rather than
errored.

The queue orders by priority (high first) and, within a priority, by newest
submission first, again favoring the current viewport.

A worker dequeues a request, re-validates it against the pending table
(supersession may have happened while queued), and generates: disk cache
hit decodes the cached JPEG; otherwise the decoder produces preview bytes,
the preview is downscaled so its longest side is at most the configured
size (no upscaling), and the result is encoded to JPEG and written to both
caches. Completion callbacks are dispatched from a dedicated goroutine, so
a slow callback never stalls a worker.

Failures are soft: the callback fires with nil, nothing is cached, and an
identical later request retries from scratch.

# Concurrency

Workers in Config bounds the number of simultaneous generations (default
1). At any pool size, at most one generation runs per cache key: a key
being generated is tracked in a busy set and skipped during dequeue, and
the worker that owns it re-scans the queue when it finishes. Worker
goroutines are started on demand and exit when no eligible request
remains, so an idle Manager holds no goroutines beyond the dispatcher.

# Usage

	m := thumbs.NewManager(decoder, thumbs.Config{
		CacheDir:      cacheDir,
		ThumbnailSize: 256,
		MemoryEntries: 200,
		Workers:       workers.ForCPU(4),
	})
	defer m.Close()

	m.RequestThumbnail(path, thumbs.PriorityHigh, func(img image.Image) {
		if img == nil {
			// decode failed; show placeholder
			return
		}
		show(img)
	})

	// Prefetch: warm the caches, nobody is notified
	m.RequestThumbnail(path, thumbs.PriorityLow, nil)

StopQueue abandons all queued work (useful when the library changes under
the browser); an in-flight generation still completes and delivers. Close
stops the dispatcher as well and makes the Manager unusable.

# Configuration

Zero values in Config fall back to DefaultThumbnailSize (256 pixels) and
DefaultMemoryEntries (200 entries). The process-level knobs live in
internal/startup: THUMBNAIL_SIZE, MEMORY_CACHE_ENTRIES, DECODE_WORKERS,
and CACHE_DIR, from which the thumbnail root is derived.
*/
package thumbs
