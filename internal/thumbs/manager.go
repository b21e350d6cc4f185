package thumbs

import (
	"image"
	"path/filepath"
	"sync"
	"time"

	"photo-bridge/internal/logging"
	"photo-bridge/internal/media"
	"photo-bridge/internal/metrics"
)

// DefaultThumbnailSize is the longest-side pixel size used when none is
// configured.
const DefaultThumbnailSize = 256

// deliveryBuffer bounds the number of completed results waiting for their
// callbacks. A slow consumer backpressures the workers instead of growing
// without bound.
const deliveryBuffer = 256

// MetadataRecorder receives capture metadata after a successful decode.
// Implementations must be safe for concurrent use and must not block for
// long; recording is best-effort.
type MetadataRecorder interface {
	Record(path string, meta *media.Metadata)
}

// Config configures a Manager.
type Config struct {
	// CacheDir is the disk cache root.
	CacheDir string
	// ThumbnailSize is the longest side of generated thumbnails in pixels.
	ThumbnailSize int
	// MemoryEntries is the memory cache capacity.
	MemoryEntries int
	// Workers is the number of generation workers. The default of 1
	// serializes all decode work, bounding peak CPU and I/O pressure.
	Workers int
	// Metadata, when non-nil, receives capture metadata after decodes.
	Metadata MetadataRecorder
}

// Manager is the front door of the thumbnail engine: it coalesces requests
// per cache key, schedules generation by priority, and owns both cache
// tiers. One Manager instance lives for the length of the application and
// is injected wherever thumbnails are needed.
type Manager struct {
	decoder  media.Decoder
	memory   *MemoryCache
	disk     *DiskCache
	size     int
	workers  int
	metadata MetadataRecorder

	mu       sync.Mutex
	pending  map[string]*request // cache key -> the one live request
	queue    requestQueue
	busy     map[string]struct{} // keys with a decode in flight
	drainers int
	order    uint64

	deliveries chan delivery
	quit       chan struct{}
	closeOnce  sync.Once
}

type delivery struct {
	done CompletionFunc
	img  image.Image
}

// NewManager creates the thumbnail engine using the given decoder.
func NewManager(decoder media.Decoder, cfg Config) *Manager {
	size := cfg.ThumbnailSize
	if size <= 0 {
		size = DefaultThumbnailSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	m := &Manager{
		decoder:    decoder,
		memory:     NewMemoryCache(cfg.MemoryEntries),
		disk:       NewDiskCache(cfg.CacheDir),
		size:       size,
		workers:    workers,
		metadata:   cfg.Metadata,
		pending:    make(map[string]*request),
		busy:       make(map[string]struct{}),
		deliveries: make(chan delivery, deliveryBuffer),
		quit:       make(chan struct{}),
	}

	go m.dispatch()

	logging.Info("Thumbnail engine: size=%d, memory entries=%d, workers=%d, cache=%s",
		size, cfg.MemoryEntries, workers, cfg.CacheDir)
	return m
}

// RequestThumbnail asks for the thumbnail of path. It never blocks; the
// result arrives via onComplete, asynchronously, at most once.
//
// A memory cache hit is delivered without queueing. Otherwise the request
// coalesces with any live request for the same key: a new request at equal
// or higher priority supersedes the old one (whose callback is silently
// dropped), and a new request at strictly lower priority is itself dropped
// and onComplete never fires.
func (m *Manager) RequestThumbnail(path string, priority Priority, onComplete CompletionFunc) {
	key := CacheKey(path)

	if img, ok := m.memory.Get(key); ok {
		metrics.MemoryCacheHits.Inc()
		m.deliver(onComplete, img)
		return
	}
	metrics.MemoryCacheMisses.Inc()

	m.mu.Lock()

	if existing, ok := m.pending[key]; ok {
		if priority < existing.priority {
			m.mu.Unlock()
			metrics.RequestsDropped.Inc()
			logging.Debug("Request for %s dropped: %s below queued %s",
				filepath.Base(path), priority, existing.priority)
			return
		}
		// Latest wins: the superseded caller's callback never fires
		m.queue.remove(existing)
		metrics.RequestsSuperseded.Inc()
		logging.Debug("Request for %s superseded at %s", filepath.Base(path), priority)
	}

	m.order++
	req := &request{
		key:      key,
		path:     path,
		priority: priority,
		order:    m.order,
		done:     onComplete,
	}
	m.pending[key] = req
	m.queue.enqueue(req)
	metrics.QueueDepth.Set(float64(m.queue.len()))

	if m.drainers < m.workers {
		m.drainers++
		go m.drain()
	}
	m.mu.Unlock()
}

// CachedThumbnail returns the memory-cached thumbnail for path if present,
// promoting it to most-recently-used. It never touches the disk cache or
// the scheduler.
func (m *Manager) CachedThumbnail(path string) (image.Image, bool) {
	return m.memory.Get(CacheKey(path))
}

// ClearMemoryCache drops all decoded thumbnails.
func (m *Manager) ClearMemoryCache() {
	m.memory.Clear()
}

// ClearDiskCache deletes and recreates the on-disk cache.
func (m *Manager) ClearDiskCache() error {
	return m.disk.ClearAll()
}

// StopQueue abandons every queued-but-unstarted request; none of their
// callbacks will ever fire. A decode already in progress is not interrupted
// and still delivers. Use when the data set changes, e.g. on folder switch.
func (m *Manager) StopQueue() {
	m.mu.Lock()
	dropped := m.queue.len()
	m.queue.clear()
	m.pending = make(map[string]*request)
	m.mu.Unlock()

	metrics.QueueDepth.Set(0)
	if dropped > 0 {
		logging.Debug("StopQueue: abandoned %d queued requests", dropped)
	}
}

// Close shuts down the delivery goroutine. Queued work is abandoned first.
func (m *Manager) Close() {
	m.StopQueue()
	m.closeOnce.Do(func() { close(m.quit) })
}

// drain is the generation worker loop. It runs until no eligible request
// remains, then exits; RequestThumbnail starts a new drain when needed.
func (m *Manager) drain() {
	for {
		m.mu.Lock()
		req := m.queue.next(m.busy)
		if req == nil {
			m.drainers--
			m.mu.Unlock()
			return
		}
		metrics.QueueDepth.Set(float64(m.queue.len()))

		// Superseded after being queued: skip with no callback
		if m.pending[req.key] != req {
			m.mu.Unlock()
			continue
		}
		delete(m.pending, req.key)
		m.busy[req.key] = struct{}{}
		m.mu.Unlock()

		img := m.generate(req)

		m.mu.Lock()
		delete(m.busy, req.key)
		m.mu.Unlock()

		m.deliver(req.done, img)
	}
}

// generate produces the thumbnail for a request: disk cache first, then a
// full decode. Failures resolve to nil and are never cached, so an
// identical later request retries from scratch.
func (m *Manager) generate(req *request) image.Image {
	parent := filepath.Dir(req.path)

	if data, ok := m.disk.Get(req.key, parent); ok {
		img, err := media.DecodeImage(data)
		if err == nil {
			metrics.DiskCacheHits.Inc()
			m.memory.Put(req.key, img)
			return img
		}
		// Corrupt cache file: fall through to a full decode
		logging.Warn("Discarding unreadable disk cache entry for %s: %v", req.key, err)
	}
	metrics.DiskCacheMisses.Inc()

	start := time.Now()

	photo, err := m.decoder.Decode(req.path)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error_decode").Inc()
		logging.Debug("Decode failed for %s: %v", filepath.Base(req.path), err)
		return nil
	}

	img, err := media.Thumbnail(photo.Data, m.size)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error_resize").Inc()
		logging.Debug("Thumbnail failed for %s: %v", filepath.Base(req.path), err)
		return nil
	}

	if encoded, err := media.EncodeJPEG(img); err == nil {
		m.disk.Put(req.key, parent, encoded)
	} else {
		logging.Warn("Failed to encode thumbnail for %s: %v", req.key, err)
	}
	m.memory.Put(req.key, img)

	if m.metadata != nil && photo.Meta != nil {
		m.metadata.Record(req.path, photo.Meta)
	}

	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Generated thumbnail for %s in %v", filepath.Base(req.path), time.Since(start))
	return img
}

// deliver hands a result to the dispatch goroutine. Dropped silently after
// Close.
func (m *Manager) deliver(done CompletionFunc, img image.Image) {
	if done == nil {
		return
	}
	select {
	case m.deliveries <- delivery{done: done, img: img}:
	case <-m.quit:
	}
}

// dispatch invokes completion callbacks, one at a time, on a goroutine the
// workers never run on.
func (m *Manager) dispatch() {
	for {
		select {
		case d := <-m.deliveries:
			d.done(d.img)
		case <-m.quit:
			return
		}
	}
}
