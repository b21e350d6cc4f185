package thumbs

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

// Priority is a scheduling hint indicating the UI visibility importance of a
// pending request.
type Priority int

const (
	// PriorityLow is for prefetch and background work.
	PriorityLow Priority = iota
	// PriorityMedium is the default, used for near-viewport items.
	PriorityMedium
	// PriorityHigh is for currently visible items.
	PriorityHigh
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParsePriority converts a priority name to a Priority. Empty input yields
// the default PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityMedium, fmt.Errorf("invalid priority %q", s)
	}
}

// CompletionFunc receives the generated thumbnail, or nil when generation
// failed. It is invoked at most once, from the delivery goroutine, never
// from a decode worker.
type CompletionFunc func(img image.Image)

// request is a single live thumbnail request. At most one live request
// exists per cache key; see Manager.RequestThumbnail for the supersession
// rules.
type request struct {
	key      string
	path     string
	priority Priority
	order    uint64
	done     CompletionFunc
}

// requestQueue keeps pending requests sorted by priority descending, then
// submission order descending (most recent first). Not safe for concurrent
// use; the Manager's lock guards it.
type requestQueue struct {
	items []*request
}

// enqueue inserts a request and restores the sort order.
func (q *requestQueue) enqueue(r *request) {
	q.items = append(q.items, r)
	sort.SliceStable(q.items, func(i, j int) bool {
		if q.items[i].priority != q.items[j].priority {
			return q.items[i].priority > q.items[j].priority
		}
		return q.items[i].order > q.items[j].order
	})
}

// next removes and returns the highest-priority, most-recent request whose
// key is not in the busy set. Returns nil when no eligible request remains.
func (q *requestQueue) next(busy map[string]struct{}) *request {
	for i, r := range q.items {
		if _, inFlight := busy[r.key]; inFlight {
			continue
		}
		q.items = append(q.items[:i], q.items[i+1:]...)
		return r
	}
	return nil
}

// remove drops a specific request from the queue if still present.
func (q *requestQueue) remove(r *request) {
	for i, item := range q.items {
		if item == r {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// len returns the number of queued requests.
func (q *requestQueue) len() int {
	return len(q.items)
}

// clear drops every queued request.
func (q *requestQueue) clear() {
	q.items = nil
}
