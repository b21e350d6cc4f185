package thumbs

import "testing"

func TestPriorityString(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityLow, "low"},
		{PriorityMedium, "medium"},
		{PriorityHigh, "high"},
		{Priority(42), "unknown(42)"},
	}

	for _, tt := range tests {
		if got := tt.priority.String(); got != tt.want {
			t.Errorf("Priority(%d).String() = %q, want %q", int(tt.priority), got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"medium", PriorityMedium, false},
		{"high", PriorityHigh, false},
		{"HIGH", PriorityHigh, false},
		{"", PriorityMedium, false},
		{"urgent", PriorityMedium, true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePriority(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestQueueOrdering(t *testing.T) {
	q := &requestQueue{}
	noBusy := map[string]struct{}{}

	q.enqueue(&request{key: "a", priority: PriorityLow, order: 1})
	q.enqueue(&request{key: "b", priority: PriorityHigh, order: 2})
	q.enqueue(&request{key: "c", priority: PriorityMedium, order: 3})
	q.enqueue(&request{key: "d", priority: PriorityHigh, order: 4})

	// Priority descending, then most recent first within a priority
	wantOrder := []string{"d", "b", "c", "a"}
	for i, want := range wantOrder {
		r := q.next(noBusy)
		if r == nil {
			t.Fatalf("next() returned nil at position %d", i)
		}
		if r.key != want {
			t.Errorf("position %d: got %q, want %q", i, r.key, want)
		}
	}
	if q.next(noBusy) != nil {
		t.Error("next() on drained queue should return nil")
	}
}

func TestQueueSkipsBusyKeys(t *testing.T) {
	q := &requestQueue{}

	q.enqueue(&request{key: "a", priority: PriorityHigh, order: 1})
	q.enqueue(&request{key: "b", priority: PriorityLow, order: 2})

	busy := map[string]struct{}{"a": {}}
	r := q.next(busy)
	if r == nil || r.key != "b" {
		t.Fatalf("next() = %v, want b while a is busy", r)
	}

	// a stays queued for when it is no longer busy
	r = q.next(map[string]struct{}{})
	if r == nil || r.key != "a" {
		t.Fatalf("next() = %v, want a after busy cleared", r)
	}
}

func TestQueueRemove(t *testing.T) {
	q := &requestQueue{}
	noBusy := map[string]struct{}{}

	a := &request{key: "a", priority: PriorityHigh, order: 1}
	b := &request{key: "b", priority: PriorityLow, order: 2}
	q.enqueue(a)
	q.enqueue(b)

	q.remove(a)
	if q.len() != 1 {
		t.Fatalf("len = %d after remove, want 1", q.len())
	}
	if r := q.next(noBusy); r != b {
		t.Errorf("next() = %v, want b", r)
	}

	// Removing an absent request is a no-op
	q.remove(a)
}

func TestQueueClear(t *testing.T) {
	q := &requestQueue{}

	q.enqueue(&request{key: "a", order: 1})
	q.enqueue(&request{key: "b", order: 2})
	q.clear()

	if q.len() != 0 {
		t.Errorf("len = %d after clear, want 0", q.len())
	}
}
