package lumen

import "sync"

// snapshotRing is a thread-safe ring buffer of recent visibility snapshots.
type snapshotRing struct {
	mu      sync.RWMutex
	entries []Snapshot
	size    int
	head    int
	count   int
}

// newSnapshotRing creates a ring buffer with the given capacity.
// If size is 0, the ring buffer is disabled.
func newSnapshotRing(size int) *snapshotRing {
	if size <= 0 {
		return nil
	}
	return &snapshotRing{
		entries: make([]Snapshot, size),
		size:    size,
	}
}

// push adds a snapshot to the ring buffer.
func (r *snapshotRing) push(s Snapshot) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = s
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// clear removes all snapshots from the ring buffer.
func (r *snapshotRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		r.entries[i] = Snapshot{}
	}
	r.head = 0
	r.count = 0
}

// all returns all snapshots in the ring buffer, oldest first.
func (r *snapshotRing) all() []Snapshot {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Snapshot, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.entries[(start+i)%r.size]
	}
	return result
}
