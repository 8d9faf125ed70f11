package lumen

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
)

// Binding manages the lifecycle of one observation against one mutable
// target. The target may be reassigned any number of times during the
// binding's life; each reassignment disposes the previous observation
// before the next one starts, so at most one observation is ever active.
//
// Bind, Visible, and Dispose are safe for concurrent use, but the intended
// model is single-threaded and event-driven: every operation runs to
// completion synchronously.
type Binding struct {
	observer Observer
	opts     Options
	onUpdate func(Snapshot)
	history  *snapshotRing

	mu     sync.Mutex
	target Target
	active Observation
	gen    uint64
	last   *Snapshot
}

// NewBinding creates a Binding that starts observations against the given
// observer. No observation exists until Bind is called with a real target.
func NewBinding(observer Observer, opts Options) *Binding {
	return &Binding{
		observer: observer,
		opts:     opts,
	}
}

// OnUpdate sets a callback invoked with the retained snapshot after each
// delivery. Must be called before Bind.
func (b *Binding) OnUpdate(fn func(Snapshot)) *Binding {
	b.onUpdate = fn
	return b
}

// HistorySize sets the number of recent snapshots to retain.
// Use 0 (default) to disable history. Must be called before Bind.
func (b *Binding) HistorySize(n int) *Binding {
	b.history = newSnapshotRing(n)
	return b
}

// Bind points the binding at a new target.
//
// A nil target while nothing was ever bound is ignored; a nil target after
// a real one detaches: the active observation is disposed and the current
// target cleared. A real target always disposes any active observation
// first, even when rebinding to the identical target, then starts a fresh
// observation. Exactly zero or one observation is active afterward.
func (b *Binding) Bind(ctx context.Context, target Target) error {
	b.mu.Lock()

	if target == nil {
		if b.target == nil {
			// Never attached; ignore until a concrete target appears.
			b.mu.Unlock()
			return nil
		}
		old := b.active
		b.active = nil
		b.target = nil
		b.gen++
		b.mu.Unlock()

		if old != nil {
			old.Dispose()
		}
		capitan.Emit(ctx, BindingDetached)
		return nil
	}

	old := b.active
	b.active = nil
	b.target = target
	b.gen++
	gen := b.gen
	b.mu.Unlock()

	// The old observation is fully disposed before the new one starts.
	if old != nil {
		old.Dispose()
		capitan.Emit(ctx, BindingRebound)
	}

	obs, err := b.observer.Observe(ctx, target, b.opts, func(batch []Snapshot) {
		b.deliver(gen, batch)
	})
	if err != nil {
		return fmt.Errorf("failed to start observation: %w", err)
	}

	b.mu.Lock()
	if b.gen != gen {
		// Superseded while the observation was starting.
		b.mu.Unlock()
		obs.Dispose()
		return nil
	}
	b.active = obs
	b.mu.Unlock()

	capitan.Emit(ctx, BindingBound)
	return nil
}

// deliver retains the first snapshot of a batch. Batches from superseded
// observations are dropped.
func (b *Binding) deliver(gen uint64, batch []Snapshot) {
	if len(batch) == 0 {
		return
	}
	first := batch[0]

	b.mu.Lock()
	if b.gen != gen {
		b.mu.Unlock()
		return
	}
	b.last = &first
	b.history.push(first)
	fn := b.onUpdate
	b.mu.Unlock()

	if fn != nil {
		fn(first)
	}
}

// Visible reports whether the last retained snapshot was intersecting.
// Returns false when no snapshot has been delivered.
func (b *Binding) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last != nil && b.last.Intersecting
}

// LastEntry returns the last retained snapshot and true, or the zero
// snapshot and false if none has been delivered.
func (b *Binding) LastEntry() (Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return Snapshot{}, false
	}
	return *b.last, true
}

// History returns the recent snapshot history, oldest first.
// Returns nil unless enabled via HistorySize.
func (b *Binding) History() []Snapshot {
	return b.history.all()
}

// Dispose tears down any active observation and clears the retained
// snapshot. Idempotent; safe to call when nothing was ever bound. Owners
// must call it exactly once at end of life; a later Bind re-enters from
// scratch.
func (b *Binding) Dispose() {
	b.mu.Lock()
	old := b.active
	b.active = nil
	b.target = nil
	b.last = nil
	b.gen++
	b.mu.Unlock()

	if old != nil {
		old.Dispose()
		capitan.Emit(context.Background(), BindingDisposed)
	}
	b.history.clear()
}
