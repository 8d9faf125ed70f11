package lumen

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/clockz"
)

// ViewportObserver computes visibility from rectangle geometry. The host
// supplies a viewport rectangle and calls Refresh whenever layout or
// scroll position changes; each observation receives a snapshot when its
// target's intersection ratio crosses the configured threshold.
//
// An initial snapshot is delivered synchronously when Observe is called,
// so consumers see the current visibility immediately.
type ViewportObserver struct {
	clock clockz.Clock

	mu       sync.Mutex
	viewport Rect
	next     uint64
	active   map[uint64]*viewportObservation
}

type viewportObservation struct {
	target  Target
	opts    Options
	margin  parsedMargin
	deliver DeliverFunc

	delivered    bool
	intersecting bool
}

// NewViewportObserver creates a ViewportObserver for the given viewport
// rectangle.
func NewViewportObserver(viewport Rect) *ViewportObserver {
	return &ViewportObserver{
		clock:    clockz.RealClock,
		viewport: viewport,
		active:   make(map[uint64]*viewportObservation),
	}
}

// Clock sets a custom clock for snapshot timestamps.
func (v *ViewportObserver) Clock(clock clockz.Clock) *ViewportObserver {
	v.clock = clock
	return v
}

// Observe starts watching target and delivers its current visibility
// immediately. The target must report geometry via Bounds; the root margin
// string is validated here.
func (v *ViewportObserver) Observe(_ context.Context, target Target, opts Options, deliver DeliverFunc) (Observation, error) {
	if target == nil {
		return nil, fmt.Errorf("viewport observer requires a target with bounds")
	}
	margin, err := parseMargin(opts.RootMargin)
	if err != nil {
		return nil, fmt.Errorf("invalid observation options: %w", err)
	}

	o := &viewportObservation{
		target:  target,
		opts:    opts,
		margin:  margin,
		deliver: deliver,
	}

	v.mu.Lock()
	v.next++
	id := v.next
	v.active[id] = o
	snapshot := v.evaluate(o)
	o.delivered = true
	o.intersecting = snapshot.Intersecting
	v.mu.Unlock()

	deliver([]Snapshot{snapshot})

	return ObservationFunc(func() {
		v.mu.Lock()
		delete(v.active, id)
		v.mu.Unlock()
	}), nil
}

// SetViewport replaces the viewport rectangle and recomputes every active
// observation.
func (v *ViewportObserver) SetViewport(r Rect) {
	v.mu.Lock()
	v.viewport = r
	v.mu.Unlock()
	v.Refresh()
}

// Viewport returns the current viewport rectangle.
func (v *ViewportObserver) Viewport() Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

// Refresh recomputes every active observation against current geometry and
// delivers snapshots to those whose intersecting bit crossed the threshold.
// Call it whenever target bounds, scroll position, or layout change.
func (v *ViewportObserver) Refresh() {
	type delivery struct {
		deliver DeliverFunc
		batch   []Snapshot
	}

	v.mu.Lock()
	var pending []delivery
	for _, o := range v.active {
		snapshot := v.evaluate(o)
		if o.delivered && snapshot.Intersecting == o.intersecting {
			continue
		}
		o.delivered = true
		o.intersecting = snapshot.Intersecting
		pending = append(pending, delivery{o.deliver, []Snapshot{snapshot}})
	}
	v.mu.Unlock()

	for _, d := range pending {
		d.deliver(d.batch)
	}
}

// evaluate computes the current snapshot for one observation.
// Caller holds v.mu.
func (v *ViewportObserver) evaluate(o *viewportObservation) Snapshot {
	root := v.viewport
	if o.opts.Root != nil {
		root = o.opts.Root.Bounds()
	}
	root = root.Expand(o.margin.resolve(root))

	ratio := ratioOf(o.target.Bounds(), root)
	return Snapshot{
		Intersecting: intersects(ratio, o.opts.Threshold),
		Ratio:        ratio,
		Target:       o.target,
		Time:         v.clock.Now(),
	}
}
