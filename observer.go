package lumen

import (
	"context"
	"time"
)

// Default visibility options.
const (
	// DefaultThreshold is the intersection ratio at which a target is
	// considered visible.
	DefaultThreshold = 0.1

	// DefaultRootMargin is the default margin applied to the observation
	// root before computing intersection.
	DefaultRootMargin = "0%"
)

// Target identifies a rendered container element to observe. The core treats
// targets opaquely; only geometry-based observers require Bounds.
type Target interface {
	// Bounds returns the target's current rectangle in root coordinates.
	Bounds() Rect
}

// Snapshot is a single visibility report for an observed target. Only
// Intersecting is consumed by the core; the remaining fields pass through
// for observability and custom middleware.
type Snapshot struct {
	// Intersecting reports whether the target overlaps the observation
	// root at or above the configured threshold.
	Intersecting bool

	// Ratio is the fraction of the target's area inside the root, in [0,1].
	Ratio float64

	// Target is the observed element the snapshot describes.
	Target Target

	// Time is when the snapshot was taken.
	Time time.Time
}

// Options configures how a target is observed.
type Options struct {
	// Threshold is the intersection ratio in [0,1] that flips the
	// Intersecting bit. Zero means any overlap counts.
	Threshold float64

	// RootMargin expands (or shrinks, when negative) the observation root
	// before intersection is computed. CSS margin shorthand: 1-4 values,
	// "px" or "%" units.
	RootMargin string

	// Root is the element intersection is computed against. Nil means the
	// observer's viewport.
	Root Target
}

// DefaultOptions returns the standard observation options.
func DefaultOptions() Options {
	return Options{
		Threshold:  DefaultThreshold,
		RootMargin: DefaultRootMargin,
	}
}

// DeliverFunc receives a batch of snapshots for one observation. Observers
// may deliver more than one snapshot per batch; consumers that track a
// single target use the first.
type DeliverFunc func(snapshots []Snapshot)

// Observer starts observations against targets and delivers visibility
// snapshots until the observation is disposed.
//
// Implementations should deliver an initial snapshot as soon as the
// observation starts so consumers see the current visibility immediately.
type Observer interface {
	// Observe begins watching target and invokes deliver for every
	// snapshot batch until the returned Observation is disposed or the
	// context is canceled.
	Observe(ctx context.Context, target Target, opts Options, deliver DeliverFunc) (Observation, error)
}

// Observation is a live subscription of an observer to a single target.
type Observation interface {
	// Dispose ends the observation. It is idempotent; no deliveries occur
	// after it returns.
	Dispose()
}

// ObservationFunc adapts a plain function to the Observation interface.
type ObservationFunc func()

// Dispose invokes the function.
func (f ObservationFunc) Dispose() { f() }
