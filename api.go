// Package lumen provides reactive primitives for progressive image loading.
//
// A progressive image shows a cheap blurred placeholder immediately and
// crossfades in the full-quality version once it loads. The full-quality
// fetch is deferred until the image's container becomes visible, so
// off-screen content costs no bandwidth.
//
// # Image
//
// The core type is Image, which composes a load-transition controller and a
// visibility binding into a gating policy:
//
//	Observe container → first intersecting snapshot → request full asset
//	→ load completes → crossfade
//
// The gate is monotonic in both directions: once the request is issued it
// is never withdrawn, and once loaded the image never reverts to its
// placeholder. Scrolling the container back out of view changes nothing.
//
// # Observers
//
// The Observer interface abstracts the visibility primitive. The package
// provides:
//
//   - ManualObserver: deterministic snapshot driving for tests
//   - ChannelObserver: adapts an existing snapshot channel
//   - ViewportObserver: rectangle-intersection geometry with root margins
//     and threshold crossings
//
// # Example
//
//	img := lumen.New("thumb.jpg", "full.jpg").
//	    Observer(observer).
//	    Size(1200, 800).
//	    OnRequest(func(ctx context.Context, source string) error {
//	        return fetcher.Fetch(ctx, source)
//	    })
//
//	img.Bind(ctx, container)   // containerRefSink: call again on re-render
//	...
//	img.MarkLoaded(ctx)        // environment reports load completion
//	layers := img.Layers()     // renderer applies layers.Placeholder / layers.Full
//	img.Dispose()              // owner teardown, exactly once
//
// # Gallery
//
// Gallery builds a set of Images from a JSON or YAML manifest file and
// hot-reloads it, keeping the previous set when a manifest change fails
// validation.
package lumen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

const requestID pipz.Name = "request-full"

// RequestFunc issues the full-quality asset request. The actual fetch
// mechanism belongs to the embedding renderer; lumen only decides when.
type RequestFunc func(ctx context.Context, source string) error

// Image wires a placeholder/full-quality source pair, a LoadState, and a
// Binding together into the visibility gating policy.
//
// Configuration is immutable once Bind has been called. Supplying a
// different source pair means constructing a new Image; there is no
// reset-in-place.
type Image struct {
	placeholder string
	source      string
	width       int
	height      int
	visOpts     Options
	observer    Observer
	onRequest   RequestFunc
	pipeline    pipz.Chainable[*Update]
	clock       clockz.Clock
	metrics     MetricsProvider
	historySize int

	load  *LoadState
	phase atomic.Int32

	lastError atomic.Pointer[error]

	mu          sync.Mutex
	binding     *Binding
	bindCtx     context.Context
	requested   bool
	requestedAt time.Time
}

// New creates an Image for a placeholder/full-quality source pair.
//
// Pipeline options (With*) configure the request pipeline. Instance
// configuration uses chainable methods before the first Bind:
//
//	img := lumen.New("thumb.jpg", "full.jpg",
//	    lumen.WithMiddleware(lumen.UseEffect("log", logFn)),
//	).Observer(observer).Threshold(0.25)
func New(placeholder, source string, opts ...Option) *Image {
	i := &Image{
		placeholder: placeholder,
		source:      source,
		visOpts:     DefaultOptions(),
		clock:       clockz.RealClock,
	}

	terminal := pipz.Effect(requestID, func(ctx context.Context, u *Update) error {
		if i.onRequest == nil {
			return nil
		}
		return i.onRequest(ctx, u.Source)
	})
	i.pipeline = buildPipeline(terminal, opts)
	i.load = NewLoadState()
	i.phase.Store(int32(PhaseWaiting))

	return i
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Observer sets the visibility primitive used to watch the container.
// When no observer is configured, Bind degrades to eager loading: a real
// target counts as immediately visible. Must be called before Bind.
func (i *Image) Observer(obs Observer) *Image {
	i.observer = obs
	return i
}

// Size sets the rendered dimensions. Pass-through render hints; lumen does
// not interpret them. Must be called before Bind.
func (i *Image) Size(width, height int) *Image {
	i.width = width
	i.height = height
	return i
}

// Threshold sets the intersection ratio in [0,1] at which the container
// counts as visible. Default: 0.1. Must be called before Bind.
func (i *Image) Threshold(v float64) *Image {
	i.visOpts.Threshold = v
	return i
}

// RootMargin sets the margin applied to the observation root.
// Default: "0%". Must be called before Bind.
func (i *Image) RootMargin(s string) *Image {
	i.visOpts.RootMargin = s
	return i
}

// Root sets the element intersection is computed against.
// Default: nil, meaning the observer's viewport. Must be called before Bind.
func (i *Image) Root(t Target) *Image {
	i.visOpts.Root = t
	return i
}

// OnRequest sets the callback that issues the full-quality request when
// the gate opens. Must be called before Bind.
func (i *Image) OnRequest(fn RequestFunc) *Image {
	i.onRequest = fn
	return i
}

// Clock sets a custom clock for timestamps and load latency.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Bind.
func (i *Image) Clock(clock clockz.Clock) *Image {
	i.clock = clock
	return i
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Bind.
func (i *Image) Metrics(provider MetricsProvider) *Image {
	i.metrics = provider
	return i
}

// HistorySize sets the number of recent snapshots the binding retains.
// Use 0 (default) to disable history. Must be called before Bind.
func (i *Image) HistorySize(n int) *Image {
	i.historySize = n
	return i
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Placeholder returns the placeholder asset URI.
func (i *Image) Placeholder() string { return i.placeholder }

// Source returns the full-quality asset URI.
func (i *Image) Source() string { return i.source }

// Width returns the rendered width hint.
func (i *Image) Width() int { return i.width }

// Height returns the rendered height hint.
func (i *Image) Height() int { return i.height }

// Phase returns the current phase of the image.
func (i *Image) Phase() Phase {
	return Phase(i.phase.Load())
}

// Loaded reports whether the full-quality asset has finished loading.
func (i *Image) Loaded() bool {
	return i.load.Loaded()
}

// RenderFull reports whether the renderer should mount the full-quality
// asset element. Latches true the first time the container is visible and
// never reverts.
func (i *Image) RenderFull() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.requested
}

// Visible reports the container's current visibility. Unlike RenderFull
// this is not latched; it follows the last snapshot.
func (i *Image) Visible() bool {
	i.mu.Lock()
	b := i.binding
	requested := i.requested
	i.mu.Unlock()

	if b == nil {
		// Eager mode has no observation; visibility collapses into the gate.
		return requested
	}
	return b.Visible()
}

// Layers derives the current styles for both layers from the loaded bit.
func (i *Image) Layers() Layers {
	return i.load.Layers()
}

// History returns the binding's recent snapshot history, oldest first.
// Returns nil unless enabled via HistorySize.
func (i *Image) History() []Snapshot {
	i.mu.Lock()
	b := i.binding
	i.mu.Unlock()
	if b == nil {
		return nil
	}
	return b.History()
}

// LastError returns the last request pipeline error, or nil.
// Request errors never affect visual state; the image simply stays on its
// placeholder until MarkLoaded arrives.
func (i *Image) LastError() error {
	ptr := i.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Bind points the image at its live container element. The rendering
// collaborator calls this with the real element once mounted, again
// whenever the element identity changes across re-renders, and with nil on
// unmount. Each call with a real target disposes any previous observation
// before starting a new one.
func (i *Image) Bind(ctx context.Context, target Target) error {
	i.mu.Lock()
	i.bindCtx = ctx

	if i.observer == nil {
		i.mu.Unlock()
		if target == nil {
			return nil
		}
		// No visibility primitive available: degrade to eager loading.
		i.handleSnapshot(Snapshot{
			Intersecting: true,
			Ratio:        1,
			Target:       target,
			Time:         i.clock.Now(),
		})
		return nil
	}

	if i.binding == nil {
		i.binding = NewBinding(i.observer, i.visOpts).
			OnUpdate(i.handleSnapshot).
			HistorySize(i.historySize)
	}
	b := i.binding
	i.mu.Unlock()

	return b.Bind(ctx, target)
}

// MarkLoaded records that the environment finished loading the
// full-quality asset. Idempotent; the loaded bit is monotonic.
func (i *Image) MarkLoaded(ctx context.Context) {
	if !i.load.markLoadedOnce() {
		return
	}

	i.mu.Lock()
	requestedAt := i.requestedAt
	i.mu.Unlock()

	oldPhase := i.Phase()
	i.transitionPhase(ctx, oldPhase, PhaseLoaded)

	var latency time.Duration
	if !requestedAt.IsZero() {
		latency = i.clock.Since(requestedAt)
	}
	capitan.Emit(ctx, ImageLoaded,
		KeySource.Field(i.source),
		KeyLoadLatency.Field(latency),
	)
	if i.metrics != nil {
		i.metrics.OnLoadComplete(latency)
	}
}

// Dispose tears down the image's observation. Idempotent; owners must call
// it exactly once when the image's lifetime ends, whether or not Bind was
// ever called with a real target.
func (i *Image) Dispose() {
	i.mu.Lock()
	b := i.binding
	i.mu.Unlock()
	if b != nil {
		b.Dispose()
	}
}

// -----------------------------------------------------------------------------
// Gating
// -----------------------------------------------------------------------------

// handleSnapshot applies the gating policy to one retained snapshot.
func (i *Image) handleSnapshot(s Snapshot) {
	if i.metrics != nil {
		i.metrics.OnSnapshot(s.Intersecting, s.Ratio)
	}

	i.mu.Lock()
	if i.requested || !s.Intersecting {
		i.mu.Unlock()
		return
	}
	i.requested = true
	i.requestedAt = i.clock.Now()
	ctx := i.bindCtx
	i.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	i.transitionPhase(ctx, PhaseWaiting, PhaseRequested)
	capitan.Emit(ctx, ImageRequested,
		KeySource.Field(i.source),
		KeyPlaceholder.Field(i.placeholder),
	)
	if i.metrics != nil {
		i.metrics.OnRequestIssued()
	}

	update := &Update{Snapshot: s, Source: i.source, Placeholder: i.placeholder}
	if _, err := i.pipeline.Process(ctx, update); err != nil {
		i.setError(fmt.Errorf("request pipeline failed: %w", err))
		capitan.Emit(ctx, ImageRequestFailed,
			KeySource.Field(i.source),
			KeyError.Field(err.Error()),
		)
	}
}

// transitionPhase updates the phase and emits a change event if changed.
func (i *Image) transitionPhase(ctx context.Context, oldPhase, newPhase Phase) {
	if oldPhase == newPhase {
		return
	}
	i.phase.Store(int32(newPhase))
	capitan.Emit(ctx, ImagePhaseChanged,
		KeyOldPhase.Field(oldPhase.String()),
		KeyNewPhase.Field(newPhase.String()),
	)
	if i.metrics != nil {
		i.metrics.OnPhaseChange(oldPhase, newPhase)
	}
}

// setError stores an error atomically.
func (i *Image) setError(err error) {
	e := err
	i.lastError.Store(&e)
}
