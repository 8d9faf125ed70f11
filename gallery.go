package lumen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for manifest change
// processing.
const DefaultDebounce = 100 * time.Millisecond

// GalleryState represents the current state of a Gallery.
type GalleryState int32

const (
	// GalleryLoading indicates the Gallery is initializing and has not yet
	// processed a manifest.
	GalleryLoading GalleryState = iota

	// GalleryReady indicates the Gallery has a valid image set built.
	GalleryReady

	// GalleryDegraded indicates the last manifest change failed. The
	// previous image set remains active.
	GalleryDegraded

	// GalleryEmpty indicates the initial manifest load failed and no valid
	// image set was ever built. The Gallery continues watching for valid
	// updates.
	GalleryEmpty
)

// String returns the string representation of the state.
func (s GalleryState) String() string {
	switch s {
	case GalleryLoading:
		return "loading"
	case GalleryReady:
		return "ready"
	case GalleryDegraded:
		return "degraded"
	case GalleryEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Gallery watches a manifest source, builds an Image per declared config,
// and rebuilds the set when the manifest changes.
//
// Source pairs are immutable per Image, so a manifest change constructs a
// fresh set and disposes the old one. A failed change (bad syntax, invalid
// config) keeps the previous set active and marks the gallery degraded.
type Gallery struct {
	source    ManifestSource
	codec     Codec
	debounce  time.Duration
	syncMode  bool
	clock     clockz.Clock
	observer  Observer
	onRequest RequestFunc
	metrics   MetricsProvider
	imageOpts []Option
	onStop    func(GalleryState)

	state     atomic.Int32
	images    atomic.Pointer[[]*Image]
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive manifest bytes
	changes <-chan []byte
}

// NewGallery creates a Gallery that watches a manifest source.
//
// Pipeline options are applied to every Image the gallery builds. Instance
// configuration uses chainable methods before calling Start():
//
//	gallery := lumen.NewGallery(lumen.NewManifestWatcher("gallery.yaml")).
//	    Codec(lumen.YAMLCodec{}).
//	    Observer(observer).
//	    OnRequest(fetchFn)
func NewGallery(source ManifestSource, opts ...Option) *Gallery {
	g := &Gallery{
		source:    source,
		codec:     JSONCodec{},
		debounce:  DefaultDebounce,
		clock:     clockz.RealClock,
		imageOpts: opts,
	}
	g.state.Store(int32(GalleryLoading))
	return g
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Codec sets the codec for deserializing manifest data.
// Default: JSONCodec. Must be called before Start().
func (g *Gallery) Codec(codec Codec) *Gallery {
	g.codec = codec
	return g
}

// Debounce sets the debounce duration for manifest change processing.
// Changes arriving within this duration are coalesced into a single
// rebuild. Default: 100ms. Must be called before Start().
func (g *Gallery) Debounce(d time.Duration) *Gallery {
	g.debounce = d
	return g
}

// SyncMode enables synchronous processing for testing.
// In sync mode, changes are processed immediately without debouncing
// or async goroutines, making tests deterministic. Must be called before Start().
func (g *Gallery) SyncMode() *Gallery {
	g.syncMode = true
	return g
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before Start().
func (g *Gallery) Clock(clock clockz.Clock) *Gallery {
	g.clock = clock
	return g
}

// Observer sets the visibility primitive wired into every built Image.
// Must be called before Start().
func (g *Gallery) Observer(obs Observer) *Gallery {
	g.observer = obs
	return g
}

// OnRequest sets the request callback wired into every built Image.
// Must be called before Start().
func (g *Gallery) OnRequest(fn RequestFunc) *Gallery {
	g.onRequest = fn
	return g
}

// Metrics sets the metrics provider wired into every built Image.
// Must be called before Start().
func (g *Gallery) Metrics(provider MetricsProvider) *Gallery {
	g.metrics = provider
	return g
}

// OnStop sets a callback invoked when the gallery stops watching.
// The callback receives the final state. Must be called before Start().
func (g *Gallery) OnStop(fn func(GalleryState)) *Gallery {
	g.onStop = fn
	return g
}

// State returns the current state of the Gallery.
func (g *Gallery) State() GalleryState {
	return GalleryState(g.state.Load())
}

// Images returns the current image set, or nil if no valid manifest has
// been applied.
func (g *Gallery) Images() []*Image {
	ptr := g.images.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// LastError returns the last error encountered, or nil.
func (g *Gallery) LastError() error {
	ptr := g.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching the manifest. It blocks until the first manifest
// is processed (success or failure), then continues watching
// asynchronously.
//
// If the initial manifest fails, Start returns the error but continues
// watching in the background for valid updates.
//
// In sync mode, Start only processes the initial value. Use Process() to
// manually trigger processing of subsequent values.
//
// Start can only be called once. Subsequent calls return an error.
func (g *Gallery) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return fmt.Errorf("gallery already started")
	}
	g.started = true
	g.mu.Unlock()

	capitan.Emit(ctx, GalleryStarted,
		KeyDebounce.Field(g.debounce),
	)

	changes, err := g.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start manifest source: %w", err)
	}

	// Wait for first manifest and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("manifest source closed before emitting initial value")
		}
		initialErr = g.process(ctx, raw)
	}

	if g.syncMode {
		// In sync mode, store channel for manual processing
		g.changes = changes
		return initialErr
	}

	// Continue watching asynchronously
	go g.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next manifest from the source.
// This is only available in sync mode and is used for deterministic
// testing. Returns false if no value is available or the channel is closed.
func (g *Gallery) Process(ctx context.Context) bool {
	if !g.syncMode {
		return false
	}

	select {
	case raw, ok := <-g.changes:
		if !ok {
			return false
		}
		_ = g.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// process parses a manifest and swaps in a freshly built image set.
func (g *Gallery) process(ctx context.Context, raw []byte) error {
	oldState := g.State()

	manifest, err := ParseManifest(raw, g.codec)
	if err != nil {
		g.setError(err)
		g.transitionState(ctx, oldState, g.failureState())
		capitan.Emit(ctx, GalleryReloadFailed,
			KeyError.Field(err.Error()),
		)
		return err
	}

	built := make([]*Image, 0, len(manifest.Images))
	for i, cfg := range manifest.Images {
		img, err := cfg.Build(g.imageOpts...)
		if err != nil {
			g.setError(err)
			g.transitionState(ctx, oldState, g.failureState())
			capitan.Emit(ctx, GalleryReloadFailed,
				KeyError.Field(err.Error()),
			)
			return fmt.Errorf("image %d: %w", i, err)
		}
		if g.observer != nil {
			img.Observer(g.observer)
		}
		if g.onRequest != nil {
			img.OnRequest(g.onRequest)
		}
		if g.metrics != nil {
			img.Metrics(g.metrics)
		}
		img.Clock(g.clock)
		built = append(built, img)
	}

	// Success - swap sets and dispose the replaced one
	old := g.images.Swap(&built)
	if old != nil {
		for _, img := range *old {
			img.Dispose()
		}
	}
	g.lastError.Store(nil)
	g.transitionState(ctx, oldState, GalleryReady)
	capitan.Emit(ctx, GalleryReloaded,
		KeyImageCount.Field(len(built)),
	)

	return nil
}

// failureState returns the appropriate failure state based on whether a
// valid image set was ever built.
func (g *Gallery) failureState() GalleryState {
	if g.images.Load() == nil {
		return GalleryEmpty
	}
	return GalleryDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (g *Gallery) transitionState(ctx context.Context, oldState, newState GalleryState) {
	if oldState == newState {
		return
	}
	g.state.Store(int32(newState))
	capitan.Emit(ctx, GalleryStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// setError stores an error atomically.
func (g *Gallery) setError(err error) {
	e := err
	g.lastError.Store(&e)
}

// watch processes manifest changes with debouncing.
func (g *Gallery) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		finalState := g.State()
		capitan.Emit(ctx, GalleryStopped,
			KeyState.Field(finalState.String()),
		)
		if g.onStop != nil {
			g.onStop(finalState)
		}
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending change
				if hasPending {
					_ = g.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = g.clock.NewTimer(g.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(g.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = g.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
