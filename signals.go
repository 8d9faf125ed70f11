package lumen

import "github.com/zoobzio/capitan"

// Binding lifecycle signals.
var (
	// BindingBound is emitted when a binding starts observing a target.
	BindingBound = capitan.NewSignal(
		"lumen.binding.bound",
		"Binding observation started",
	)

	// BindingRebound is emitted when a binding disposes a previous
	// observation because its target was reassigned.
	BindingRebound = capitan.NewSignal(
		"lumen.binding.rebound",
		"Previous observation disposed for rebind",
	)

	// BindingDetached is emitted when a binding is pointed at a nil target
	// after having observed a real one.
	BindingDetached = capitan.NewSignal(
		"lumen.binding.detached",
		"Binding target cleared",
	)

	// BindingDisposed is emitted when a binding is torn down.
	BindingDisposed = capitan.NewSignal(
		"lumen.binding.disposed",
		"Binding observation disposed",
	)
)

// Image lifecycle signals.
var (
	// ImagePhaseChanged is emitted when an Image transitions between phases.
	ImagePhaseChanged = capitan.NewSignal(
		"lumen.image.phase.changed",
		"Image phase transition",
	)

	// ImageRequested is emitted when the full-quality request is issued.
	ImageRequested = capitan.NewSignal(
		"lumen.image.requested",
		"Full-quality asset requested",
	)

	// ImageRequestFailed is emitted when the request callback fails.
	ImageRequestFailed = capitan.NewSignal(
		"lumen.image.request.failed",
		"Full-quality request callback failed",
	)

	// ImageLoaded is emitted when the full-quality asset finishes loading.
	ImageLoaded = capitan.NewSignal(
		"lumen.image.loaded",
		"Full-quality asset loaded",
	)
)

// Gallery lifecycle signals.
var (
	// GalleryStarted is emitted when a Gallery begins watching its manifest.
	GalleryStarted = capitan.NewSignal(
		"lumen.gallery.started",
		"Gallery manifest watching started",
	)

	// GalleryStopped is emitted when a Gallery stops watching.
	GalleryStopped = capitan.NewSignal(
		"lumen.gallery.stopped",
		"Gallery manifest watching stopped",
	)

	// GalleryStateChanged is emitted when a Gallery transitions between states.
	GalleryStateChanged = capitan.NewSignal(
		"lumen.gallery.state.changed",
		"Gallery state transition",
	)

	// GalleryReloaded is emitted when a manifest change is applied.
	GalleryReloaded = capitan.NewSignal(
		"lumen.gallery.reloaded",
		"Manifest applied successfully",
	)

	// GalleryReloadFailed is emitted when a manifest change is rejected.
	GalleryReloadFailed = capitan.NewSignal(
		"lumen.gallery.reload.failed",
		"Manifest change rejected",
	)
)
