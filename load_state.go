package lumen

import "sync/atomic"

// LoadState tracks whether the full-quality asset has finished loading and
// derives the visual state of both image layers from it.
//
// The loaded bit is monotonic: once set it never reverts for the lifetime
// of the instance. Replacing the asset pair means constructing a new
// LoadState, not resetting this one.
type LoadState struct {
	loaded atomic.Bool
}

// NewLoadState returns a LoadState in the not-loaded state.
func NewLoadState() *LoadState {
	return &LoadState{}
}

// MarkLoaded records load completion. Idempotent; calling it again after
// the first call is a no-op.
func (s *LoadState) MarkLoaded() {
	s.markLoadedOnce()
}

// markLoadedOnce flips the loaded bit and reports whether this call was
// the one that flipped it.
func (s *LoadState) markLoadedOnce() bool {
	return s.loaded.CompareAndSwap(false, true)
}

// Loaded reports whether load completion has been recorded.
func (s *LoadState) Loaded() bool {
	return s.loaded.Load()
}

// Layers derives the current styles for both layers. The derivation is
// pure and cheap; callers may cache the result but never need to.
func (s *LoadState) Layers() Layers {
	return deriveLayers(s.loaded.Load())
}
