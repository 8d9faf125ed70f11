package lumen

import "testing"

func TestLoadState_Initial(t *testing.T) {
	state := NewLoadState()
	if state.Loaded() {
		t.Error("expected not loaded initially")
	}

	layers := state.Layers()
	if layers.Placeholder.Opacity != 1 {
		t.Errorf("expected opaque placeholder, got %g", layers.Placeholder.Opacity)
	}
	if layers.Full.Opacity != 0 {
		t.Errorf("expected transparent full layer, got %g", layers.Full.Opacity)
	}
}

func TestLoadState_Monotonic(t *testing.T) {
	state := NewLoadState()

	state.MarkLoaded()
	if !state.Loaded() {
		t.Fatal("expected loaded after MarkLoaded")
	}

	// Calling twice yields the same state as calling once.
	state.MarkLoaded()
	if !state.Loaded() {
		t.Error("expected loaded to never revert")
	}

	layers := state.Layers()
	if layers.Placeholder.Opacity != 0 {
		t.Errorf("expected transparent placeholder, got %g", layers.Placeholder.Opacity)
	}
	if layers.Full.Opacity != 1 {
		t.Errorf("expected opaque full layer, got %g", layers.Full.Opacity)
	}
}

func TestLoadState_MarkLoadedOnce(t *testing.T) {
	state := NewLoadState()

	if !state.markLoadedOnce() {
		t.Error("expected first call to flip the bit")
	}
	if state.markLoadedOnce() {
		t.Error("expected second call to report no change")
	}
}
