package lumen

import "testing"

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseWaiting, "waiting"},
		{PhaseRequested, "requested"},
		{PhaseLoaded, "loaded"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestGalleryState_String(t *testing.T) {
	tests := []struct {
		state GalleryState
		want  string
	}{
		{GalleryLoading, "loading"},
		{GalleryReady, "ready"},
		{GalleryDegraded, "degraded"},
		{GalleryEmpty, "empty"},
		{GalleryState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("GalleryState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
