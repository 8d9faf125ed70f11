package lumen

import "github.com/zoobzio/capitan"

// Field keys for lumen events.
var (
	// KeySource is the full-quality asset URI.
	KeySource = capitan.NewStringKey("source")

	// KeyPlaceholder is the placeholder asset URI.
	KeyPlaceholder = capitan.NewStringKey("placeholder")

	// KeyOldPhase is the previous phase before a transition.
	KeyOldPhase = capitan.NewStringKey("old_phase")

	// KeyNewPhase is the new phase after a transition.
	KeyNewPhase = capitan.NewStringKey("new_phase")

	// KeyOldState is the previous gallery state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new gallery state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyState is the final gallery state when watching stops.
	KeyState = capitan.NewStringKey("state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyLoadLatency is the elapsed time from request issuance to load
	// completion.
	KeyLoadLatency = capitan.NewDurationKey("load_latency")

	// KeyDebounce is the configured manifest debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyImageCount is the number of images built from a manifest.
	KeyImageCount = capitan.NewIntKey("image_count")
)
