package lumen

// Phase represents the current phase of an Image.
type Phase int32

const (
	// PhaseWaiting indicates the image is showing its placeholder and the
	// full-quality asset has not been requested yet.
	PhaseWaiting Phase = iota

	// PhaseRequested indicates the target became visible and the
	// full-quality request has been issued. The placeholder remains shown
	// until the load completes.
	PhaseRequested

	// PhaseLoaded indicates the full-quality asset finished loading and
	// has crossfaded in. Terminal; images never leave this phase.
	PhaseLoaded
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseRequested:
		return "requested"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}
