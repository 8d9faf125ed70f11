package lumen

// Update carries the gating snapshot through the request pipeline.
// It is handed to middleware when an image's target first becomes visible
// and the full-quality request is about to be issued.
type Update struct {
	// Snapshot is the visibility snapshot that opened the gate.
	Snapshot Snapshot

	// Source is the full-quality asset URI about to be requested.
	Source string

	// Placeholder is the placeholder asset URI currently shown.
	Placeholder string
}
