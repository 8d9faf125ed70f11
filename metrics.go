package lumen

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key image events.
type MetricsProvider interface {
	// OnPhaseChange is called when an image transitions between phases.
	OnPhaseChange(from, to Phase)

	// OnSnapshot is called for every visibility snapshot retained by the
	// image's binding.
	OnSnapshot(visible bool, ratio float64)

	// OnRequestIssued is called when the full-quality request is issued.
	OnRequestIssued()

	// OnLoadComplete is called when the full-quality asset finishes
	// loading. Latency is the elapsed time since the request was issued.
	OnLoadComplete(latency time.Duration)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnPhaseChange(_, _ Phase)       {}
func (NoOpMetricsProvider) OnSnapshot(_ bool, _ float64)   {}
func (NoOpMetricsProvider) OnRequestIssued()               {}
func (NoOpMetricsProvider) OnLoadComplete(_ time.Duration) {}
