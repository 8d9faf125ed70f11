package lumen

import (
	"context"
	"sync"

	"github.com/zoobzio/clockz"
)

// ManualObserver delivers snapshots only when told to. Useful for testing
// and for hosts that compute visibility themselves and push results in.
type ManualObserver struct {
	clock clockz.Clock

	mu     sync.Mutex
	next   uint64
	active map[uint64]*manualObservation
}

type manualObservation struct {
	target  Target
	opts    Options
	deliver DeliverFunc
}

// NewManualObserver creates a ManualObserver.
func NewManualObserver() *ManualObserver {
	return &ManualObserver{
		clock:  clockz.RealClock,
		active: make(map[uint64]*manualObservation),
	}
}

// Clock sets a custom clock for snapshot timestamps.
func (m *ManualObserver) Clock(clock clockz.Clock) *ManualObserver {
	m.clock = clock
	return m
}

// Observe registers an observation. Nothing is delivered until Emit or
// EmitRatio is called.
func (m *ManualObserver) Observe(_ context.Context, target Target, opts Options, deliver DeliverFunc) (Observation, error) {
	m.mu.Lock()
	m.next++
	id := m.next
	m.active[id] = &manualObservation{target: target, opts: opts, deliver: deliver}
	m.mu.Unlock()

	return ObservationFunc(func() {
		m.mu.Lock()
		delete(m.active, id)
		m.mu.Unlock()
	}), nil
}

// Active returns the number of currently active observations.
func (m *ManualObserver) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Emit delivers the batch to every active observation. Snapshots with a
// zero Time are stamped with the observer's clock, and a nil Target is
// filled with the observation's target.
func (m *ManualObserver) Emit(batch ...Snapshot) {
	m.mu.Lock()
	observations := make([]*manualObservation, 0, len(m.active))
	for _, o := range m.active {
		observations = append(observations, o)
	}
	m.mu.Unlock()

	now := m.clock.Now()
	for _, o := range observations {
		delivered := make([]Snapshot, len(batch))
		for i, s := range batch {
			if s.Time.IsZero() {
				s.Time = now
			}
			if s.Target == nil {
				s.Target = o.target
			}
			delivered[i] = s
		}
		o.deliver(delivered)
	}
}

// EmitRatio delivers a single snapshot with the given intersection ratio
// to every active observation, deriving the intersecting bit from each
// observation's threshold.
func (m *ManualObserver) EmitRatio(ratio float64) {
	m.mu.Lock()
	observations := make([]*manualObservation, 0, len(m.active))
	for _, o := range m.active {
		observations = append(observations, o)
	}
	m.mu.Unlock()

	now := m.clock.Now()
	for _, o := range observations {
		o.deliver([]Snapshot{{
			Intersecting: intersects(ratio, o.opts.Threshold),
			Ratio:        ratio,
			Target:       o.target,
			Time:         now,
		}})
	}
}

// intersects applies threshold semantics: a zero threshold means any
// overlap counts.
func intersects(ratio, threshold float64) bool {
	if threshold <= 0 {
		return ratio > 0
	}
	return ratio >= threshold
}
