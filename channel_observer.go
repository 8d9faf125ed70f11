package lumen

import (
	"context"
	"sync"
)

// ChannelObserver adapts an existing snapshot channel as an Observer.
// Useful for hosts that already produce visibility events on a channel,
// such as a bridge from an embedded webview or a scroll-event pipeline.
//
// Every observation started against a ChannelObserver receives all batches
// from the wrapped channel; it is intended for single-binding use.
type ChannelObserver struct {
	ch <-chan []Snapshot
}

// NewChannelObserver creates a ChannelObserver that forwards batches from
// the given channel through an internal goroutine.
func NewChannelObserver(ch <-chan []Snapshot) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Observe forwards batches from the wrapped channel to deliver until the
// context is canceled, the source channel closes, or the observation is
// disposed.
func (c *ChannelObserver) Observe(ctx context.Context, _ Target, _ Options, deliver DeliverFunc) (Observation, error) {
	done := make(chan struct{})
	var once sync.Once
	dispose := func() {
		once.Do(func() { close(done) })
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case batch, ok := <-c.ch:
				if !ok {
					return
				}
				select {
				case <-done:
					return
				default:
				}
				deliver(batch)
			}
		}
	}()

	return ObservationFunc(dispose), nil
}
