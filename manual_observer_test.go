package lumen

import (
	"context"
	"testing"
)

func TestManualObserver_TracksActiveObservations(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	obs1, err := observer.Observe(ctx, &testTarget{}, DefaultOptions(), func([]Snapshot) {})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	obs2, err := observer.Observe(ctx, &testTarget{}, DefaultOptions(), func([]Snapshot) {})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	if observer.Active() != 2 {
		t.Errorf("expected 2 active, got %d", observer.Active())
	}

	obs1.Dispose()
	if observer.Active() != 1 {
		t.Errorf("expected 1 active after dispose, got %d", observer.Active())
	}

	// Dispose is idempotent.
	obs1.Dispose()
	if observer.Active() != 1 {
		t.Errorf("expected 1 active after double dispose, got %d", observer.Active())
	}

	obs2.Dispose()
	if observer.Active() != 0 {
		t.Errorf("expected 0 active, got %d", observer.Active())
	}
}

func TestManualObserver_EmitFillsDefaults(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()
	target := &testTarget{}

	var got []Snapshot
	_, err := observer.Observe(ctx, target, DefaultOptions(), func(batch []Snapshot) {
		got = batch
	})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	observer.Emit(Snapshot{Intersecting: true, Ratio: 0.3})

	if len(got) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(got))
	}
	if got[0].Target != target {
		t.Error("expected target filled from observation")
	}
	if got[0].Time.IsZero() {
		t.Error("expected timestamp stamped")
	}
}

func TestManualObserver_EmitRatioThresholdSemantics(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	opts := DefaultOptions()
	opts.Threshold = 0.5

	var last Snapshot
	_, err := observer.Observe(ctx, &testTarget{}, opts, func(batch []Snapshot) {
		last = batch[0]
	})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	observer.EmitRatio(0.4)
	if last.Intersecting {
		t.Error("expected not intersecting below threshold")
	}

	observer.EmitRatio(0.5)
	if !last.Intersecting {
		t.Error("expected intersecting at threshold")
	}
}

func TestManualObserver_ZeroThresholdAnyOverlap(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	opts := DefaultOptions()
	opts.Threshold = 0

	var last Snapshot
	_, err := observer.Observe(ctx, &testTarget{}, opts, func(batch []Snapshot) {
		last = batch[0]
	})
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	observer.EmitRatio(0)
	if last.Intersecting {
		t.Error("expected not intersecting at zero ratio")
	}

	observer.EmitRatio(0.001)
	if !last.Intersecting {
		t.Error("expected any overlap to count with zero threshold")
	}
}
