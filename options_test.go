package lumen

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/zoobzio/pipz"
)

func TestWithMiddleware_ExecutionOrder(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	var order []string
	img := New("low.jpg", "high.jpg",
		WithMiddleware(
			UseEffect("first", func(_ context.Context, _ *Update) error {
				order = append(order, "first")
				return nil
			}),
			UseEffect("second", func(_ context.Context, _ *Update) error {
				order = append(order, "second")
				return nil
			}),
		),
	).
		Observer(observer).
		OnRequest(func(_ context.Context, _ string) error {
			order = append(order, "request")
			return nil
		})

	if err := img.Bind(ctx, &testTarget{}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	observer.EmitRatio(1)

	want := []string{"first", "second", "request"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestUseFilter_ConditionGates(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	var effectRan atomic.Int32
	img := New("low.jpg", "high.jpg",
		WithMiddleware(
			UseFilter("only-large",
				func(_ context.Context, u *Update) bool {
					return u.Snapshot.Ratio >= 0.5
				},
				UseEffect("mark", func(_ context.Context, _ *Update) error {
					effectRan.Add(1)
					return nil
				}),
			),
		),
	).Observer(observer)

	if err := img.Bind(ctx, &testTarget{}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	// Gate opens at ratio 0.2, below the filter's condition.
	observer.EmitRatio(0.2)

	if !img.RenderFull() {
		t.Fatal("expected gate open")
	}
	if effectRan.Load() != 0 {
		t.Errorf("expected filtered effect skipped, got %d runs", effectRan.Load())
	}
}

func TestWithRetry_RecoversTransientFailure(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	var attempts atomic.Int32
	img := New("low.jpg", "high.jpg",
		WithRetry(3),
	).
		Observer(observer).
		OnRequest(func(_ context.Context, _ string) error {
			if attempts.Add(1) < 3 {
				return errors.New("transient")
			}
			return nil
		})

	if err := img.Bind(ctx, &testTarget{}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	observer.EmitRatio(1)

	if attempts.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts.Load())
	}
	if img.LastError() != nil {
		t.Errorf("expected success after retries, got %v", img.LastError())
	}
	if img.Phase() != PhaseRequested {
		t.Errorf("expected requested phase, got %v", img.Phase())
	}
}

func TestWithFallback_UsesSecondary(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	var fallbackRan atomic.Int32
	img := New("low.jpg", "high.jpg",
		WithFallback(UseEffect("mirror", func(_ context.Context, _ *Update) error {
			fallbackRan.Add(1)
			return nil
		})),
	).
		Observer(observer).
		OnRequest(func(_ context.Context, _ string) error {
			return errors.New("primary down")
		})

	if err := img.Bind(ctx, &testTarget{}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	observer.EmitRatio(1)

	if fallbackRan.Load() != 1 {
		t.Errorf("expected fallback invoked once, got %d", fallbackRan.Load())
	}
	if img.LastError() != nil {
		t.Errorf("expected fallback to recover, got %v", img.LastError())
	}
}

func TestWithErrorHandler_ObservesFailure(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	var handled atomic.Int32
	handler := pipz.Effect(pipz.Name("observe-error"), func(_ context.Context, _ *pipz.Error[*Update]) error {
		handled.Add(1)
		return nil
	})

	img := New("low.jpg", "high.jpg",
		WithErrorHandler(handler),
	).
		Observer(observer).
		OnRequest(func(_ context.Context, _ string) error {
			return errors.New("fetch refused")
		})

	if err := img.Bind(ctx, &testTarget{}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	observer.EmitRatio(1)

	if handled.Load() != 1 {
		t.Errorf("expected error handler invoked once, got %d", handled.Load())
	}
	if img.LastError() == nil {
		t.Error("expected error still recorded after handling")
	}
}

func TestUseApply_CanFailRequest(t *testing.T) {
	ctx := context.Background()
	observer := NewManualObserver()

	var requested atomic.Int32
	img := New("low.jpg", "high.jpg",
		WithMiddleware(
			UseApply("reject", func(_ context.Context, _ *Update) (*Update, error) {
				return nil, errors.New("blocked")
			}),
		),
	).
		Observer(observer).
		OnRequest(func(_ context.Context, _ string) error {
			requested.Add(1)
			return nil
		})

	if err := img.Bind(ctx, &testTarget{}); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	observer.EmitRatio(1)

	if requested.Load() != 0 {
		t.Errorf("expected request blocked by middleware, got %d", requested.Load())
	}
	if img.LastError() == nil {
		t.Error("expected LastError set")
	}
	// The latch still holds: there is no un-requesting.
	if !img.RenderFull() {
		t.Error("expected gate to stay open")
	}
}
