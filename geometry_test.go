package lumen

import (
	"math"
	"testing"
)

func TestRect_Intersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}

	tests := []struct {
		name string
		b    Rect
		want Rect
	}{
		{"full overlap", Rect{X: 0, Y: 0, W: 100, H: 100}, Rect{X: 0, Y: 0, W: 100, H: 100}},
		{"partial overlap", Rect{X: 50, Y: 50, W: 100, H: 100}, Rect{X: 50, Y: 50, W: 50, H: 50}},
		{"contained", Rect{X: 25, Y: 25, W: 50, H: 50}, Rect{X: 25, Y: 25, W: 50, H: 50}},
		{"disjoint", Rect{X: 200, Y: 200, W: 10, H: 10}, Rect{}},
		{"edge adjacent", Rect{X: 100, Y: 0, W: 50, H: 100}, Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRect_Expand(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}
	got := r.Expand(Margin{Top: 10, Right: 20, Bottom: 30, Left: 40})
	want := Rect{X: -40, Y: -10, W: 160, H: 140}
	if got != want {
		t.Errorf("Expand = %+v, want %+v", got, want)
	}

	// Negative margins shrink.
	got = r.Expand(Margin{Top: -10, Right: -10, Bottom: -10, Left: -10})
	want = Rect{X: 10, Y: 10, W: 80, H: 80}
	if got != want {
		t.Errorf("Expand negative = %+v, want %+v", got, want)
	}
}

func TestRatioOf(t *testing.T) {
	root := Rect{X: 0, Y: 0, W: 100, H: 100}

	tests := []struct {
		name   string
		target Rect
		want   float64
	}{
		{"fully inside", Rect{X: 10, Y: 10, W: 20, H: 20}, 1},
		{"half inside", Rect{X: 90, Y: 0, W: 20, H: 100}, 0.5},
		{"outside", Rect{X: 200, Y: 0, W: 20, H: 20}, 0},
		{"zero area target", Rect{X: 10, Y: 10, W: 0, H: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ratioOf(tt.target, root)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ratioOf = %g, want %g", got, tt.want)
			}
		})
	}
}
