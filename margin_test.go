package lumen

import "testing"

func TestParseRootMargin(t *testing.T) {
	root := Rect{X: 0, Y: 0, W: 200, H: 100}

	tests := []struct {
		name  string
		input string
		want  Margin
	}{
		{"empty", "", Margin{}},
		{"zero percent", "0%", Margin{}},
		{"single px", "10px", Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}},
		{"single percent", "10%", Margin{Top: 10, Right: 20, Bottom: 10, Left: 20}},
		{"two values", "10px 5%", Margin{Top: 10, Right: 10, Bottom: 10, Left: 10}},
		{"three values", "10px 20px 30px", Margin{Top: 10, Right: 20, Bottom: 30, Left: 20}},
		{"four values", "1px 2px 3px 4px", Margin{Top: 1, Right: 2, Bottom: 3, Left: 4}},
		{"negative", "-10px", Margin{Top: -10, Right: -10, Bottom: -10, Left: -10}},
		{"fractional", "2.5px", Margin{Top: 2.5, Right: 2.5, Bottom: 2.5, Left: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRootMargin(tt.input, root)
			if err != nil {
				t.Fatalf("ParseRootMargin(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRootMargin(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRootMargin_Invalid(t *testing.T) {
	root := Rect{W: 100, H: 100}

	for _, input := range []string{
		"10",
		"10em",
		"px",
		"%",
		"1px 2px 3px 4px 5px",
	} {
		if _, err := ParseRootMargin(input, root); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
