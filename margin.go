package lumen

import (
	"fmt"
	"strconv"
	"strings"
)

// Margin holds per-side expansion of an observation root, in root
// coordinate units.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// ParseRootMargin parses a CSS margin shorthand string ("10px", "5% 10px",
// etc.) against the root's dimensions. Percentage values resolve relative
// to the root's height for top/bottom and width for left/right. An empty
// string is treated as no margin.
func ParseRootMargin(s string, root Rect) (Margin, error) {
	parsed, err := parseMargin(s)
	if err != nil {
		return Margin{}, err
	}
	return parsed.resolve(root), nil
}

// parsedMargin is a root margin with percentages not yet resolved, so the
// same parse result can be re-resolved when root dimensions change.
type parsedMargin struct {
	top    marginValue
	right  marginValue
	bottom marginValue
	left   marginValue
}

func parseMargin(s string) (parsedMargin, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return parsedMargin{}, nil
	}

	parts := strings.Fields(s)
	if len(parts) > 4 {
		return parsedMargin{}, fmt.Errorf("root margin %q: at most 4 values allowed", s)
	}

	values := make([]marginValue, len(parts))
	for i, p := range parts {
		v, err := parseMarginValue(p)
		if err != nil {
			return parsedMargin{}, fmt.Errorf("root margin %q: %w", s, err)
		}
		values[i] = v
	}

	// CSS shorthand expansion: top, right, bottom, left.
	m := parsedMargin{top: values[0]}
	m.right = m.top
	if len(values) > 1 {
		m.right = values[1]
	}
	m.bottom = m.top
	if len(values) > 2 {
		m.bottom = values[2]
	}
	m.left = m.right
	if len(values) > 3 {
		m.left = values[3]
	}
	return m, nil
}

func (p parsedMargin) resolve(root Rect) Margin {
	return Margin{
		Top:    p.top.resolve(root.H),
		Right:  p.right.resolve(root.W),
		Bottom: p.bottom.resolve(root.H),
		Left:   p.left.resolve(root.W),
	}
}

type marginValue struct {
	amount  float64
	percent bool
}

func (v marginValue) resolve(dimension float64) float64 {
	if v.percent {
		return v.amount / 100 * dimension
	}
	return v.amount
}

func parseMarginValue(s string) (marginValue, error) {
	switch {
	case strings.HasSuffix(s, "%"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return marginValue{}, fmt.Errorf("invalid percentage %q", s)
		}
		return marginValue{amount: n, percent: true}, nil
	case strings.HasSuffix(s, "px"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
		if err != nil {
			return marginValue{}, fmt.Errorf("invalid pixel value %q", s)
		}
		return marginValue{amount: n}, nil
	default:
		return marginValue{}, fmt.Errorf("value %q must end in px or %%", s)
	}
}
