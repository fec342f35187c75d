package model

import (
	"errors"
	"testing"
)

// ============================================================================
// Rect Tests
// ============================================================================

func TestNewRectNormalizes(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           Rect
	}{
		{"ordered", 1, 2, 10, 20, Rect{1, 2, 10, 20}},
		{"swapped x", 10, 2, 1, 20, Rect{1, 2, 10, 20}},
		{"swapped y", 1, 20, 10, 2, Rect{1, 2, 10, 20}},
		{"swapped both", 10, 20, 1, 2, Rect{1, 2, 10, 20}},
		{"degenerate", 5, 5, 5, 5, Rect{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRect(tt.x0, tt.y0, tt.x1, tt.y1)
			if got != tt.want {
				t.Errorf("NewRect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectCenterFloorDivision(t *testing.T) {
	r := NewRect(0, 0, 5, 7)
	if got := r.Center(); got != (Point{2, 3}) {
		t.Errorf("Center() = %+v, want {2 3}", got)
	}
}

func TestSharesSpace(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"full overlap", Rect{0, 0, 10, 10}, Rect{2, 2, 8, 8}, true},
		{"partial overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 15, 15}, true},
		{"corner touch", Rect{0, 0, 10, 10}, Rect{10, 10, 12, 12}, true},
		{"edge touch", Rect{0, 0, 10, 10}, Rect{10, 0, 20, 10}, true},
		{"separated x", Rect{0, 0, 10, 10}, Rect{11, 0, 20, 10}, false},
		{"separated y", Rect{0, 0, 10, 10}, Rect{0, 11, 10, 20}, false},
		{"overlap x only", Rect{133, 27, 1469, 315}, Rect{1470, 316, 1472, 320}, false},
		{"boundary pixel", Rect{151, 29, 1469, 315}, Rect{1469, 315, 1471, 320}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SharesSpace(tt.b); got != tt.want {
				t.Errorf("SharesSpace(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Symmetry must hold for every pair.
			if got := tt.b.SharesSpace(tt.a); got != tt.want {
				t.Errorf("SharesSpace(%+v, %+v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestStrictlyContains(t *testing.T) {
	tests := []struct {
		name         string
		outer, inner Rect
		want         bool
	}{
		{"fully inside", Rect{1, 1, 100, 100}, Rect{2, 2, 4, 4}, true},
		{"outside", Rect{1, 1, 100, 100}, Rect{101, 101, 200, 200}, false},
		{"self", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, false},
		{"touching left edge", Rect{0, 0, 10, 10}, Rect{0, 2, 8, 8}, false},
		{"touching bottom edge", Rect{0, 0, 10, 10}, Rect{2, 2, 8, 10}, false},
		{"inner bigger", Rect{2, 2, 4, 4}, Rect{1, 1, 100, 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.StrictlyContains(tt.inner); got != tt.want {
				t.Errorf("StrictlyContains(%+v, %+v) = %v, want %v", tt.outer, tt.inner, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Directional Relation Tests
// ============================================================================

func TestBeside(t *testing.T) {
	anchor := NewElement("0", "anchor", NewRect(50, 50, 60, 60), 0.9)

	tests := []struct {
		name      string
		candidate Rect
		side      Side
		want      bool
	}{
		{"right of anchor", NewRect(62, 50, 70, 60), SideRight, true},
		{"right candidate is not left", NewRect(62, 50, 70, 60), SideLeft, false},
		{"right candidate is not up", NewRect(62, 50, 70, 60), SideUp, false},
		{"right candidate is not down", NewRect(62, 50, 70, 60), SideDown, false},
		{"left of anchor", NewRect(40, 50, 48, 60), SideLeft, true},
		{"left candidate is not right", NewRect(40, 50, 48, 60), SideRight, false},
		{"left candidate is not up", NewRect(40, 50, 48, 60), SideUp, false},
		{"left candidate is not down", NewRect(40, 50, 48, 60), SideDown, false},
		{"right but misaligned vertically", NewRect(62, 70, 70, 80), SideRight, false},
		{"touching is not right", NewRect(60, 50, 70, 60), SideRight, false},
		// The vertical relations are one-sided: up holds for any aligned
		// candidate whose bottom edge is below the anchor's top edge, and
		// down for any aligned candidate whose top edge is above the
		// anchor's bottom edge.
		{"candidate below, up", NewRect(50, 62, 60, 70), SideUp, true},
		{"candidate below, down", NewRect(50, 62, 60, 70), SideDown, false},
		{"candidate above, down", NewRect(50, 40, 60, 48), SideDown, true},
		{"candidate above, up", NewRect(50, 40, 60, 48), SideUp, false},
		{"candidate below, misaligned", NewRect(70, 62, 80, 70), SideUp, false},
		{"overlapping candidate, up and down", NewRect(50, 52, 60, 58), SideUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := NewElement("1", "candidate", tt.candidate, 0.9)
			got, err := Beside(anchor, candidate, tt.side)
			if err != nil {
				t.Fatalf("Beside() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Beside(anchor, %+v, %q) = %v, want %v", tt.candidate, tt.side, got, tt.want)
			}
		})
	}
}

func TestBesideInvalidSide(t *testing.T) {
	a := NewElement("0", "a", NewRect(0, 0, 10, 10), 1)
	b := NewElement("1", "b", NewRect(20, 0, 30, 10), 1)

	_, err := Beside(a, b, Side("diagonal"))
	if !errors.Is(err, ErrInvalidSide) {
		t.Errorf("Beside() error = %v, want ErrInvalidSide", err)
	}
}
