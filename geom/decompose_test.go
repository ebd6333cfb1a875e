package geom

import (
	"math"
	"testing"
)

const testTolerance = 0.0025

func TestDecomposeConvexPassthrough(t *testing.T) {
	cases := []struct {
		name    string
		outline Polygon
	}{
		{"square", box(0, 0, 10, 10)},
		{"triangle", Polygon{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 4, Y: 6}}},
		{"pentagon", Polygon{{X: 2, Y: 0}, {X: 6, Y: 0}, {X: 8, Y: 4}, {X: 4, Y: 7}, {X: 0, Y: 4}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parts := Decompose(c.outline, testTolerance)
			if len(parts) != 1 {
				t.Fatalf("convex input should stay one part, got %d", len(parts))
			}
			if len(parts[0]) != len(c.outline) {
				t.Fatalf("part has %d vertices, want %d", len(parts[0]), len(c.outline))
			}
			if math.Abs(parts[0].Area()-c.outline.Area()) > 1e-9 {
				t.Fatalf("part area %v, want %v", parts[0].Area(), c.outline.Area())
			}
		})
	}
}

func TestDecomposeConcave(t *testing.T) {
	// L-shape: concave at (4,4)
	l := Polygon{
		{X: 0, Y: 0},
		{X: 8, Y: 0},
		{X: 8, Y: 4},
		{X: 4, Y: 4},
		{X: 4, Y: 8},
		{X: 0, Y: 8},
	}

	parts := Decompose(l, testTolerance)
	if len(parts) < 2 {
		t.Fatalf("an L-shape cannot be covered by one convex part, got %d", len(parts))
	}
	for i, part := range parts {
		if !isConvex(part, testTolerance) {
			t.Fatalf("part %d is not convex: %v", i, part)
		}
	}
	if math.Abs(totalArea(parts)-l.Area()) > 1e-6 {
		t.Fatalf("parts cover area %v, outline has %v", totalArea(parts), l.Area())
	}
}

func TestDecomposeToleratesShallowDents(t *testing.T) {
	// a near-rectangle with a dent shallower than the tolerance
	dented := Polygon{
		{X: 0, Y: 0},
		{X: 5, Y: 0.001},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
	parts := Decompose(dented, testTolerance)
	if len(parts) != 1 {
		t.Fatalf("a dent within tolerance should not force a split, got %d parts", len(parts))
	}
}

func TestDecomposeDegenerate(t *testing.T) {
	cases := []struct {
		name    string
		outline Polygon
	}{
		{"empty", nil},
		{"two_points", Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{"zero_area", Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 8, Y: 0}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if parts := Decompose(c.outline, testTolerance); parts != nil {
				t.Fatalf("degenerate outline should decompose to nothing, got %v", parts)
			}
		})
	}
}

func TestDecomposeMergedTileOutline(t *testing.T) {
	// a plus-shape built from five tiles, merged then decomposed
	tiles := []Polygon{
		box(32, 0, 32, 32),
		box(0, 32, 32, 32),
		box(32, 32, 32, 32),
		box(64, 32, 32, 32),
		box(32, 64, 32, 32),
	}
	merged := Merge(tiles)
	if len(merged) != 1 {
		t.Fatalf("plus-shape should merge into one ring, got %d", len(merged))
	}

	parts := Decompose(merged[0], testTolerance)
	if len(parts) < 2 {
		t.Fatalf("plus-shape needs at least 2 convex parts, got %d", len(parts))
	}
	for i, part := range parts {
		if !isConvex(part, testTolerance) {
			t.Fatalf("part %d is not convex", i)
		}
	}
	if math.Abs(totalArea(parts)-5*32*32) > 1e-6 {
		t.Fatalf("parts cover %v, want %v", totalArea(parts), 5*32*32)
	}
}
