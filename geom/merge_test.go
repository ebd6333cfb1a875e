package geom

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp/v2"
)

func box(x, y, w, h float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

func totalArea(polys []Polygon) float64 {
	sum := 0.0
	for _, p := range polys {
		sum += p.Area()
	}
	return sum
}

func TestMergeEmptyAndDegenerate(t *testing.T) {
	if got := Merge(nil); got != nil {
		t.Fatalf("empty input should merge to nothing, got %v", got)
	}
	// collapsed ring contributes nothing, not an error
	degenerate := Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if got := Merge([]Polygon{degenerate}); got != nil {
		t.Fatalf("degenerate input should merge to nothing, got %v", got)
	}
}

func TestMergeIdempotent(t *testing.T) {
	a := box(0, 0, 32, 32)
	once := Merge([]Polygon{a})
	twice := Merge([]Polygon{a, a})

	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("expected a single ring from both merges, got %d and %d", len(once), len(twice))
	}
	if math.Abs(once[0].Area()-32*32) > 1e-6 {
		t.Fatalf("single ring area %v, want %v", once[0].Area(), 32*32)
	}
	if math.Abs(once[0].Area()-twice[0].Area()) > 1e-6 {
		t.Fatalf("union with itself changed the area: %v vs %v", once[0].Area(), twice[0].Area())
	}
}

func TestMergeDisjoint(t *testing.T) {
	merged := Merge([]Polygon{box(0, 0, 10, 10), box(100, 100, 10, 10)})
	if len(merged) != 2 {
		t.Fatalf("disjoint polygons should stay separate rings, got %d", len(merged))
	}
	if math.Abs(totalArea(merged)-200) > 1e-6 {
		t.Fatalf("total area %v, want 200", totalArea(merged))
	}
}

func TestMergeOverlapping(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(5, 0, 10, 10)
	merged := Merge([]Polygon{a, b})
	if len(merged) != 1 {
		t.Fatalf("overlapping rectangles should merge into one ring, got %d", len(merged))
	}
	area := merged[0].Area()
	if area <= 100 || area >= 200 {
		t.Fatalf("merged area %v must sit between max(a1,a2) and a1+a2", area)
	}
	if math.Abs(area-150) > 1e-6 {
		t.Fatalf("merged area %v, want 150", area)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	polys := []Polygon{box(0, 0, 16, 16), box(16, 0, 16, 16), box(8, 8, 16, 16)}
	forward := Merge(polys)
	backward := Merge([]Polygon{polys[2], polys[1], polys[0]})

	if len(forward) != len(backward) {
		t.Fatalf("ring counts differ: %d vs %d", len(forward), len(backward))
	}
	if math.Abs(totalArea(forward)-totalArea(backward)) > 1e-6 {
		t.Fatalf("areas differ: %v vs %v", totalArea(forward), totalArea(backward))
	}
}

func TestMergeAdjacentTiles(t *testing.T) {
	// a 3-tile row merges into one rectangle
	merged := Merge([]Polygon{box(0, 0, 32, 32), box(32, 0, 32, 32), box(64, 0, 32, 32)})
	if len(merged) != 1 {
		t.Fatalf("adjacent tiles should merge into one ring, got %d", len(merged))
	}
	if math.Abs(merged[0].Area()-3*32*32) > 1e-6 {
		t.Fatalf("merged area %v, want %v", merged[0].Area(), 3*32*32)
	}
}

func TestMergeDiscardsHoles(t *testing.T) {
	// ring of tiles around an empty center cell
	var tiles []Polygon
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			tiles = append(tiles, box(float64(x)*32, float64(y)*32, 32, 32))
		}
	}

	merged := Merge(tiles)
	if len(merged) != 1 {
		t.Fatalf("expected a single exterior ring, got %d", len(merged))
	}
	// the hole is discarded, so the ring spans the full square
	if math.Abs(merged[0].Area()-96*96) > 1e-6 {
		t.Fatalf("exterior area %v, want %v", merged[0].Area(), 96*96)
	}
}

func TestTranslate(t *testing.T) {
	p := box(0, 0, 4, 4).Translate(cp.Vector{X: 10, Y: -20})
	if p[0] != (cp.Vector{X: 10, Y: -20}) || p[2] != (cp.Vector{X: 14, Y: -16}) {
		t.Fatalf("translate produced %v", p)
	}
}
