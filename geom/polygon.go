// Package geom merges world-space collision polygons and decomposes the
// merged outlines into convex parts for a physics engine.
package geom

import "github.com/jakecoffman/cp/v2"

// Polygon is a closed ring of points. The closing edge from the last
// point back to the first is implicit.
type Polygon []cp.Vector

// Translate returns a copy of the ring offset by v.
func (p Polygon) Translate(v cp.Vector) Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Add(v)
	}
	return out
}

// SignedArea is positive for counter-clockwise rings.
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	area := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// Area returns the absolute enclosed area.
func (p Polygon) Area() float64 {
	a := p.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

const collinearEpsilon = 1e-9

// normalize drops a duplicated closing point and collinear vertices and
// forces counter-clockwise winding. Degenerate rings come back nil.
func normalize(p Polygon) Polygon {
	if len(p) == 0 {
		return nil
	}
	ring := make(Polygon, 0, len(p))
	ring = append(ring, p...)
	if len(ring) > 1 && ring[0].Distance(ring[len(ring)-1]) < collinearEpsilon {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil
	}
	if ring.SignedArea() < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	ring = dropCollinear(ring)
	if len(ring) < 3 || ring.Area() < collinearEpsilon {
		return nil
	}
	return ring
}

func dropCollinear(ring Polygon) Polygon {
	out := ring
	for {
		n := len(out)
		if n < 3 {
			return out
		}
		kept := make(Polygon, 0, n)
		for i := 0; i < n; i++ {
			prev := out[(i-1+n)%n]
			cur := out[i]
			next := out[(i+1)%n]
			cross := cur.Sub(prev).Cross(next.Sub(cur))
			if cross > collinearEpsilon || cross < -collinearEpsilon {
				kept = append(kept, cur)
			}
		}
		if len(kept) == n {
			return kept
		}
		out = kept
	}
}
