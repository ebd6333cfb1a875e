package geom

import "github.com/jakecoffman/cp/v2"

// Decompose splits a closed outline into convex parts whose union
// reconstructs it. A part may keep a concave vertex as long as its
// deviation from convexity stays within tol (the concavity tolerance,
// measured as the perpendicular depth of the dent). Convex input comes
// back as a single part. Degenerate outlines decompose to nothing.
func Decompose(outline Polygon, tol float64) []Polygon {
	ring := normalize(outline)
	if ring == nil {
		return nil
	}
	if isConvex(ring, tol) {
		return []Polygon{ring}
	}
	tris := triangulate(ring)
	if len(tris) == 0 {
		// ear clipping gave up (self-touching input); emit the outline
		// as-is rather than dropping collision entirely.
		return []Polygon{ring}
	}
	loops := mergeConvex(ring, tris, tol)

	out := make([]Polygon, 0, len(loops))
	for _, loop := range loops {
		part := make(Polygon, 0, len(loop))
		for _, idx := range loop {
			part = append(part, ring[idx])
		}
		if part = normalize(part); part != nil {
			out = append(out, part)
		}
	}
	return out
}

func isConvex(ring Polygon, tol float64) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		prev := ring[(i-1+n)%n]
		cur := ring[i]
		next := ring[(i+1)%n]
		cross := cur.Sub(prev).Cross(next.Sub(cur))
		if cross >= 0 {
			continue
		}
		// depth of the dent below the prev-next chord
		chord := next.Sub(prev).Length()
		if chord < collinearEpsilon {
			return false
		}
		if -cross/chord > tol {
			return false
		}
	}
	return true
}

// triangulate ear-clips a counter-clockwise simple ring into triangles of
// vertex indices.
func triangulate(ring Polygon) [][3]int {
	n := len(ring)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		clipped := false
		for k := 0; k < len(idx); k++ {
			i0 := idx[(k-1+len(idx))%len(idx)]
			i1 := idx[k]
			i2 := idx[(k+1)%len(idx)]
			if !isEar(ring, idx, i0, i1, i2) {
				continue
			}
			tris = append(tris, [3]int{i0, i1, i2})
			idx = append(idx[:k], idx[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil
		}
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return tris
}

func isEar(ring Polygon, idx []int, i0, i1, i2 int) bool {
	a, b, c := ring[i0], ring[i1], ring[i2]
	if b.Sub(a).Cross(c.Sub(b)) <= collinearEpsilon {
		return false // reflex or collinear corner
	}
	for _, m := range idx {
		if m == i0 || m == i1 || m == i2 {
			continue
		}
		if pointInTriangle(ring[m], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c cp.Vector) bool {
	d1 := p.Sub(a).Cross(b.Sub(a))
	d2 := p.Sub(b).Cross(c.Sub(b))
	d3 := p.Sub(c).Cross(a.Sub(c))
	hasNeg := d1 < -collinearEpsilon || d2 < -collinearEpsilon || d3 < -collinearEpsilon
	hasPos := d1 > collinearEpsilon || d2 > collinearEpsilon || d3 > collinearEpsilon
	return !(hasNeg && hasPos)
}

// mergeConvex greedily glues triangles back together along shared
// diagonals while the result stays convex within tol.
func mergeConvex(ring Polygon, tris [][3]int, tol float64) [][]int {
	loops := make([][]int, 0, len(tris))
	for _, t := range tris {
		loops = append(loops, []int{t[0], t[1], t[2]})
	}

	for {
		merged := false
	scan:
		for a := 0; a < len(loops); a++ {
			for b := a + 1; b < len(loops); b++ {
				combined, ok := tryMerge(ring, loops[a], loops[b], tol)
				if !ok {
					continue
				}
				loops[a] = combined
				loops = append(loops[:b], loops[b+1:]...)
				merged = true
				break scan
			}
		}
		if !merged {
			return loops
		}
	}
}

// tryMerge joins two loops sharing a directed edge (u,v)/(v,u) and accepts
// the result only if it is convex within tol.
func tryMerge(ring Polygon, a, b []int, tol float64) ([]int, bool) {
	for i := 0; i < len(a); i++ {
		u := a[i]
		v := a[(i+1)%len(a)]
		for j := 0; j < len(b); j++ {
			if b[j] != v || b[(j+1)%len(b)] != u {
				continue
			}
			// walk a from v around to u, then b's remainder from u back
			// toward v, skipping the shared edge itself
			combined := make([]int, 0, len(a)+len(b)-2)
			for k := 1; k < len(a); k++ {
				combined = append(combined, a[(i+k)%len(a)])
			}
			combined = append(combined, u)
			for k := 2; k < len(b); k++ {
				combined = append(combined, b[(j+k)%len(b)])
			}
			poly := make(Polygon, 0, len(combined))
			for _, idx := range combined {
				poly = append(poly, ring[idx])
			}
			if !isConvex(dropCollinear(poly), tol) {
				return nil, false
			}
			return combined, true
		}
	}
	return nil, false
}
