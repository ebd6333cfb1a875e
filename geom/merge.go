package geom

import (
	polyclip "github.com/ctessum/polyclip-go"
	"github.com/jakecoffman/cp/v2"
)

// Merge unions a set of closed simple polygons into the minimal set of
// exterior outlines. The input list's order does not affect the result.
// Interior rings produced by the union are discarded: a region fully
// enclosed by solid geometry stays solid. An empty input merges to nothing.
func Merge(polys []Polygon) []Polygon {
	var acc polyclip.Polygon
	for _, p := range polys {
		ring := normalize(p)
		if ring == nil {
			continue
		}
		clip := toClip(ring)
		if acc == nil {
			acc = clip
			continue
		}
		acc = acc.Construct(polyclip.UNION, clip)
	}
	if acc == nil {
		return nil
	}
	return exteriors(acc)
}

func toClip(p Polygon) polyclip.Polygon {
	contour := make(polyclip.Contour, 0, len(p))
	for _, v := range p {
		contour = append(contour, polyclip.Point{X: v.X, Y: v.Y})
	}
	return polyclip.Polygon{contour}
}

// exteriors keeps only contours that are not contained in another contour.
func exteriors(clip polyclip.Polygon) []Polygon {
	out := make([]Polygon, 0, len(clip))
	for i, contour := range clip {
		if len(contour) < 3 {
			continue
		}
		hole := false
		for j, other := range clip {
			if i == j || len(other) < 3 {
				continue
			}
			if other.Contains(contour[0]) {
				hole = true
				break
			}
		}
		if hole {
			continue
		}
		ring := make(Polygon, 0, len(contour))
		for _, pt := range contour {
			ring = append(ring, cp.Vector{X: pt.X, Y: pt.Y})
		}
		if ring = normalize(ring); ring != nil {
			out = append(out, ring)
		}
	}
	return out
}
