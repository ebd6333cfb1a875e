// Package collision turns a loaded level's tile placements into merged,
// convex-decomposed collider shapes for a Chipmunk space.
package collision

import (
	"github.com/hollowbyte/gravel/geom"
	"github.com/hollowbyte/gravel/ldtk"
	"github.com/jakecoffman/cp/v2"
)

// BuildLayerPolygons places each tile's registered local polygon at its
// world pixel position (Y-up). Tiles with no registered polygon contribute
// nothing. The result is the layer's unmerged world polygon list.
func BuildLayerPolygons(layer *ldtk.LayerInstance, ts *ldtk.Tileset) []geom.Polygon {
	if layer == nil || ts == nil {
		return nil
	}
	var out []geom.Polygon
	for _, gt := range layer.GridTiles {
		local, ok := ts.Collision[gt.T]
		if !ok {
			continue
		}
		at := cp.Vector{X: float64(gt.Px[0]), Y: -float64(gt.Px[1])}
		out = append(out, local.Translate(at))
	}
	return out
}

// LayerShapes groups the generated collision geometry for one tile layer.
type LayerShapes struct {
	// LayerIndex is the layer's position within the level.
	LayerIndex int
	TilesetUID int
	// Outlines are the merged exterior rings in level-local pixel space,
	// kept for debug drawing.
	Outlines []geom.Polygon
	// Shapes are the convex parts in world units, positioned at the
	// level's world offset.
	Shapes []ConvexShape
}

// BuildLevel runs the geometry pipeline for every tile layer of a level:
// placement, boolean union, convex decomposition. Layers bound to an
// unresolved tileset abort the build with a missing-reference error.
// Layers that produce no polygons are skipped silently.
func BuildLevel(level *ldtk.Level, tilesets map[int]*ldtk.Tileset, scale float64) ([]LayerShapes, error) {
	if level == nil {
		return nil, nil
	}
	offset := level.WorldOffset()

	var out []LayerShapes
	for i := range level.LayerInstances {
		layer := &level.LayerInstances[i]
		if layer.Type != ldtk.LayerTiles || layer.TilesetDefUID == nil {
			continue
		}
		uid := *layer.TilesetDefUID
		ts := tilesets[uid]
		if ts == nil {
			return nil, missingTileset(uid)
		}

		outlines := geom.Merge(BuildLayerPolygons(layer, ts))
		if len(outlines) == 0 {
			continue
		}
		out = append(out, LayerShapes{
			LayerIndex: i,
			TilesetUID: uid,
			Outlines:   outlines,
			Shapes:     BuildShapes(outlines, offset, scale),
		})
	}
	return out, nil
}
