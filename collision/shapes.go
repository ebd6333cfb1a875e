package collision

import (
	"fmt"

	"github.com/hollowbyte/gravel/geom"
	"github.com/hollowbyte/gravel/ldtk"
	"github.com/jakecoffman/cp/v2"
)

const (
	// WorldScale is pixels per physics world unit.
	WorldScale = 32.0
	// concavityTolerance bounds how far a decomposed part may deviate
	// from convexity, in world units.
	concavityTolerance = 0.0025
)

// CombineRule says how two touching colliders combine a surface coefficient.
type CombineRule int

const (
	CombineAverage CombineRule = iota
	CombineMin
	CombineMultiply
	CombineMax
)

// Material is a collider surface descriptor.
type Material struct {
	Friction           float64
	Restitution        float64
	FrictionCombine    CombineRule
	RestitutionCombine CombineRule
}

// TileMaterial is applied to every generated tile collider: frictionless
// and dead, with combine rules that let the other body's surface win.
var TileMaterial = Material{
	Friction:           0,
	Restitution:        0,
	FrictionCombine:    CombineMax,
	RestitutionCombine: CombineMin,
}

// ConvexShape is one convex part of a merged outline, in world units,
// paired with its collider material.
type ConvexShape struct {
	Verts geom.Polygon
	// Offset is the owning level's world offset in world units. Callers
	// position the shape's body at this offset.
	Offset   cp.Vector
	Material Material
}

// BuildShapes decomposes merged outlines (level-local pixel space) into
// convex parts scaled to world units. Every part carries TileMaterial and
// the level offset.
func BuildShapes(outlines []geom.Polygon, levelOffset cp.Vector, scale float64) []ConvexShape {
	if scale <= 0 {
		scale = WorldScale
	}
	offset := cp.Vector{X: levelOffset.X / scale, Y: levelOffset.Y / scale}

	var shapes []ConvexShape
	for _, outline := range outlines {
		scaled := make(geom.Polygon, len(outline))
		for i, v := range outline {
			scaled[i] = cp.Vector{X: v.X / scale, Y: v.Y / scale}
		}
		for _, part := range geom.Decompose(scaled, concavityTolerance) {
			shapes = append(shapes, ConvexShape{
				Verts:    part,
				Offset:   offset,
				Material: TileMaterial,
			})
		}
	}
	return shapes
}

func missingTileset(uid int) error {
	return fmt.Errorf("%w: tileset %d not resolved", ldtk.ErrMissingReference, uid)
}
