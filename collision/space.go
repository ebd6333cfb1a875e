package collision

import "github.com/jakecoffman/cp/v2"

// TileCollisionType tags static tile shapes in the space so gameplay
// handlers can filter on them.
const TileCollisionType cp.CollisionType = 1

// AddToSpace instantiates the shapes as static Chipmunk colliders attached
// to the space's static body and returns them.
func AddToSpace(space *cp.Space, layers []LayerShapes) []*cp.Shape {
	if space == nil {
		return nil
	}
	var out []*cp.Shape
	for _, layer := range layers {
		for _, s := range layer.Shapes {
			verts := make([]cp.Vector, len(s.Verts))
			for i, v := range s.Verts {
				verts[i] = v.Add(s.Offset)
			}
			shape := cp.NewPolyShapeRaw(space.StaticBody, len(verts), verts, 0)
			shape.SetFriction(s.Material.Friction)
			shape.SetElasticity(s.Material.Restitution)
			shape.SetCollisionType(TileCollisionType)
			space.AddShape(shape)
			out = append(out, shape)
		}
	}
	return out
}
