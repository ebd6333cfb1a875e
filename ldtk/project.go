package ldtk

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hollowbyte/gravel/geom"
	"github.com/jakecoffman/cp/v2"
)

// Load error taxonomy. A failed load aborts that asset or level only; the
// caller reports it and may re-trigger by resupplying the asset.
var (
	// ErrMalformedAsset marks an export that doesn't match the expected
	// shape. Nothing from the asset is registered.
	ErrMalformedAsset = errors.New("ldtk: malformed asset")
	// ErrMissingReference marks an unresolvable level identifier or
	// tileset uid. It aborts that level's build.
	ErrMissingReference = errors.New("ldtk: missing reference")
	// ErrMissingField marks an absent required entity field.
	ErrMissingField = errors.New("ldtk: missing field")
)

// Parse decodes a project export.
func Parse(b []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAsset, err)
	}
	return &p, nil
}

// Level returns the level with the given identifier. A level without
// layer data (externally stored levels) is a missing reference.
func (p *Project) Level(identifier string) (*Level, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: level %q", ErrMissingReference, identifier)
	}
	for i := range p.Levels {
		if p.Levels[i].Identifier != identifier {
			continue
		}
		if p.Levels[i].LayerInstances == nil {
			return nil, fmt.Errorf("%w: level %q has no layer data", ErrMissingReference, identifier)
		}
		return &p.Levels[i], nil
	}
	return nil, fmt.Errorf("%w: level %q", ErrMissingReference, identifier)
}

// Tileset is a resolved tileset definition with decoded collision data.
type Tileset struct {
	UID      int
	GridSize int
	Columns  int
	Rows     int
	// RelPath is the tileset texture path relative to the project file.
	RelPath string
	// Collision maps a tile id to its local-space outline, scaled to
	// pixels and flipped to the Y-up convention.
	Collision map[int]geom.Polygon
}

// Tileset resolves a tileset definition by uid and decodes its per-tile
// collision polygons.
func (p *Project) Tileset(uid int) (*Tileset, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: tileset %d", ErrMissingReference, uid)
	}
	for i := range p.Defs.Tilesets {
		def := &p.Defs.Tilesets[i]
		if def.UID != uid {
			continue
		}
		return &Tileset{
			UID:       def.UID,
			GridSize:  def.TileGridSize,
			Columns:   def.CWid,
			Rows:      def.CHei,
			RelPath:   def.RelPath,
			Collision: decodeCollision(def),
		}, nil
	}
	return nil, fmt.Errorf("%w: tileset %d", ErrMissingReference, uid)
}

// ResolveTilesets resolves every tileset referenced by the level's tile
// layers, keyed by uid.
func (p *Project) ResolveTilesets(level *Level) (map[int]*Tileset, error) {
	if level == nil {
		return nil, fmt.Errorf("%w: nil level", ErrMissingReference)
	}
	out := make(map[int]*Tileset)
	for i := range level.LayerInstances {
		layer := &level.LayerInstances[i]
		if layer.Type != LayerTiles || layer.TilesetDefUID == nil {
			continue
		}
		uid := *layer.TilesetDefUID
		if _, ok := out[uid]; ok {
			continue
		}
		ts, err := p.Tileset(uid)
		if err != nil {
			return nil, err
		}
		out[uid] = ts
	}
	return out, nil
}

// decodeCollision turns custom-data coordinate lists into local polygons.
// Entries that fail to decode are skipped; a tile without a polygon simply
// contributes no collision.
func decodeCollision(def *TilesetDef) map[int]geom.Polygon {
	size := float64(def.TileGridSize)
	out := make(map[int]geom.Polygon, len(def.CustomData))
	for _, cd := range def.CustomData {
		var pairs [][2]float64
		if err := json.Unmarshal([]byte(cd.Data), &pairs); err != nil {
			continue
		}
		if len(pairs) < 3 {
			continue
		}
		poly := make(geom.Polygon, 0, len(pairs))
		for _, pt := range pairs {
			poly = append(poly, cp.Vector{X: pt[0] * size, Y: -pt[1] * size})
		}
		out[cd.TileID] = poly
	}
	return out
}
