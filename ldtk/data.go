// Package ldtk parses LDtk level exports into layers, tile grids and
// tileset definitions, including per-tile collision polygons.
package ldtk

// Layer instance types we understand. Other types are skipped.
const (
	LayerEntities = "Entities"
	LayerTiles    = "Tiles"
)

// Project mirrors the top-level LDtk JSON export.
type Project struct {
	Levels []Level `json:"levels"`
	Defs   Defs    `json:"defs"`
}

type Defs struct {
	Tilesets []TilesetDef `json:"tilesets"`
}

// TilesetDef is the raw tileset definition as exported. Resolve it into a
// Tileset to get decoded collision polygons.
type TilesetDef struct {
	UID          int              `json:"uid"`
	TileGridSize int              `json:"tileGridSize"`
	CWid         int              `json:"__cWid"`
	CHei         int              `json:"__cHei"`
	RelPath      string           `json:"relPath"`
	CustomData   []TileCustomData `json:"customData"`
}

// TileCustomData carries the per-tile collision outline as a serialized
// coordinate-pair list, e.g. "[[0,0],[1,0],[1,1],[0,1]]".
type TileCustomData struct {
	TileID int    `json:"tileId"`
	Data   string `json:"data"`
}

type Level struct {
	Identifier string `json:"identifier"`
	WorldX     int    `json:"worldX"`
	WorldY     int    `json:"worldY"`
	// LayerInstances is null when the project stores levels externally.
	LayerInstances []LayerInstance `json:"layerInstances"`
}

type LayerInstance struct {
	Type            string           `json:"__type"`
	GridSize        int              `json:"__gridSize"`
	TilesetDefUID   *int             `json:"__tilesetDefUid"`
	EntityInstances []EntityInstance `json:"entityInstances"`
	GridTiles       []GridTile       `json:"gridTiles"`
}

type EntityInstance struct {
	Identifier     string          `json:"__identifier"`
	Px             [2]int          `json:"px"`
	FieldInstances []FieldInstance `json:"fieldInstances"`
}

type FieldInstance struct {
	Identifier string `json:"__identifier"`
	Value      any    `json:"__value"`
}

// GridTile is one placed tile: pixel position within the level and the
// tile id within the layer's tileset.
type GridTile struct {
	Px [2]int `json:"px"`
	T  int    `json:"t"`
}

// StringField returns the named entity field as a string.
func (e *EntityInstance) StringField(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, f := range e.FieldInstances {
		if f.Identifier != name {
			continue
		}
		s, ok := f.Value.(string)
		return s, ok
	}
	return "", false
}
