package aseprite

import "encoding/json"

// Data mirrors the JSON written by Aseprite's sprite sheet export
// ("Hash" output with frame tags enabled).
type Data struct {
	Frames map[string]FrameValue `json:"frames"`
	Meta   Meta                  `json:"meta"`
}

// FrameValue is one packed cell of the sheet texture.
type FrameValue struct {
	Frame            Rect `json:"frame"`
	Rotated          bool `json:"rotated"`
	Trimmed          bool `json:"trimmed"`
	SpriteSourceSize Rect `json:"spriteSourceSize"`
	SourceSize       Size `json:"sourceSize"`
	// Duration is in milliseconds, as exported.
	Duration int `json:"duration"`
}

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

type Meta struct {
	App       string            `json:"app"`
	Version   string            `json:"version"`
	Image     string            `json:"image"`
	Format    string            `json:"format"`
	Size      Size              `json:"size"`
	Scale     string            `json:"scale"`
	FrameTags []FrameTag        `json:"frameTags"`
	Layers    []LayerData       `json:"layers"`
	Slices    []json.RawMessage `json:"slices"`
}

// FrameTag names a contiguous run of frames in the sheet.
type FrameTag struct {
	Name      string `json:"name"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Direction string `json:"direction"`
	Color     string `json:"color"`
}

type LayerData struct {
	Name      string `json:"name"`
	Opacity   int    `json:"opacity"`
	BlendMode string `json:"blendMode"`
}
